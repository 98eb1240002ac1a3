package config

const EnvPrefix = "WISHLIST"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:wishlist.db?_foreign_keys=on"
)

const (
	EnvAppEnv        = "WISHLIST_APP_ENV"
	EnvPort          = "WISHLIST_APP_PORT"
	EnvDBDSN         = "WISHLIST_DB_DSN"
	EnvDBHost        = "WISHLIST_DB_HOST"
	EnvDBUser        = "WISHLIST_DB_USER"
	EnvDBName        = "WISHLIST_DB_NAME"
	EnvRedisURL      = "WISHLIST_REDIS_URL"
	EnvUseSQLite     = "WISHLIST_USE_SQLITE"
	EnvOpenAIAPIKey  = "WISHLIST_OPENAI_API_KEY"
	EnvOpenAITimeout = "WISHLIST_OPENAI_TIMEOUT"
	EnvShopifyAPIVer = "WISHLIST_SHOPIFY_API_VERSION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
