package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/wishlist-ai/api/controllers"
	"github.com/angelmondragon/wishlist-ai/api/middleware"
	"github.com/angelmondragon/wishlist-ai/internal/wishlist"
	"github.com/angelmondragon/wishlist-ai/pkg/config"
	"github.com/angelmondragon/wishlist-ai/pkg/db"
	"github.com/angelmondragon/wishlist-ai/pkg/logger"
	"github.com/angelmondragon/wishlist-ai/pkg/redis"
)

// NewRouter wires the app-proxy, health and metrics routes. redisPinger and
// gatherer may be nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisPinger redis.Pinger,
	wishlistService wishlist.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		var readyRedis controllers.Pinger
		if redisPinger != nil {
			readyRedis = redisPinger
		}
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, readyRedis))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/apps/wishlist", func(r chi.Router) {
		r.Use(middleware.ShopContext(logg))
		proxy := controllers.WishlistProxy(wishlistService, logg)
		r.Get("/", proxy)
		r.Post("/", proxy)
	})

	return r
}
