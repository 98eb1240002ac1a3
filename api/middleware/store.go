package middleware

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/wishlist-ai/pkg/logger"
)

// ShopDomainHeader is forwarded by the storefront app proxy.
const ShopDomainHeader = "X-Shopify-Shop-Domain"

// ShopContext resolves the shop from the `shop` query parameter, falling back to
// the proxy header, and stores it on the request context.
func ShopContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shop := strings.TrimSpace(r.URL.Query().Get("shop"))
			if shop == "" {
				shop = strings.TrimSpace(r.Header.Get(ShopDomainHeader))
			}
			ctx := r.Context()
			if shop != "" {
				ctx = WithShop(ctx, shop)
				if logg != nil {
					ctx = logg.WithShop(ctx, shop)
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
