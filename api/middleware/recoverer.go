package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/wishlist-ai/api/responses"
	pkgerrors "github.com/angelmondragon/wishlist-ai/pkg/errors"
	"github.com/angelmondragon/wishlist-ai/pkg/logger"
)

// Recoverer turns handler panics into a 500 storefront error.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				ctx := r.Context()
				if logg != nil {
					ctx = logg.WithField(ctx, "panic", fmt.Sprint(rec))
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
