package middleware

import (
	"net/http"

	"github.com/shoptodo/shoptodo-backend/api/responses"
	"github.com/shoptodo/shoptodo-backend/internal/session"
	"github.com/shoptodo/shoptodo-backend/internal/shop"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
)

// Shop resolves the authenticated user's shop from the registry. It must run
// after Auth.
func Shop(registry *shop.Registry, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			s, err := registry.For(ctx, session.User{Username: UsernameFromContext(ctx)})
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithShop(ctx, s)))
		})
	}
}
