package middleware

import (
	"net/http"

	"github.com/ateliersillage/sillage-backend/api/responses"
	"github.com/ateliersillage/sillage-backend/pkg/config"
	pkgerrors "github.com/ateliersillage/sillage-backend/pkg/errors"
	"github.com/ateliersillage/sillage-backend/pkg/logger"
	pkgredis "github.com/ateliersillage/sillage-backend/pkg/redis"
)

// CheckoutRateLimit caps checkout submissions per authenticated shopper using
// a fixed redis window.
func CheckoutRateLimit(cfg config.CheckoutConfig, client *pkgredis.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || cfg.RateLimitMax <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			scope := "checkout:" + UserEmailFromContext(r.Context())
			allowed, _, err := client.FixedWindowAllow(r.Context(), scope, cfg.RateLimitMax, cfg.RateLimitWindow)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check rate limit"))
				return
			}
			if !allowed {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many checkout attempts"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
