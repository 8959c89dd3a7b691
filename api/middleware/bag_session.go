package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ateliersillage/sillage-backend/pkg/logger"
)

const bagSessionHeader = "X-Bag-Session"

// BagSession resolves the shopper's bag session identifier. A client without
// one is issued a fresh id; the header is always echoed back so the
// storefront can persist it.
func BagSession(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(bagSessionHeader))
			if sessionID == "" || len(sessionID) > 64 {
				sessionID = uuid.NewString()
			}

			w.Header().Set(bagSessionHeader, sessionID)

			ctx := WithBagSession(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithBagSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
