package middlewares

import (
	"net/http"

	"github.com/5w1tchy/catalog-api/internal/api/httpx"
)

// RequireScope ensures the authenticated caller's token carries scope.
// Requests without claims pass untouched: RequireToken decides whether
// authentication is enforced at all.
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, ok := ClaimsFrom(r.Context()); ok && !c.HasScope(scope) {
				httpx.ErrorStatus(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
