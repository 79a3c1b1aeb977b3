package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/catalog-api/internal/api/httpx"
	jwtutil "github.com/5w1tchy/catalog-api/internal/security/jwt"
)

// TokenParser verifies an access token string.
type TokenParser interface {
	ParseAccess(token string) (*jwtutil.AccessClaims, error)
}

// RequireToken verifies a Bearer JWT and injects its claims into the context.
// A nil parser means auth is not configured and the guard is a pass-through.
func RequireToken(p TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="catalog"`)
				httpx.ErrorStatus(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}
			tokenStr, err := bearer(raw)
			if err != nil {
				httpx.ErrorStatus(w, http.StatusUnauthorized, "invalid Authorization header")
				return
			}
			claims, err := p.ParseAccess(tokenStr)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				httpx.ErrorStatus(w, http.StatusUnauthorized, "invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearer(h string) (string, error) {
	if !strings.HasPrefix(h, "Bearer ") && !strings.HasPrefix(h, "bearer ") {
		return "", errors.New("no bearer")
	}
	tok := strings.TrimSpace(h[len("Bearer "):])
	if tok == "" {
		return "", errors.New("empty bearer")
	}
	return tok, nil
}
