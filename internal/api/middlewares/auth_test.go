package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/5w1tchy/catalog-api/internal/api/middlewares"
	jwtutil "github.com/5w1tchy/catalog-api/internal/security/jwt"
)

func guarded(p mw.TokenParser) http.Handler {
	return mw.Chain(okHandler(), mw.RequireToken(p), mw.RequireScope(jwtutil.ScopeWrite))
}

func TestRequireToken(t *testing.T) {
	signer := jwtutil.NewSigner(jwtutil.Config{Secret: []byte("0123456789abcdef0123456789abcdef")})
	writer, _, err := signer.SignAccess("ops", jwtutil.ScopeWrite, time.Minute)
	require.NoError(t, err)
	reader, _, err := signer.SignAccess("viewer", "catalog:read", time.Minute)
	require.NoError(t, err)

	other := jwtutil.NewSigner(jwtutil.Config{Secret: []byte("ffffffffffffffffffffffffffffffff")})
	forged, _, err := other.SignAccess("ops", jwtutil.ScopeWrite, time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"forged", "Bearer " + forged, http.StatusUnauthorized},
		{"wrong scope", "Bearer " + reader, http.StatusForbidden},
		{"write scope", "Bearer " + writer, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/books", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			guarded(signer).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequireToken_NilParserPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/books", nil)
	rec := httptest.NewRecorder()
	guarded(nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
