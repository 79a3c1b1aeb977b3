package middlewares

import (
	"context"

	jwtutil "github.com/5w1tchy/catalog-api/internal/security/jwt"
)

const claimsKey ctxKey = 1

func WithClaims(ctx context.Context, c *jwtutil.AccessClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFrom(ctx context.Context) (*jwtutil.AccessClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtutil.AccessClaims)
	return c, ok && c != nil
}
