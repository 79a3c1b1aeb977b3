package jwtutil

import (
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ScopeWrite grants catalog mutations.
const ScopeWrite = "catalog:write"

type AccessClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

func NewAccessClaims(subject, jti, scope string, ttl time.Duration) AccessClaims {
	now := time.Now()
	return AccessClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// HasScope reports whether the space-separated scope claim contains s.
func (c AccessClaims) HasScope(s string) bool {
	return slices.Contains(strings.Fields(c.Scope), s)
}
