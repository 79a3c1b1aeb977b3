package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

func TestSignParseRoundTrip(t *testing.T) {
	s := NewSigner(Config{Secret: secret, ClockSkew: time.Minute})

	tok, jti, err := s.SignAccess("ops", ScopeWrite, time.Hour)
	require.NoError(t, err)
	assert.Len(t, jti, 32)

	c, err := s.ParseAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, "ops", c.Subject)
	assert.Equal(t, jti, c.ID)
	assert.True(t, c.HasScope(ScopeWrite))
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, _, err := NewSigner(Config{Secret: secret}).SignAccess("ops", ScopeWrite, time.Hour)
	require.NoError(t, err)

	_, err = NewSigner(Config{Secret: []byte("another-secret-another-secret-xx")}).ParseAccess(tok)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	s := NewSigner(Config{Secret: secret, ClockSkew: time.Second})
	tok, _, err := s.SignAccess("ops", ScopeWrite, -time.Hour)
	require.NoError(t, err)

	_, err = s.ParseAccess(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsNoneAlg(t *testing.T) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, NewAccessClaims("ops", "x", ScopeWrite, time.Hour)).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSigner(Config{Secret: secret}).ParseAccess(tok)
	assert.Error(t, err)
}

func TestHasScope(t *testing.T) {
	c := AccessClaims{Scope: "catalog:read  catalog:write"}
	assert.True(t, c.HasScope(ScopeWrite))
	assert.False(t, AccessClaims{Scope: "catalog:read"}.HasScope(ScopeWrite))
}
