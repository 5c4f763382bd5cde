package utils

import (
	"testing"
	"time"

	"github.com/Kariqs/farmkart-api/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	assert.Equal(t, TokenTTL, issuer.TTL())

	token, err := issuer.Issue(42, models.RoleSeller)
	require.NoError(t, err)
	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, models.Principal{ID: 42, Role: models.RoleSeller}, claims.Principal())
}

func TestTokenRejectsExpiredAndForeign(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	start := time.Now()
	issuer.now = func() time.Time { return start }
	token, err := issuer.Issue(1, models.RoleBuyer)
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	other := NewTokenIssuer("another secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenRequiresPrincipal(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Issue(7, "admin")
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.NoError(t, ComparePasswords(hash, "hunter22"))
	assert.Error(t, ComparePasswords(hash, "hunter23"))
}
