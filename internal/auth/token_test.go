package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/service-desk/internal/auth"
	"github.com/spec-kit/service-desk/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken(42, domain.RoleManager)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, domain.RoleManager, claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", 60)
	verifier := auth.NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(1, domain.RoleCustomer)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := auth.NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret-pass", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret-pass", hash)

	assert.NoError(t, auth.ComparePassword(hash, "secret-pass"))
	assert.Error(t, auth.ComparePassword(hash, "wrong"))
}
