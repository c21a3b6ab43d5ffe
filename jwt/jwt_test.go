package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewManagerFromKeys(key, ttl)
}

func TestGenerateAndVerify(t *testing.T) {
	m := testManager(t, time.Hour)

	signed, tokenID, expiresAt, err := m.Generate(42, "customer")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.NotEmpty(t, tokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestGenerateUniqueTokenIDs(t *testing.T) {
	m := testManager(t, time.Hour)

	_, first, _, err := m.Generate(1, "customer")
	require.NoError(t, err)
	_, second, _, err := m.Generate(1, "customer")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := testManager(t, -time.Minute)

	signed, _, _, err := m.Generate(7, "customer")
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	issuer := testManager(t, time.Hour)
	verifier := testManager(t, time.Hour)

	signed, _, _, err := issuer.Generate(7, "admin")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := testManager(t, time.Hour)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
