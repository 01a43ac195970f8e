package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateToken("writer-1", "Wren", []string{"writer", "editor"})
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "writer-1", claims.UserID)
	assert.Equal(t, "Wren", claims.Name)
	assert.Equal(t, []string{"writer", "editor"}, claims.Roles)
}

func TestManager_RefreshTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	token, err := m.GenerateRefreshToken("writer-1")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "writer-1", claims.Subject)
	assert.Empty(t, claims.Roles, "refresh tokens carry no role grants")
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateToken("writer-1", "Wren", nil)
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour, 24*time.Hour)
	verifier := NewManager("secret-b", time.Hour, 24*time.Hour)

	token, err := issuer.GenerateToken("writer-1", "Wren", nil)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
