package auth

import (
	"testing"
	"time"

	"markbook_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", 60)

	token, err := m.Generate("user-1", models.UserRoleTeacher)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleTeacher, claims.Role)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	m := NewTokenManager("secret-a", 60)
	other := NewTokenManager("secret-b", 60)

	token, err := m.Generate("user-1", models.UserRoleAdmin)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	m := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := m.Generate("user-1", models.UserRoleTeacher)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", 60)

	_, err := m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
