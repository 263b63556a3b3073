package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "plan-tracker.com/plan-tracker/internal/errors"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-1", secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("wrong"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestGetUserIDFromToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, secret)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not-a-token", []byte("test-secret"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
