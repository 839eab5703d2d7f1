package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	userID := uuid.New()

	token, err := Generate(userID, "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Verify(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := Generate(uuid.New(), "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = Verify(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	token, err := Generate(uuid.New(), "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = Verify(token, "test-secret")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyGarbage(t *testing.T) {
	_, err := Verify("not-a-token", "test-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
