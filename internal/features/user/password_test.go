package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := HashPassword("short")
		assert.ErrorIs(t, err, ErrPasswordLength)
	})

	t.Run("hashes and verifies", func(t *testing.T) {
		hashed, err := HashPassword("correct-horse-battery")
		require.NoError(t, err)
		assert.NotEqual(t, "correct-horse-battery", hashed)

		assert.NoError(t, CheckPassword(hashed, "correct-horse-battery"))
		assert.ErrorIs(t, CheckPassword(hashed, "wrong-password"), ErrWrongPassword)
	})
}
