package auth_test

import (
	"testing"

	"github.com/iyhunko/inventory-tracker/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("digest verifies against original secret", func(t *testing.T) {
		digest, err := auth.HashPassword("s3cret-password")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-password", digest)
		assert.True(t, auth.CheckPassword("s3cret-password", digest))
	})

	t.Run("same secret hashes to different digests, both verify", func(t *testing.T) {
		first, err := auth.HashPassword("s3cret-password")
		require.NoError(t, err)
		second, err := auth.HashPassword("s3cret-password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, auth.CheckPassword("s3cret-password", first))
		assert.True(t, auth.CheckPassword("s3cret-password", second))
	})

	t.Run("wrong secret does not verify", func(t *testing.T) {
		digest, err := auth.HashPassword("s3cret-password")
		require.NoError(t, err)
		assert.False(t, auth.CheckPassword("other-password", digest))
	})
}
