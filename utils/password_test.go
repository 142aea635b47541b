package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "s3cret-password")

	assert.True(t, VerifyPassword("s3cret-password", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same-password")
	require.NoError(t, err)
	second, err := HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same-password", first))
	assert.True(t, VerifyPassword("same-password", second))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-hash"))
	assert.False(t, VerifyPassword("anything", "$bcrypt$v=19$m=65536,t=1,p=4$abc$def"))
}

func TestVerifyPasswordReadsParametersFromHash(t *testing.T) {
	// A digest produced under older parameters still verifies, so the
	// defaults can change without re-hashing stored digests.
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte("migrating-password"), salt, 2, 32*1024, 2, 32)
	legacy := fmt.Sprintf(
		"$argon2id$v=%d$m=32768,t=2,p=2$%s$%s",
		argon2.Version,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	assert.True(t, VerifyPassword("migrating-password", legacy))
	assert.False(t, VerifyPassword("wrong-password", legacy))
}
