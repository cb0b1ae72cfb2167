package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("same password")
	require.NoError(t, err)
	h2, err := HashPassword("same password")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "each hash must use a fresh salt")
}

func TestVerifyPasswordRejectsTamperedHash(t *testing.T) {
	hash, err := HashPassword("a perfectly fine password")
	require.NoError(t, err)

	// Flip a character in the hash segment
	tampered := hash[:len(hash)-2] + "zz"
	ok, _ := VerifyPassword("a perfectly fine password", tampered)
	assert.False(t, ok)
}

func TestVerifyPasswordInvalidFormat(t *testing.T) {
	for _, bad := range []string{"", "not-a-hash", "$bcrypt$whatever$x$y$z"} {
		_, err := VerifyPassword("anything", bad)
		assert.Error(t, err, "hash %q", bad)
	}
}
