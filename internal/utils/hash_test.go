package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("SecurePass123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Encoded format: $argon2id$v=19$m=...,t=...,p=...$salt$hash
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.Len(t, strings.Split(hash, "$"), 6)

	// Hash must never contain the plaintext
	assert.NotContains(t, hash, "SecurePass123")
}

func TestHashPasswordUniqueSalt(t *testing.T) {
	hash1, err := HashPassword("SamePassword")
	assert.NoError(t, err)
	hash2, err := HashPassword("SamePassword")
	assert.NoError(t, err)

	// Same password, different salt, different hash
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("CorrectPass123")
	assert.NoError(t, err)

	valid, err := VerifyPassword("CorrectPass123", hash)
	assert.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("WrongPass123", hash)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	testCases := []struct {
		name string
		hash string
	}{
		{"Empty hash", ""},
		{"Not enough parts", "$argon2id$v=19$bad"},
		{"Garbage", "not-a-hash-at-all"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := VerifyPassword("AnyPass123", tc.hash)
			assert.Error(t, err)
		})
	}
}

func TestVerifyPasswordIncompatibleVersion(t *testing.T) {
	hash, err := HashPassword("VersionTest123")
	assert.NoError(t, err)

	// Rewrite the version segment
	tampered := strings.Replace(hash, "v=19", "v=18", 1)
	_, err = VerifyPassword("VersionTest123", tampered)
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}
