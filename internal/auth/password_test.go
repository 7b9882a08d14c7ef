package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	// Hashing the same password twice must produce different hashes (salted)
	hash2, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, hash2)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-Passw0rd!")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		expected bool
	}{
		{
			name:     "correct password verifies",
			password: "s3cret-Passw0rd!",
			expected: true,
		},
		{
			name:     "wrong password fails",
			password: "wrong-password",
			expected: false,
		},
		{
			name:     "empty password fails",
			password: "",
			expected: false,
		},
		{
			name:     "case difference fails",
			password: "S3cret-Passw0rd!",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VerifyPassword(hash, tt.password))
		})
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
	assert.False(t, VerifyPassword("", "anything"))
}
