package services

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateRandomCode(t *testing.T) {
	code := generateRandomCode(backupCodeLength)
	assert.Len(t, code, backupCodeLength)

	// Ambiguous characters are excluded from the charset.
	for _, forbidden := range []string{"I", "O", "0", "1"} {
		assert.NotContains(t, code, forbidden)
	}

	assert.NotEqual(t, code, generateRandomCode(backupCodeLength))
}

func TestNewBackupCodes(t *testing.T) {
	codes, hashedJSON, err := newBackupCodes()
	require.NoError(t, err)

	require.Len(t, codes, backupCodeCount)
	for _, code := range codes {
		assert.Len(t, code, backupCodeLength)
		assert.Equal(t, strings.ToUpper(code), code)
	}

	var hashes []string
	require.NoError(t, json.Unmarshal([]byte(hashedJSON), &hashes))
	require.Len(t, hashes, backupCodeCount)

	// Stored hashes verify against their plaintext codes and only those.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashes[0]), []byte(codes[0])))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hashes[0]), []byte("WRONGCDE")))
}
