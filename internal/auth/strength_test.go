package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorePassword(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		expectedScore int
		expectedLabel string
		expectedWidth int
	}{
		{
			name:          "empty password is weak",
			password:      "",
			expectedScore: 0,
			expectedLabel: StrengthWeak,
			expectedWidth: 33,
		},
		{
			name:          "short lowercase only is weak",
			password:      "short",
			expectedScore: 1,
			expectedLabel: StrengthWeak,
			expectedWidth: 33,
		},
		{
			name:          "two passing checks is still weak",
			password:      "abcDEF",
			expectedScore: 2,
			expectedLabel: StrengthWeak,
			expectedWidth: 33,
		},
		{
			name:          "three passing checks is medium",
			password:      "abcdefg1A",
			expectedScore: 4,
			expectedLabel: StrengthMedium,
			expectedWidth: 66,
		},
		{
			name:          "long mixed case without digit or special is medium",
			password:      "abcdEFGH",
			expectedScore: 3,
			expectedLabel: StrengthMedium,
			expectedWidth: 66,
		},
		{
			name:          "all five checks is strong",
			password:      "Str0ngP@ss!",
			expectedScore: 5,
			expectedLabel: StrengthStrong,
			expectedWidth: 100,
		},
		{
			name:          "special characters without length stays medium",
			password:      "aB1!",
			expectedScore: 4,
			expectedLabel: StrengthMedium,
			expectedWidth: 66,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScorePassword(tt.password)

			assert.Equal(t, tt.expectedScore, result.Score)
			assert.Equal(t, tt.expectedLabel, result.Label)
			assert.Equal(t, tt.expectedWidth, result.Width)
			assert.Len(t, result.Checks, 5)
		})
	}
}

func TestScorePasswordChecks(t *testing.T) {
	result := ScorePassword("Str0ngP@ss!")

	assert.True(t, result.Checks["length"])
	assert.True(t, result.Checks["lowercase"])
	assert.True(t, result.Checks["uppercase"])
	assert.True(t, result.Checks["digit"])
	assert.True(t, result.Checks["special"])

	result = ScorePassword("12345678")
	assert.True(t, result.Checks["length"])
	assert.True(t, result.Checks["digit"])
	assert.False(t, result.Checks["lowercase"])
	assert.False(t, result.Checks["uppercase"])
	assert.False(t, result.Checks["special"])
}
