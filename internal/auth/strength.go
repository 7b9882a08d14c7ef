package auth

import (
	"unicode"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

// Strength labels for the signup meter.
const (
	StrengthWeak   = "Weak"
	StrengthMedium = "Medium"
	StrengthStrong = "Strong"
)

// ScorePassword runs the five character-class checks and maps the count of
// passes to a label and meter width: 0-2 passes is Weak at 33%, 3-4 is
// Medium at 66%, all 5 is Strong at 100%.
func ScorePassword(password string) *models.PasswordStrength {
	checks := map[string]bool{
		"length":    len(password) >= 8,
		"lowercase": false,
		"uppercase": false,
		"digit":     false,
		"special":   false,
	}

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			checks["lowercase"] = true
		case unicode.IsUpper(r):
			checks["uppercase"] = true
		case unicode.IsDigit(r):
			checks["digit"] = true
		default:
			checks["special"] = true
		}
	}

	score := 0
	for _, ok := range checks {
		if ok {
			score++
		}
	}

	label := StrengthWeak
	width := 33
	switch {
	case score == 5:
		label = StrengthStrong
		width = 100
	case score >= 3:
		label = StrengthMedium
		width = 66
	}

	return &models.PasswordStrength{
		Score:  score,
		Label:  label,
		Width:  width,
		Checks: checks,
	}
}
