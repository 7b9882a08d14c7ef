package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/config"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
)

func testJWTManager() *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key-for-unit-tests"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.RefreshDays = 7
	cfg.JWT.Issuer = "swn-backend"
	return NewJWTManager(cfg)
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Name:     "Dana Scully",
		Email:    "dana@example.com",
		Role:     models.RoleMember,
		IsActive: true,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := testJWTManager()
	user := testUser()

	token, err := manager.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "dana@example.com", claims.Email)
	assert.Equal(t, models.RoleMember, claims.Role)
	assert.True(t, claims.IsActive)
	assert.Equal(t, "swn-backend", claims.Issuer)
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	manager := testJWTManager()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not.a.jwt"},
		{name: "tampered signature", token: mustToken(t, manager) + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	manager := testJWTManager()
	token := mustToken(t, manager)

	other := &config.Config{}
	other.JWT.Secret = "a-completely-different-secret"
	other.JWT.ExpirationHours = 1
	otherManager := NewJWTManager(other)

	_, err := otherManager.ValidateToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	manager := testJWTManager()
	user := testUser()

	token, err := manager.GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := manager.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestTempTokenRoundTrip(t *testing.T) {
	manager := testJWTManager()
	user := testUser()

	token, err := manager.GenerateTempToken(user)
	require.NoError(t, err)

	claims, err := manager.ValidateTempToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "2fa_pending", claims.Type)
}

// Access, refresh and temp tokens all share the signing key, so a token of one
// type must never validate as another.
func TestTokenTypeSeparation(t *testing.T) {
	manager := testJWTManager()
	user := testUser()

	accessToken, err := manager.GenerateToken(user)
	require.NoError(t, err)
	refreshToken, err := manager.GenerateRefreshToken(user)
	require.NoError(t, err)
	tempToken, err := manager.GenerateTempToken(user)
	require.NoError(t, err)

	_, err = manager.ValidateRefreshToken(accessToken)
	assert.Error(t, err, "access token must not pass refresh validation")

	_, err = manager.ValidateTempToken(accessToken)
	assert.Error(t, err, "access token must not pass temp validation")

	_, err = manager.ValidateRefreshToken(tempToken)
	assert.Error(t, err, "temp token must not pass refresh validation")

	_, err = manager.ValidateTempToken(refreshToken)
	assert.Error(t, err, "refresh token must not pass temp validation")
}

func mustToken(t *testing.T, manager *JWTManager) string {
	t.Helper()
	token, err := manager.GenerateToken(testUser())
	require.NoError(t, err)
	return token
}
