package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"golang.org/x/crypto/bcrypt"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/auth"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
)

const (
	totpIssuer        = "SecondWatch"
	backupCodeCount   = 10
	backupCodeLength  = 8
	maxFailedAttempts = 5
	rateLimitWindow   = 15 * time.Minute
)

var (
	ErrTooManyAttempts = &TOTPError{Message: "too many failed attempts, please try again later"}
	ErrNoTOTPSecret    = &TOTPError{Message: "2FA setup not initiated"}
	ErrInvalidTOTPCode = &TOTPError{Message: "invalid verification code"}
	ErrTOTPNotEnabled  = &TOTPError{Message: "2FA is not enabled"}
	ErrInvalidPassword = &TOTPError{Message: "invalid password"}
)

type TOTPError struct {
	Message string
}

func (e *TOTPError) Error() string {
	return e.Message
}

type TOTPService struct {
	userRepo *repositories.UserRepository
	totpRepo *repositories.TOTPRepository
}

func NewTOTPService(userRepo *repositories.UserRepository, totpRepo *repositories.TOTPRepository) *TOTPService {
	return &TOTPService{
		userRepo: userRepo,
		totpRepo: totpRepo,
	}
}

// GenerateSetup creates a new TOTP secret and QR code for a user
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	// Store the secret (not yet enabled)
	if err := s.userRepo.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}
	qrBase64 := base64.StdEncoding.EncodeToString(buf.Bytes())

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + qrBase64,
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable verifies a TOTP code and enables 2FA for the user
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code, ipAddress string) (*models.BackupCodesResponse, error) {
	if exceeded, err := s.isRateLimited(ctx, userID, ipAddress); err != nil {
		return nil, err
	} else if exceeded {
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TOTPSecret == "" {
		return nil, ErrNoTOTPSecret
	}

	if !totp.Validate(code, user.TOTPSecret) {
		s.totpRepo.RecordAttempt(ctx, userID, ipAddress, false)
		return nil, ErrInvalidTOTPCode
	}
	s.totpRepo.RecordAttempt(ctx, userID, ipAddress, true)

	codes, hashedJSON, err := newBackupCodes()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.EnableTOTP(ctx, userID, hashedJSON); err != nil {
		return nil, err
	}

	return &models.BackupCodesResponse{Codes: codes}, nil
}

// Verify validates a TOTP code or backup code during login
func (s *TOTPService) Verify(ctx context.Context, userID int, code, ipAddress string) (bool, error) {
	if exceeded, err := s.isRateLimited(ctx, userID, ipAddress); err != nil {
		return false, err
	} else if exceeded {
		return false, ErrTooManyAttempts
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return false, ErrTOTPNotEnabled
	}

	// Try the rotating code first, then fall back to backup codes
	if totp.Validate(code, user.TOTPSecret) {
		s.totpRepo.RecordAttempt(ctx, userID, ipAddress, true)
		return true, nil
	}
	if s.consumeBackupCode(ctx, userID, code, user.BackupCodes) {
		s.totpRepo.RecordAttempt(ctx, userID, ipAddress, true)
		return true, nil
	}

	s.totpRepo.RecordAttempt(ctx, userID, ipAddress, false)
	return false, ErrInvalidTOTPCode
}

// Disable turns 2FA off after verifying password and current TOTP code
func (s *TOTPService) Disable(ctx context.Context, userID int, password, code string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return ErrInvalidPassword
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}
	return s.userRepo.DisableTOTP(ctx, userID)
}

// RegenerateBackupCodes creates new backup codes, invalidating old ones
func (s *TOTPService) RegenerateBackupCodes(ctx context.Context, userID int, password string) (*models.BackupCodesResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidPassword
	}
	if !user.TOTPEnabled {
		return nil, ErrTOTPNotEnabled
	}

	codes, hashedJSON, err := newBackupCodes()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateBackupCodes(ctx, userID, hashedJSON); err != nil {
		return nil, err
	}
	return &models.BackupCodesResponse{Codes: codes}, nil
}

// GetStatus returns the 2FA status for a user
func (s *TOTPService) GetStatus(ctx context.Context, userID int) (*models.User2FAStatus, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.User2FAStatus{
		Enabled:        user.TOTPEnabled,
		EnabledAt:      user.TOTPVerifiedAt,
		HasBackupCodes: user.BackupCodes != "" && user.BackupCodes != "[]",
	}, nil
}

// newBackupCodes returns the plaintext codes to show once and the hashed set
// for storage.
func newBackupCodes() ([]string, string, error) {
	codes := make([]string, backupCodeCount)
	hashedCodes := make([]string, backupCodeCount)
	for i := 0; i < backupCodeCount; i++ {
		code := generateRandomCode(backupCodeLength)
		codes[i] = code
		hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
		if err != nil {
			return nil, "", err
		}
		hashedCodes[i] = string(hash)
	}
	hashedJSON, err := json.Marshal(hashedCodes)
	if err != nil {
		return nil, "", err
	}
	return codes, string(hashedJSON), nil
}

// consumeBackupCode checks the code against the stored set and removes it on
// a match
func (s *TOTPService) consumeBackupCode(ctx context.Context, userID int, code, storedCodes string) bool {
	if storedCodes == "" {
		return false
	}
	var hashedCodes []string
	if err := json.Unmarshal([]byte(storedCodes), &hashedCodes); err != nil {
		return false
	}
	for i, hash := range hashedCodes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil {
			hashedCodes = append(hashedCodes[:i], hashedCodes[i+1:]...)
			updatedJSON, _ := json.Marshal(hashedCodes)
			s.userRepo.UpdateBackupCodes(ctx, userID, string(updatedJSON))
			return true
		}
	}
	return false
}

// isRateLimited checks whether the user or IP exceeded the failure budget
func (s *TOTPService) isRateLimited(ctx context.Context, userID int, ipAddress string) (bool, error) {
	cutoff := time.Now().Add(-rateLimitWindow)

	userAttempts, err := s.totpRepo.FailuresSince(ctx, userID, cutoff)
	if err != nil {
		return false, err
	}
	if userAttempts >= maxFailedAttempts {
		return true, nil
	}

	ipAttempts, err := s.totpRepo.FailuresFromIPSince(ctx, ipAddress, cutoff)
	if err != nil {
		return false, err
	}
	// Shared IPs get a looser budget
	if ipAttempts >= maxFailedAttempts*2 {
		return true, nil
	}
	return false, nil
}

// generateRandomCode creates a random alphanumeric code
func generateRandomCode(length int) string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // Excludes similar chars: I, O, 0, 1
	code := make([]byte, length)
	randomBytes := make([]byte, length)
	rand.Read(randomBytes)
	for i := range code {
		code[i] = charset[int(randomBytes[i])%len(charset)]
	}
	return string(code)
}
