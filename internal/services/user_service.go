package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/estroop3-gif/second-watch-network-sub012/internal/auth"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/cache"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/mail"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/models"
	"github.com/estroop3-gif/second-watch-network-sub012/internal/repositories"
)

// ErrEmailTaken is matched by the signup handler to attach the field name
// to the error payload.
var ErrEmailTaken = errors.New("email already registered")

const confirmationCodeTTL = 24 * time.Hour

type UserService struct {
	Repo        *repositories.UserRepository
	ProfileRepo *repositories.ProfileRepository
	LoginLogs   *repositories.LoginLogRepository
	TOTP        *TOTPService
	JWTManager  *auth.JWTManager
	Mailer      mail.Mailer
	Logger      *zap.Logger
}

func NewUserService(repo *repositories.UserRepository, profileRepo *repositories.ProfileRepository, loginLogs *repositories.LoginLogRepository, totp *TOTPService, jwtManager *auth.JWTManager, mailer mail.Mailer, logger *zap.Logger) *UserService {
	return &UserService{
		Repo:        repo,
		ProfileRepo: profileRepo,
		LoginLogs:   loginLogs,
		TOTP:        totp,
		JWTManager:  jwtManager,
		Mailer:      mailer,
		Logger:      logger,
	}
}

// Signup creates an unconfirmed member account and emails a confirmation code
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}

	if strength := auth.ScorePassword(req.Password); strength.Score < 3 {
		return nil, errors.New("password too weak: use at least 8 characters mixing upper, lower, digits and symbols")
	}

	exists, err := s.Repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         models.RoleMember,
		Confirmed:    false,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Every account gets a profile shell immediately
	if err := s.ProfileRepo.EnsureProfile(ctx, user.ID, user.Name); err != nil {
		s.Logger.Error("failed to create profile", zap.Int("user_id", user.ID), zap.Error(err))
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetConfirmationCode(ctx, user.ID, code, time.Now().Add(confirmationCodeTTL)); err != nil {
		return nil, err
	}
	if err := s.Mailer.SendConfirmationCode(user.Email, user.Name, code); err != nil {
		// The account exists either way; the code can be re-requested
		s.Logger.Error("failed to send confirmation code", zap.String("email", user.Email), zap.Error(err))
	}

	return s.issueSession(user)
}

// Confirm matches the emailed code and flips the confirmed flag
func (s *UserService) Confirm(ctx context.Context, req *models.ConfirmRequest) error {
	if req.Email == "" || req.Code == "" {
		return errors.New("email and code are required")
	}
	ok, err := s.Repo.ConfirmUser(ctx, req.Email, req.Code)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid or expired confirmation code")
	}
	return nil
}

// ResendConfirmation issues a fresh code for an unconfirmed account
func (s *UserService) ResendConfirmation(ctx context.Context, email string) error {
	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		return errors.New("account not found")
	}
	if user.Confirmed {
		return errors.New("account already confirmed")
	}
	code, err := generateConfirmationCode()
	if err != nil {
		return err
	}
	if err := s.Repo.SetConfirmationCode(ctx, user.ID, code, time.Now().Add(confirmationCodeTTL)); err != nil {
		return err
	}
	return s.Mailer.SendConfirmationCode(user.Email, user.Name, code)
}

// Login authenticates a user. When the account has 2FA enabled the second
// return value carries the challenge instead of a session.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest, ipAddress, userAgent string) (*models.AuthResponse, *models.LoginStep1Response, error) {
	if req.Email == "" || req.Password == "" {
		return nil, nil, errors.New("email and password are required")
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, errors.New("invalid email or password")
	}

	// Cached credential check skips the bcrypt work on hot logins
	cachedID, cached := cache.GetCachedAuth(ctx, req.Email, req.Password)
	if !cached || cachedID != int64(user.ID) {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, nil, errors.New("invalid email or password")
		}
		cache.CacheAuth(ctx, req.Email, req.Password, int64(user.ID))
	}

	if !user.IsActive {
		return nil, nil, errors.New("account suspended")
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, nil, err
		}
		return nil, &models.LoginStep1Response{
			Requires2FA: true,
			TempToken:   tempToken,
			Message:     "two-factor code required",
		}, nil
	}

	authResp, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	s.recordLogin(ctx, user.ID, ipAddress, userAgent)
	return authResp, nil, nil
}

// VerifyTwoFactor completes a 2FA login with the temp token from step one
func (s *UserService) VerifyTwoFactor(ctx context.Context, req *models.TOTPVerifyRequest, ipAddress, userAgent string) (*models.AuthResponse, error) {
	claims, err := s.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		return nil, errors.New("invalid or expired 2FA token")
	}

	ok, err := s.TOTP.Verify(ctx, claims.UserID, req.Code, ipAddress)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTOTPCode
	}

	user, err := s.Repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, errors.New("account suspended")
	}
	authResp, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	s.recordLogin(ctx, user.ID, ipAddress, userAgent)
	return authResp, nil
}

// Refresh exchanges a refresh token for a new session pair
func (s *UserService) Refresh(ctx context.Context, req *models.RefreshRequest) (*models.AuthResponse, error) {
	claims, err := s.JWTManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	user, err := s.Repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.New("account not found")
	}
	if !user.IsActive {
		return nil, errors.New("account suspended")
	}
	return s.issueSession(user)
}

// UpdateMetadata updates the caller's own account fields
func (s *UserService) UpdateMetadata(ctx context.Context, userID int, req *models.UpdateMetadataRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if err := s.Repo.UpdateName(ctx, userID, req.Name); err != nil {
		return nil, err
	}
	return s.Repo.GetUserByID(ctx, userID)
}

// ChangePassword verifies the current password before setting a new one
func (s *UserService) ChangePassword(ctx context.Context, userID int, current, next string) error {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, current) {
		return errors.New("current password is incorrect")
	}
	if strength := auth.ScorePassword(next); strength.Score < 3 {
		return errors.New("password too weak: use at least 8 characters mixing upper, lower, digits and symbols")
	}
	hashed, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}
	cache.InvalidateAuth(ctx, user.Email, current)
	return nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.GetUserByID(ctx, id)
}

// ListUsers returns all users (admin)
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// CreateUser creates a pre-confirmed account (admin)
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, errors.New("name, email, and password are required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if role != models.RoleAdmin && role != models.RoleMember {
		return nil, errors.New("invalid role")
	}

	exists, err := s.Repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Confirmed:    true,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.ProfileRepo.EnsureProfile(ctx, user.ID, user.Name); err != nil {
		s.Logger.Error("failed to create profile", zap.Int("user_id", user.ID), zap.Error(err))
	}
	return user, nil
}

// UpdateUser updates name, email, role and optionally password (admin)
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.New("name and email are required")
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleMember {
		return nil, errors.New("invalid role")
	}
	if err := s.Repo.UpdateUser(ctx, id, req.Name, req.Email, req.Role); err != nil {
		return nil, err
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		if err := s.Repo.UpdatePassword(ctx, id, hashed); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetUserByID(ctx, id)
}

// SetActive suspends or restores an account (admin)
func (s *UserService) SetActive(ctx context.Context, id int, active bool) error {
	return s.Repo.SetActive(ctx, id, active)
}

// DeleteUser removes an account (admin)
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.Repo.DeleteUser(ctx, id)
}

func (s *UserService) issueSession(user *models.User) (*models.AuthResponse, error) {
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.JWTManager.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// recordLogin appends to the sign-in audit trail. A write failure never
// blocks the login itself.
func (s *UserService) recordLogin(ctx context.Context, userID int, ipAddress, userAgent string) {
	if err := s.LoginLogs.CreateLoginLog(ctx, userID, ipAddress, userAgent); err != nil {
		s.Logger.Error("failed to record login", zap.Int("user_id", userID), zap.Error(err))
	}
}

// generateConfirmationCode returns a random 6-digit code
func generateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
