package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/app/models/dto"
	"github.com/schoolsys/registrar/internal/app/repositories"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
	"github.com/schoolsys/registrar/internal/pkg/auth"
	"github.com/schoolsys/registrar/internal/pkg/validation"
)

// AuthService defines the interface for identity operations
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error)
	Register(ctx context.Context, req *dto.SignupRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userStore repositories.UserStore
	logger    zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userStore repositories.UserStore, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userStore: userStore,
		logger:    logger,
	}
}

// validateSignup validates sign-up data before touching storage
func (s *authServiceImpl) validateSignup(req *dto.SignupRequest) error {
	if !validation.ValidUsername(strings.TrimSpace(req.Username)) {
		return fmt.Errorf("%w: username must be 3-50 characters (letters, digits, . _ -)", apperrors.ErrValidationFailed)
	}

	if !validation.ValidEmail(req.Email) {
		return fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}

	if len(req.Password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: full name cannot be empty", apperrors.ErrValidationFailed)
	}

	return nil
}

// Login verifies a username/password pair. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, error) {
	user, err := s.userStore.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// Register creates a new staff account with the default registrar role
func (s *authServiceImpl) Register(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	if err := s.validateSignup(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         models.RoleRegistrar,
	}

	if _, err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateIdentity) {
			return nil, apperrors.ErrDuplicateIdentity
		}
		s.logger.Error().Err(err).Str("username", user.Username).Msg("Failed to register user")
		return nil, err
	}

	return user, nil
}

// ChangePassword replaces the caller's password hash. The confirmation check
// runs before any storage access; the session itself is left untouched.
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	if len(req.NewPassword) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userStore.UpdatePassword(ctx, userID, hash)
}

// ListUsers returns all staff accounts for the admin user list
func (s *authServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.userStore.List(ctx)
}
