package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/app/repositories"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
	"github.com/schoolsys/registrar/internal/pkg/auth"
)

// Default administrator account created on first startup. The password is a
// well-known bootstrap value and must be changed right after deployment.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@school.edu"
	DefaultAdminPassword = "admin123"
	DefaultAdminFullName = "System Administrator"
)

// CreateDefaultAdmin inserts the bootstrap admin account if it is absent.
// Safe to run on every startup; a second invocation is a no-op.
func CreateDefaultAdmin(ctx context.Context, users repositories.UserStore, lgr zerolog.Logger) error {
	hash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: hash,
		FullName:     DefaultAdminFullName,
		Role:         models.RoleAdmin,
	}

	if _, err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateIdentity) {
			lgr.Info().Msg("Admin user already exists, skipping creation")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created")
	return nil
}
