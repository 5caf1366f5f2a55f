package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/db"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
	"github.com/schoolsys/registrar/internal/pkg/dberrors"
	"github.com/schoolsys/registrar/internal/pkg/logger"
)

// UserRepository handles staff user database operations
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user and returns its ID. Runs in its own transaction.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	query, args, err := r.sb.Insert("users").
		Columns("username", "email", "password_hash", "full_name", "role").
		Values(user.Username, user.Email, user.PasswordHash, user.FullName, user.Role).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	txErr := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&id, &user.CreatedAt)
	})
	if txErr != nil {
		if dberrors.IsUniqueViolation(txErr) {
			return 0, apperrors.ErrDuplicateIdentity
		}
		logger.Error().Err(txErr).Str("username", user.Username).Msg("Error creating user")
		return 0, fmt.Errorf("%w: creating user: %v", apperrors.ErrStorage, txErr)
	}

	user.ID = id
	return id, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query, args, err := r.sb.Select("id", "username", "email", "password_hash", "full_name", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: fetching user by username: %v", apperrors.ErrStorage, err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := r.sb.Select("id", "username", "email", "password_hash", "full_name", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{}
	err = r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: fetching user by id: %v", apperrors.ErrStorage, err)
	}

	return user, nil
}

// Exists checks whether a user with the given ID is present
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking user existence: %v", apperrors.ErrStorage, err)
	}

	return exists, nil
}

// UpdatePassword replaces the stored password hash. Runs in its own transaction.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query, args, err := r.sb.Update("users").
		Set("password_hash", passwordHash).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			logger.Error().Err(err).Int64("userID", id).Msg("Error updating password")
			return fmt.Errorf("%w: updating password: %v", apperrors.ErrStorage, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrUserNotFound
		}
		return nil
	})
}

// List retrieves all staff users ordered by username
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query, args, err := r.sb.Select("id", "username", "email", "password_hash", "full_name", "role", "created_at").
		From("users").
		OrderBy("username").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing users: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.FullName, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning user row: %v", apperrors.ErrStorage, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", apperrors.ErrStorage, err)
	}

	return users, nil
}
