package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaleSession       = errors.New("session references a user that no longer exists")

	// Identity errors
	ErrDuplicateIdentity = errors.New("username or email already exists")
	ErrPasswordMismatch  = errors.New("new passwords do not match")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Storage errors (catch-all for connection/statement faults)
	ErrStorage = errors.New("storage error")
)

// Not-found errors. The specific sentinels wrap ErrNotFound so callers can
// match either the exact resource or the whole kind with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrStudentNotFound = fmt.Errorf("student %w", ErrNotFound)
)
