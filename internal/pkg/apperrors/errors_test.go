package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundKind(t *testing.T) {
	if !errors.Is(ErrUserNotFound, ErrNotFound) {
		t.Errorf("Expected ErrUserNotFound to match the not-found kind")
	}
	if !errors.Is(ErrStudentNotFound, ErrNotFound) {
		t.Errorf("Expected ErrStudentNotFound to match the not-found kind")
	}
	if errors.Is(ErrUserNotFound, ErrStudentNotFound) {
		t.Errorf("Expected the specific not-found sentinels to stay distinct")
	}
}

func TestWrappedSentinelStillMatches(t *testing.T) {
	err := fmt.Errorf("%w: fetching student: boom", ErrStorage)
	if !errors.Is(err, ErrStorage) {
		t.Errorf("Expected wrapped storage error to match ErrStorage")
	}

	err = fmt.Errorf("%w: email is required", ErrValidationFailed)
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("Expected wrapped validation error to match ErrValidationFailed")
	}
}
