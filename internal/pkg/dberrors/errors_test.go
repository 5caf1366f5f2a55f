package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "students_email_key"}

	if !IsUniqueViolation(uniqueErr) {
		t.Errorf("Expected code 23505 to classify as unique violation")
	}
	if !IsUniqueViolation(fmt.Errorf("creating student: %w", uniqueErr)) {
		t.Errorf("Expected wrapped unique violation to classify")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Errorf("Expected code 23503 not to classify as unique violation")
	}
	if IsUniqueViolation(errors.New("connection refused")) {
		t.Errorf("Expected a plain error not to classify")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "students_added_by_fkey"}

	if !IsForeignKeyViolation(fkErr) {
		t.Errorf("Expected code 23503 to classify as foreign key violation")
	}
	if !IsForeignKeyViolation(fmt.Errorf("creating student: %w", fkErr)) {
		t.Errorf("Expected wrapped foreign key violation to classify")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Errorf("Expected code 23505 not to classify as foreign key violation")
	}
	if IsForeignKeyViolation(nil) {
		t.Errorf("Expected nil not to classify")
	}
}
