package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/app/models/dto"
	"github.com/schoolsys/registrar/internal/app/repositories"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
	"github.com/schoolsys/registrar/internal/pkg/validation"
)

// StudentService defines the interface for student roster operations
type StudentService interface {
	List(ctx context.Context) ([]*models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	Create(ctx context.Context, userID int64, form *dto.StudentForm) (*models.Student, error)
	Update(ctx context.Context, id int64, form *dto.StudentForm) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentStore repositories.StudentStore
	userStore    repositories.UserStore
	logger       zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(studentStore repositories.StudentStore, userStore repositories.UserStore, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentStore: studentStore,
		userStore:    userStore,
		logger:       logger,
	}
}

// buildStudent validates a form and converts it into a student model
func buildStudent(form *dto.StudentForm) (*models.Student, error) {
	required := []struct {
		field string
		value string
	}{
		{"student ID", form.StudentID},
		{"first name", form.FirstName},
		{"last name", form.LastName},
		{"email", form.Email},
		{"enrollment date", form.EnrollmentDate},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", apperrors.ErrValidationFailed, r.field)
		}
	}

	if !validation.ValidEmail(form.Email) {
		return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}

	gender := models.Gender(form.Gender)
	if !models.ValidGender(gender) {
		return nil, fmt.Errorf("%w: gender must be Male, Female or Other", apperrors.ErrValidationFailed)
	}

	enrollmentDate, err := validation.ParseDate(form.EnrollmentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid enrollment date", apperrors.ErrValidationFailed)
	}

	dateOfBirth, err := validation.ParseOptionalDate(form.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date of birth", apperrors.ErrValidationFailed)
	}

	return &models.Student{
		StudentID:      strings.TrimSpace(form.StudentID),
		FirstName:      strings.TrimSpace(form.FirstName),
		LastName:       strings.TrimSpace(form.LastName),
		Email:          strings.ToLower(strings.TrimSpace(form.Email)),
		Phone:          strings.TrimSpace(form.Phone),
		Address:        strings.TrimSpace(form.Address),
		DateOfBirth:    dateOfBirth,
		Gender:         gender,
		EnrollmentDate: enrollmentDate,
		Program:        strings.TrimSpace(form.Program),
	}, nil
}

// List returns the full roster ordered by last name then first name
func (s *studentServiceImpl) List(ctx context.Context) ([]*models.Student, error) {
	return s.studentStore.List(ctx)
}

// Get retrieves a single student
func (s *studentServiceImpl) Get(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.ErrStudentNotFound
	}
	return s.studentStore.GetByID(ctx, id)
}

// Create inserts a new student on behalf of the given user. The user ID is
// re-resolved against storage first: a live session for a deleted account is
// rejected before any insert happens.
func (s *studentServiceImpl) Create(ctx context.Context, userID int64, form *dto.StudentForm) (*models.Student, error) {
	exists, err := s.userStore.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrStaleSession
	}

	student, err := buildStudent(form)
	if err != nil {
		return nil, err
	}
	student.AddedBy = &userID

	if _, err := s.studentStore.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", student.ID).Str("studentID", student.StudentID).Msg("Student created")
	return student, nil
}

// Update overwrites all mutable attributes of an existing student
func (s *studentServiceImpl) Update(ctx context.Context, id int64, form *dto.StudentForm) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.ErrStudentNotFound
	}

	student, err := buildStudent(form)
	if err != nil {
		return nil, err
	}
	student.ID = id

	if err := s.studentStore.Update(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", id).Msg("Student updated")
	return student, nil
}

// Delete removes a student after confirming it exists. Callers reach this only
// from the execute phase of the two-phase delete flow.
func (s *studentServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.studentStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Msg("Student deleted")
	return nil
}
