package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/db"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
	"github.com/schoolsys/registrar/internal/pkg/dberrors"
	"github.com/schoolsys/registrar/internal/pkg/helpers"
	"github.com/schoolsys/registrar/internal/pkg/logger"
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var studentColumns = []string{
	"id", "student_id", "first_name", "last_name", "email", "phone", "address",
	"date_of_birth", "gender", "enrollment_date", "program", "added_by",
	"created_at", "updated_at",
}

// scanStudent scans one student row with its nullable columns
func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	var phone, address, gender, program sql.NullString
	var dateOfBirth sql.NullTime
	var addedBy sql.NullInt64

	err := row.Scan(
		&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Email,
		&phone, &address, &dateOfBirth, &gender, &s.EnrollmentDate,
		&program, &addedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.Phone = phone.String
	s.Address = address.String
	s.Gender = models.Gender(gender.String)
	s.Program = program.String
	if dateOfBirth.Valid {
		dob := dateOfBirth.Time
		s.DateOfBirth = &dob
	}
	if addedBy.Valid {
		id := addedBy.Int64
		s.AddedBy = &id
	}

	return s, nil
}

// Create inserts a new student and returns its ID. Runs in its own transaction.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	var dateOfBirth sql.NullTime
	if student.DateOfBirth != nil {
		dateOfBirth = sql.NullTime{Time: *student.DateOfBirth, Valid: true}
	}

	query, args, err := r.sb.Insert("students").
		Columns("student_id", "first_name", "last_name", "email", "phone", "address",
			"date_of_birth", "gender", "enrollment_date", "program", "added_by").
		Values(student.StudentID, student.FirstName, student.LastName, student.Email,
			helpers.GetContentNullString(student.Phone),
			helpers.GetContentNullString(student.Address),
			dateOfBirth,
			helpers.GetContentNullString(string(student.Gender)),
			student.EnrollmentDate,
			helpers.GetContentNullString(student.Program),
			helpers.GetNullInt64(student.AddedBy)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create student query: %w", err)
	}

	var id int64
	txErr := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(&id)
	})
	if txErr != nil {
		if dberrors.IsUniqueViolation(txErr) {
			return 0, apperrors.ErrDuplicateIdentity
		}
		// The only FK on students is added_by: the session account vanished
		// between the existence check and this insert
		if dberrors.IsForeignKeyViolation(txErr) {
			return 0, apperrors.ErrStaleSession
		}
		logger.Error().Err(txErr).Str("studentID", student.StudentID).Msg("Error creating student")
		return 0, fmt.Errorf("%w: creating student: %v", apperrors.ErrStorage, txErr)
	}

	student.ID = id
	return id, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("%w: fetching student: %v", apperrors.ErrStorage, err)
	}

	return student, nil
}

// List retrieves all students joined with the creating user's username,
// ordered by last name then first name.
func (r *StudentRepository) List(ctx context.Context) ([]*models.Student, error) {
	query, args, err := r.sb.Select(
		"s.id", "s.student_id", "s.first_name", "s.last_name", "s.email",
		"s.phone", "s.address", "s.date_of_birth", "s.gender",
		"s.enrollment_date", "s.program", "s.added_by", "s.created_at",
		"s.updated_at", "u.username").
		From("students s").
		LeftJoin("users u ON s.added_by = u.id").
		OrderBy("s.last_name", "s.first_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing students: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{}
		var phone, address, gender, program, addedByUsername sql.NullString
		var dateOfBirth sql.NullTime
		var addedBy sql.NullInt64

		if err := rows.Scan(
			&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Email,
			&phone, &address, &dateOfBirth, &gender, &s.EnrollmentDate,
			&program, &addedBy, &s.CreatedAt, &s.UpdatedAt, &addedByUsername); err != nil {
			return nil, fmt.Errorf("%w: scanning student row: %v", apperrors.ErrStorage, err)
		}

		s.Phone = phone.String
		s.Address = address.String
		s.Gender = models.Gender(gender.String)
		s.Program = program.String
		s.AddedByUsername = addedByUsername.String
		if dateOfBirth.Valid {
			dob := dateOfBirth.Time
			s.DateOfBirth = &dob
		}
		if addedBy.Valid {
			id := addedBy.Int64
			s.AddedBy = &id
		}

		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating student rows: %v", apperrors.ErrStorage, err)
	}

	return students, nil
}

// Update overwrites all mutable attributes of a student. Zero rows affected
// means the student does not exist. Runs in its own transaction.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	var dateOfBirth sql.NullTime
	if student.DateOfBirth != nil {
		dateOfBirth = sql.NullTime{Time: *student.DateOfBirth, Valid: true}
	}

	query, args, err := r.sb.Update("students").
		Set("student_id", student.StudentID).
		Set("first_name", student.FirstName).
		Set("last_name", student.LastName).
		Set("email", student.Email).
		Set("phone", helpers.GetContentNullString(student.Phone)).
		Set("address", helpers.GetContentNullString(student.Address)).
		Set("date_of_birth", dateOfBirth).
		Set("gender", helpers.GetContentNullString(string(student.Gender))).
		Set("enrollment_date", student.EnrollmentDate).
		Set("program", helpers.GetContentNullString(student.Program)).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	txErr := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, apperrors.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		if dberrors.IsUniqueViolation(txErr) {
			return apperrors.ErrDuplicateIdentity
		}
		logger.Error().Err(txErr).Int64("id", student.ID).Msg("Error updating student")
		return fmt.Errorf("%w: updating student: %v", apperrors.ErrStorage, txErr)
	}

	return nil
}

// Delete removes a student by ID. Runs in its own transaction.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	txErr := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, apperrors.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		logger.Error().Err(txErr).Int64("id", id).Msg("Error deleting student")
		return fmt.Errorf("%w: deleting student: %v", apperrors.ErrStorage, txErr)
	}

	return nil
}
