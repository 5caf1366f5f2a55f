package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/app/models/dto"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
)

func newTestStudentService(t *testing.T) (StudentService, *memStudentStore, int64) {
	t.Helper()

	userStore := newMemUserStore()
	userID, err := userStore.Create(context.Background(), &models.User{
		Username:     "jdoe",
		Email:        "jdoe@school.edu",
		PasswordHash: "irrelevant",
		FullName:     "Jane Doe",
		Role:         models.RoleRegistrar,
	})
	if err != nil {
		t.Fatalf("Seeding user failed: %v", err)
	}

	studentStore := newMemStudentStore()
	return NewStudentService(studentStore, userStore, zerolog.Nop()), studentStore, userID
}

func studentForm() *dto.StudentForm {
	return &dto.StudentForm{
		StudentID:      "S1001",
		FirstName:      "Alice",
		LastName:       "Smith",
		Email:          "alice.smith@school.edu",
		Phone:          "555-0101",
		Address:        "12 Main St",
		DateOfBirth:    "2001-04-20",
		Gender:         "Female",
		EnrollmentDate: "2024-09-01",
		Program:        "Computer Science",
	}
}

func TestCreateStudent(t *testing.T) {
	svc, store, userID := newTestStudentService(t)
	ctx := context.Background()

	student, err := svc.Create(ctx, userID, studentForm())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if student.ID == 0 {
		t.Errorf("Expected an assigned ID")
	}
	if student.AddedBy == nil || *student.AddedBy != userID {
		t.Errorf("Expected AddedBy to record the session user")
	}
	if student.DateOfBirth == nil || student.DateOfBirth.Year() != 2001 {
		t.Errorf("Expected parsed date of birth, got %v", student.DateOfBirth)
	}

	stored, err := store.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("Stored student not found: %v", err)
	}
	if stored.Email != "alice.smith@school.edu" {
		t.Errorf("Expected stored email, got '%s'", stored.Email)
	}
}

func TestCreateStudent_StaleSession(t *testing.T) {
	svc, store, _ := newTestStudentService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 9999, studentForm())
	if !errors.Is(err, apperrors.ErrStaleSession) {
		t.Fatalf("Expected ErrStaleSession for deleted account, got %v", err)
	}

	students, _ := store.List(ctx)
	if len(students) != 0 {
		t.Errorf("Expected no insert on stale session, got %d students", len(students))
	}
}

func TestCreateStudent_Validation(t *testing.T) {
	svc, store, userID := newTestStudentService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		edit func(*dto.StudentForm)
	}{
		{"missing student ID", func(f *dto.StudentForm) { f.StudentID = "" }},
		{"missing first name", func(f *dto.StudentForm) { f.FirstName = "  " }},
		{"missing enrollment date", func(f *dto.StudentForm) { f.EnrollmentDate = "" }},
		{"bad email", func(f *dto.StudentForm) { f.Email = "not-an-email" }},
		{"bad gender", func(f *dto.StudentForm) { f.Gender = "Unknown" }},
		{"bad enrollment date", func(f *dto.StudentForm) { f.EnrollmentDate = "01/09/2024" }},
		{"bad date of birth", func(f *dto.StudentForm) { f.DateOfBirth = "yesterday" }},
	}

	for _, tc := range cases {
		form := studentForm()
		tc.edit(form)
		if _, err := svc.Create(ctx, userID, form); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("%s: expected ErrValidationFailed, got %v", tc.name, err)
		}
	}

	students, _ := store.List(ctx)
	if len(students) != 0 {
		t.Errorf("Expected rejected forms to insert nothing, got %d students", len(students))
	}
}

func TestCreateStudent_OptionalFieldsEmpty(t *testing.T) {
	svc, _, userID := newTestStudentService(t)

	form := studentForm()
	form.Phone = ""
	form.Address = ""
	form.DateOfBirth = ""
	form.Gender = ""
	form.Program = ""

	student, err := svc.Create(context.Background(), userID, form)
	if err != nil {
		t.Fatalf("Create with empty optional fields failed: %v", err)
	}
	if student.DateOfBirth != nil {
		t.Errorf("Expected nil date of birth, got %v", student.DateOfBirth)
	}
}

func TestUpdateStudent(t *testing.T) {
	svc, store, userID := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, studentForm())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	form := studentForm()
	form.FirstName = "Alicia"
	form.Program = "Mathematics"
	if _, err := svc.Update(ctx, created.ID, form); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	stored, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if stored.FirstName != "Alicia" {
		t.Errorf("Expected first name 'Alicia', got '%s'", stored.FirstName)
	}
	if stored.Program != "Mathematics" {
		t.Errorf("Expected program 'Mathematics', got '%s'", stored.Program)
	}
	if stored.AddedBy == nil || *stored.AddedBy != userID {
		t.Errorf("Expected update to preserve the creating user")
	}
}

func TestUpdateStudent_Missing(t *testing.T) {
	svc, store, userID := newTestStudentService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, userID, studentForm()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	form := studentForm()
	form.StudentID = "S9999"
	form.Email = "someone.else@school.edu"
	if _, err := svc.Update(ctx, 404, form); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("Expected ErrStudentNotFound, got %v", err)
	}

	students, _ := store.List(ctx)
	if len(students) != 1 || students[0].StudentID != "S1001" {
		t.Errorf("Expected existing roster to be unchanged")
	}
}

func TestDeleteStudent(t *testing.T) {
	svc, store, userID := newTestStudentService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, studentForm())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, created.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("Expected student to be gone, got %v", err)
	}

	if err := svc.Delete(ctx, created.ID); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("Expected ErrStudentNotFound for repeated delete, got %v", err)
	}
}

func TestGetStudent_InvalidID(t *testing.T) {
	svc, _, _ := newTestStudentService(t)

	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("Expected ErrStudentNotFound for non-positive ID, got %v", err)
	}
}

func TestListStudents_Order(t *testing.T) {
	svc, _, userID := newTestStudentService(t)
	ctx := context.Background()

	// Insertion order deliberately scrambled; two students share a last name
	// so the first-name tie-break is exercised too.
	inserts := []struct {
		studentID, firstName, lastName string
	}{
		{"S2001", "Zoe", "Brown"},
		{"S2002", "Ben", "Adams"},
		{"S2003", "Amy", "Adams"},
	}
	for _, in := range inserts {
		form := studentForm()
		form.StudentID = in.studentID
		form.FirstName = in.firstName
		form.LastName = in.lastName
		form.Email = strings.ToLower(in.firstName + "." + in.lastName + "@school.edu")
		if _, err := svc.Create(ctx, userID, form); err != nil {
			t.Fatalf("Create %s failed: %v", in.studentID, err)
		}
	}

	students, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("Expected 3 students, got %d", len(students))
	}

	want := []struct{ lastName, firstName string }{
		{"Adams", "Amy"},
		{"Adams", "Ben"},
		{"Brown", "Zoe"},
	}
	for i, w := range want {
		if students[i].LastName != w.lastName || students[i].FirstName != w.firstName {
			t.Errorf("Position %d: expected %s, %s; got %s, %s",
				i, w.lastName, w.firstName, students[i].LastName, students[i].FirstName)
		}
	}
}
