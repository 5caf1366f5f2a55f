package services

import (
	"context"
	"sort"
	"time"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/pkg/apperrors"
)

// memUserStore is an in-memory UserStore used by the service tests.
type memUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (s *memUserStore) Create(ctx context.Context, user *models.User) (int64, error) {
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return 0, apperrors.ErrDuplicateIdentity
		}
	}

	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++
	copied := *user
	s.users[user.ID] = &copied
	return user.ID, nil
}

func (s *memUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *memUserStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := s.users[id]
	return ok, nil
}

func (s *memUserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (s *memUserStore) List(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// memStudentStore is an in-memory StudentStore used by the service tests.
type memStudentStore struct {
	students map[int64]*models.Student
	nextID   int64
}

func newMemStudentStore() *memStudentStore {
	return &memStudentStore{students: make(map[int64]*models.Student), nextID: 1}
}

func (s *memStudentStore) Create(ctx context.Context, student *models.Student) (int64, error) {
	for _, existing := range s.students {
		if existing.StudentID == student.StudentID || existing.Email == student.Email {
			return 0, apperrors.ErrDuplicateIdentity
		}
	}

	student.ID = s.nextID
	student.CreatedAt = time.Now()
	student.UpdatedAt = student.CreatedAt
	s.nextID++
	copied := *student
	s.students[student.ID] = &copied
	return student.ID, nil
}

func (s *memStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	copied := *student
	return &copied, nil
}

func (s *memStudentStore) List(ctx context.Context) ([]*models.Student, error) {
	students := make([]*models.Student, 0, len(s.students))
	for _, student := range s.students {
		copied := *student
		students = append(students, &copied)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].LastName != students[j].LastName {
			return students[i].LastName < students[j].LastName
		}
		return students[i].FirstName < students[j].FirstName
	})
	return students, nil
}

func (s *memStudentStore) Update(ctx context.Context, student *models.Student) error {
	existing, ok := s.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}

	copied := *student
	copied.AddedBy = existing.AddedBy
	copied.CreatedAt = existing.CreatedAt
	copied.UpdatedAt = time.Now()
	s.students[student.ID] = &copied
	return nil
}

func (s *memStudentStore) Delete(ctx context.Context, id int64) error {
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}
