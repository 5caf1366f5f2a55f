package repositories

import (
	"context"

	"github.com/schoolsys/registrar/internal/app/models"
	"github.com/schoolsys/registrar/internal/db"
)

// UserStore defines the storage gateway for staff users. Services depend on
// this interface so tests can substitute an in-memory implementation.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context) ([]*models.User, error)
}

// StudentStore defines the storage gateway for student records.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Users    *UserRepository
	Students *StudentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Students: NewStudentRepository(database),
	}
}
