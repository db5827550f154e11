package repositories

import (
	"context"

	"staffsync/internal/models"
)

// EmployeeRepository defines the interface for employee data access.
type EmployeeRepository interface {
	GetAll(ctx context.Context) ([]models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	GetByNumber(ctx context.Context, number string) (*models.Employee, error)
	GetByDepartment(ctx context.Context, department string) ([]models.Employee, error)
	SearchByName(ctx context.Context, name string) ([]models.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// NextSequence returns the sequence the next employee number should use.
	NextSequence(ctx context.Context) (int, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, employee *models.Employee) error
	UpdateWithLock(ctx context.Context, id string, fn func(*models.Employee) error) (*models.Employee, error)
	Delete(ctx context.Context, id string) error
}
