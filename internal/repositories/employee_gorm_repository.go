package repositories

import (
	"context"
	"errors"
	"fmt"

	"staffsync/internal/apperror"
	"staffsync/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMEmployeeRepository is a GORM implementation of EmployeeRepository.
type GORMEmployeeRepository struct {
	db *gorm.DB
}

// NewGORMEmployeeRepository creates a new instance of GORMEmployeeRepository.
func NewGORMEmployeeRepository(db *gorm.DB) *GORMEmployeeRepository {
	return &GORMEmployeeRepository{db: db}
}

// GetAll retrieves all employees ordered by number.
func (r *GORMEmployeeRepository) GetAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).Order("seq").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to get all employees: %w", err)
	}
	return employees, nil
}

// GetByID retrieves an employee by ID.
func (r *GORMEmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByNumber retrieves an employee by EMPnnn number.
func (r *GORMEmployeeRepository) GetByNumber(ctx context.Context, number string) (*models.Employee, error) {
	return r.first(ctx, "number = ?", number)
}

// GetByDepartment retrieves the employees of one department.
func (r *GORMEmployeeRepository) GetByDepartment(ctx context.Context, department string) ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.WithContext(ctx).Where("department = ?", department).Order("seq").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to get employees in department %s: %w", department, err)
	}
	return employees, nil
}

// SearchByName matches name anywhere in the employee name, ignoring case.
func (r *GORMEmployeeRepository) SearchByName(ctx context.Context, name string) ([]models.Employee, error) {
	var employees []models.Employee
	if err := nameContains(r.db.WithContext(ctx), name).Order("seq").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to search employees by %q: %w", name, err)
	}
	return filterByName(employees, name, func(e models.Employee) string { return e.Name }), nil
}

// ExistsByEmail reports whether an employee already uses email.
func (r *GORMEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Employee{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check employee email %s: %w", email, err)
	}
	return count > 0, nil
}

// NextSequence returns one past the highest sequence in use, or 1 when empty.
func (r *GORMEmployeeRepository) NextSequence(ctx context.Context) (int, error) {
	var maxSeq int
	if err := r.db.WithContext(ctx).Model(&models.Employee{}).Select("COALESCE(MAX(seq), 0)").Scan(&maxSeq).Error; err != nil {
		return 0, fmt.Errorf("failed to read employee sequence: %w", err)
	}
	return maxSeq + 1, nil
}

// Count returns the number of stored employees.
func (r *GORMEmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

// Create stores an employee. Collisions on email or employee number come back as
// validation errors.
func (r *GORMEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(employee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Validation("email", "employee %s or email %s already exists", employee.Number, employee.Email)
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// UpdateWithLock runs fn against the locked row and persists the result.
func (r *GORMEmployeeRepository) UpdateWithLock(ctx context.Context, id string, fn func(*models.Employee) error) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&employee, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return employeeNotFound(id)
			}
			return fmt.Errorf("failed to lock employee %s: %w", id, err)
		}
		if err := fn(&employee); err != nil {
			return err
		}
		if err := tx.Save(&employee).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperror.Validation("email", "email %s already exists", employee.Email)
			}
			return fmt.Errorf("failed to update employee %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Delete removes an employee by ID.
func (r *GORMEmployeeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return employeeNotFound(id)
	}
	return nil
}

func (r *GORMEmployeeRepository) first(ctx context.Context, query string, arg string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("employee %s not found", arg)
		}
		return nil, fmt.Errorf("failed to get employee %s: %w", arg, err)
	}
	return &employee, nil
}

func employeeNotFound(id string) error {
	return apperror.NotFound("employee %s not found", id)
}
