package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"staffsync/internal/apperror"
	"staffsync/internal/models"
	"staffsync/internal/repositories"

	"go.uber.org/zap"
)

// CreateEmployeeInput is the data needed to hire an employee. HireDate uses
// models.HireDateLayout.
type CreateEmployeeInput struct {
	Name       string  `json:"name" validate:"required,max=50"`
	Email      string  `json:"email" validate:"required,email"`
	HireDate   string  `json:"hireDate" validate:"required"`
	Salary     float64 `json:"salary" validate:"gte=0"`
	Department string  `json:"department" validate:"max=50"`
}

// UpdateEmployeeInput is a partial update; nil fields are left unchanged.
type UpdateEmployeeInput struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Salary     *float64 `json:"salary"`
	Department *string  `json:"department"`
}

// EmployeeService manages staff records.
type EmployeeService struct {
	repo   repositories.EmployeeRepository
	logger *zap.Logger

	// numbering reads MAX(seq) then inserts
	createMu sync.Mutex
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(repo repositories.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		logger: logger,
	}
}

// GetAllEmployees returns every employee in number order.
func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.repo.GetAll(ctx)
}

// GetEmployeeByID returns the employee with the given ID.
func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// GetEmployeeByNumber looks an employee up by the EMPnnn number.
func (s *EmployeeService) GetEmployeeByNumber(ctx context.Context, number string) (*models.Employee, error) {
	return s.repo.GetByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
}

// GetEmployeesByDepartment returns the employees of one department.
func (s *EmployeeService) GetEmployeesByDepartment(ctx context.Context, department string) ([]models.Employee, error) {
	return s.repo.GetByDepartment(ctx, department)
}

// SearchEmployees matches name anywhere in the employee name, ignoring case.
func (s *EmployeeService) SearchEmployees(ctx context.Context, name string) ([]models.Employee, error) {
	return s.repo.SearchByName(ctx, name)
}

// CreateEmployee validates the input, assigns the next employee number and stores the
// record.
func (s *EmployeeService) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*models.Employee, error) {
	hireDate, err := time.Parse(models.HireDateLayout, strings.TrimSpace(in.HireDate))
	if err != nil {
		return nil, apperror.Validation("hireDate", "hireDate must use the format YYYY-MM-DD")
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	exists, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Validation("email", "email %s is already in use", in.Email)
	}

	seq, err := s.repo.NextSequence(ctx)
	if err != nil {
		return nil, err
	}
	employee, err := models.NewEmployee(seq, in.Name, in.Email, hireDate, in.Salary, in.Department)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("employee created", zap.String("id", employee.ID), zap.String("employeeId", employee.Number))
	return employee, nil
}

// UpdateEmployee applies a partial update. Changing the email to one already in use is a
// validation error.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, in UpdateEmployeeInput) (*models.Employee, error) {
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if *in.Email != current.Email {
			exists, err := s.repo.ExistsByEmail(ctx, *in.Email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperror.Validation("email", "email %s is already in use", *in.Email)
			}
		}
	}

	return s.repo.UpdateWithLock(ctx, id, func(e *models.Employee) error {
		return e.Update(in.Name, in.Email, in.Salary, in.Department)
	})
}

// DeleteEmployee removes an employee. Their number is never handed out again unless it
// was the highest one.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("employee deleted", zap.String("id", id))
	return nil
}
