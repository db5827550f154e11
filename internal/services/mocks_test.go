package services_test

import (
	"context"
	"time"

	"staffsync/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) SearchByName(ctx context.Context, keyword string) ([]models.Product, error) {
	args := m.Called(ctx, keyword)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetLowStock(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

// UpdateWithLock applies fn to a copy of the product the expectation returns, the way
// the real repository applies it to the freshly locked row.
func (m *MockProductRepository) UpdateWithLock(ctx context.Context, id string, fn func(*models.Product) error) (*models.Product, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	product := *args.Get(0).(*models.Product)
	if err := fn(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMemberRepository is a mock implementation of repositories.MemberRepository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of repositories.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) GetAll(ctx context.Context) ([]models.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByNumber(ctx context.Context, number string) (*models.Employee, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByDepartment(ctx context.Context, department string) ([]models.Employee, error) {
	args := m.Called(ctx, department)
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SearchByName(ctx context.Context, name string) ([]models.Employee, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) NextSequence(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateWithLock(ctx context.Context, id string, fn func(*models.Employee) error) (*models.Employee, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	employee := *args.Get(0).(*models.Employee)
	if err := fn(&employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSender is a mock implementation of mailer.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendVerificationCode(ctx context.Context, to, code string, ttl time.Duration) error {
	args := m.Called(ctx, to, code, ttl)
	return args.Error(0)
}
