package services_test

import (
	"context"
	"testing"
	"time"

	"staffsync/internal/apperror"
	"staffsync/internal/models"
	"staffsync/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEmployeeService() (*services.EmployeeService, *MockEmployeeRepository) {
	mockRepo := new(MockEmployeeRepository)
	return services.NewEmployeeService(mockRepo, zap.NewNop()), mockRepo
}

func mustEmployee(t *testing.T, seq int, name, email string) *models.Employee {
	t.Helper()
	e, err := models.NewEmployee(seq, name, email, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), 50000000, "개발팀")
	require.NoError(t, err)
	e.ID = "emp-" + e.Number
	return e
}

func TestEmployeeService_CreateEmployee(t *testing.T) {
	service, mockRepo := newEmployeeService()
	ctx := context.Background()

	mockRepo.On("ExistsByEmail", ctx, "kim@staffsync.com").Return(false, nil).Once()
	mockRepo.On("NextSequence", ctx).Return(6, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Employee")).Return(nil).Once()

	employee, err := service.CreateEmployee(ctx, services.CreateEmployeeInput{
		Name: "김철수", Email: "kim@staffsync.com", HireDate: "2020-01-15", Salary: 50000000, Department: "개발팀",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP006", employee.Number)
	assert.Equal(t, "2020-01-15", employee.FormattedHireDate())
	mockRepo.AssertExpectations(t)
}

func TestEmployeeService_CreateEmployeeRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("bad hire date", func(t *testing.T) {
		service, mockRepo := newEmployeeService()
		_, err := service.CreateEmployee(ctx, services.CreateEmployeeInput{
			Name: "Kim", Email: "kim@staffsync.com", HireDate: "15/01/2020",
		})
		assert.Equal(t, "hireDate", apperror.FieldOf(err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		service, mockRepo := newEmployeeService()
		mockRepo.On("ExistsByEmail", ctx, "kim@staffsync.com").Return(true, nil).Once()

		_, err := service.CreateEmployee(ctx, services.CreateEmployeeInput{
			Name: "Kim", Email: "kim@staffsync.com", HireDate: "2020-01-15",
		})
		assert.True(t, apperror.IsValidation(err))
		assert.Equal(t, "email", apperror.FieldOf(err))
		mockRepo.AssertNotCalled(t, "NextSequence", mock.Anything)
	})

	t.Run("negative salary", func(t *testing.T) {
		service, mockRepo := newEmployeeService()
		mockRepo.On("ExistsByEmail", ctx, "kim@staffsync.com").Return(false, nil).Once()
		mockRepo.On("NextSequence", ctx).Return(1, nil).Once()

		_, err := service.CreateEmployee(ctx, services.CreateEmployeeInput{
			Name: "Kim", Email: "kim@staffsync.com", HireDate: "2020-01-15", Salary: -1,
		})
		assert.Equal(t, "salary", apperror.FieldOf(err))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestEmployeeService_Queries(t *testing.T) {
	service, mockRepo := newEmployeeService()
	ctx := context.Background()
	kim := mustEmployee(t, 1, "김철수", "kim@staffsync.com")

	mockRepo.On("GetAll", ctx).Return([]models.Employee{*kim}, nil).Once()
	mockRepo.On("GetByID", ctx, kim.ID).Return(kim, nil).Once()
	mockRepo.On("GetByNumber", ctx, "EMP001").Return(kim, nil).Once()
	mockRepo.On("GetByDepartment", ctx, "개발팀").Return([]models.Employee{*kim}, nil).Once()
	mockRepo.On("SearchByName", ctx, "철수").Return([]models.Employee{*kim}, nil).Once()

	all, err := service.GetAllEmployees(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	byID, err := service.GetEmployeeByID(ctx, kim.ID)
	assert.NoError(t, err)
	assert.Equal(t, kim, byID)

	byNumber, err := service.GetEmployeeByNumber(ctx, " emp001 ")
	assert.NoError(t, err)
	assert.Equal(t, kim, byNumber)

	byDepartment, err := service.GetEmployeesByDepartment(ctx, "개발팀")
	assert.NoError(t, err)
	assert.Len(t, byDepartment, 1)

	found, err := service.SearchEmployees(ctx, "철수")
	assert.NoError(t, err)
	assert.Len(t, found, 1)

	mockRepo.AssertExpectations(t)
}

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		service, mockRepo := newEmployeeService()
		kim := mustEmployee(t, 1, "김철수", "kim@staffsync.com")
		mockRepo.On("UpdateWithLock", ctx, kim.ID, mock.Anything).Return(kim, nil).Once()

		salary := 55000000.0
		department := "플랫폼팀"
		updated, err := service.UpdateEmployee(ctx, kim.ID, services.UpdateEmployeeInput{Salary: &salary, Department: &department})
		require.NoError(t, err)
		assert.Equal(t, 55000000.0, updated.Salary)
		assert.Equal(t, "플랫폼팀", updated.Department)
		assert.Equal(t, "김철수", updated.Name)
		mockRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("email taken by someone else", func(t *testing.T) {
		service, mockRepo := newEmployeeService()
		kim := mustEmployee(t, 1, "김철수", "kim@staffsync.com")
		mockRepo.On("GetByID", ctx, kim.ID).Return(kim, nil).Once()
		mockRepo.On("ExistsByEmail", ctx, "lee@staffsync.com").Return(true, nil).Once()

		email := "lee@staffsync.com"
		_, err := service.UpdateEmployee(ctx, kim.ID, services.UpdateEmployeeInput{Email: &email})
		assert.True(t, apperror.IsValidation(err))
		mockRepo.AssertNotCalled(t, "UpdateWithLock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same email is not a conflict", func(t *testing.T) {
		service, mockRepo := newEmployeeService()
		kim := mustEmployee(t, 1, "김철수", "kim@staffsync.com")
		mockRepo.On("GetByID", ctx, kim.ID).Return(kim, nil).Once()
		mockRepo.On("UpdateWithLock", ctx, kim.ID, mock.Anything).Return(kim, nil).Once()

		email := "kim@staffsync.com"
		_, err := service.UpdateEmployee(ctx, kim.ID, services.UpdateEmployeeInput{Email: &email})
		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("missing employee", func(t *testing.T) {
		service, mockRepo := newEmployeeService()
		mockRepo.On("UpdateWithLock", ctx, "missing", mock.Anything).Return(nil, apperror.NotFound("employee missing not found")).Once()

		name := "Nobody"
		_, err := service.UpdateEmployee(ctx, "missing", services.UpdateEmployeeInput{Name: &name})
		assert.True(t, apperror.IsNotFound(err))
	})
}

func TestEmployeeService_DeleteEmployee(t *testing.T) {
	service, mockRepo := newEmployeeService()
	ctx := context.Background()
	kim := mustEmployee(t, 1, "김철수", "kim@staffsync.com")

	mockRepo.On("GetByID", ctx, kim.ID).Return(kim, nil).Once()
	mockRepo.On("Delete", ctx, kim.ID).Return(nil).Once()
	assert.NoError(t, service.DeleteEmployee(ctx, kim.ID))

	mockRepo.On("GetByID", ctx, "missing").Return(nil, apperror.NotFound("employee missing not found")).Once()
	err := service.DeleteEmployee(ctx, "missing")
	assert.True(t, apperror.IsNotFound(err))
	mockRepo.AssertNotCalled(t, "Delete", ctx, "missing")
	mockRepo.AssertExpectations(t)
}
