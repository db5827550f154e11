package handlers

import (
	"staffsync/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EmployeeHandler handles HTTP requests for employees.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		validate:        newValidator(),
		logger:          logger,
	}
}

// RegisterRoutes registers the employee routes.
func (h *EmployeeHandler) RegisterRoutes(router fiber.Router) {
	employeeRoutes := router.Group("/employees")
	employeeRoutes.Get("/", h.GetAllEmployees)
	employeeRoutes.Get("/search", h.SearchEmployees)
	employeeRoutes.Get("/employee-id/:employeeId", h.GetEmployeeByNumber)
	employeeRoutes.Get("/department/:department", h.GetEmployeesByDepartment)
	employeeRoutes.Get("/:id", h.GetEmployeeByID)
	employeeRoutes.Post("/", h.CreateEmployee)
	employeeRoutes.Put("/:id", h.UpdateEmployee)
	employeeRoutes.Delete("/:id", h.DeleteEmployee)
}

// GetAllEmployees lists every employee.
func (h *EmployeeHandler) GetAllEmployees(c *fiber.Ctx) error {
	employees, err := h.employeeService.GetAllEmployees(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(employees)
}

// SearchEmployees handles GET /employees/search?name=.
func (h *EmployeeHandler) SearchEmployees(c *fiber.Ctx) error {
	employees, err := h.employeeService.SearchEmployees(c.UserContext(), c.Query("name"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(employees)
}

// GetEmployeeByNumber looks an employee up by EMPnnn number.
func (h *EmployeeHandler) GetEmployeeByNumber(c *fiber.Ctx) error {
	employee, err := h.employeeService.GetEmployeeByNumber(c.UserContext(), c.Params("employeeId"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(employee)
}

// GetEmployeesByDepartment lists the employees of one department.
func (h *EmployeeHandler) GetEmployeesByDepartment(c *fiber.Ctx) error {
	employees, err := h.employeeService.GetEmployeesByDepartment(c.UserContext(), c.Params("department"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(employees)
}

// GetEmployeeByID returns one employee.
func (h *EmployeeHandler) GetEmployeeByID(c *fiber.Ctx) error {
	employee, err := h.employeeService.GetEmployeeByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(employee)
}

// CreateEmployee registers a new employee and answers 201.
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var req services.CreateEmployeeInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	employee, err := h.employeeService.CreateEmployee(c.UserContext(), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}

// UpdateEmployee applies a partial update.
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	var req services.UpdateEmployeeInput
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	employee, err := h.employeeService.UpdateEmployee(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(employee)
}

// DeleteEmployee removes an employee and answers 204.
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	if err := h.employeeService.DeleteEmployee(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
