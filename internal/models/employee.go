package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"staffsync/internal/apperror"

	"github.com/go-playground/validator/v10"
)

// HireDateLayout is the wire format of an employee hire date.
const HireDateLayout = "2006-01-02"

var emailValidator = validator.New()

// Employee is a staff record. Number is the human-readable identifier (EMP001, EMP002,
// ...) derived from Seq.
type Employee struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Number     string    `json:"employeeId" gorm:"uniqueIndex;type:varchar(20);not null"`
	Seq        int       `json:"-" gorm:"uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"type:varchar(50);not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(100);not null"`
	HireDate   time.Time `json:"-" gorm:"not null"`
	Salary     float64   `json:"salary" gorm:"not null"`
	Department string    `json:"department" gorm:"type:varchar(50);index"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FormatEmployeeNumber renders a sequence as EMPnnn; numbers past 999 simply grow wider.
func FormatEmployeeNumber(seq int) string {
	return fmt.Sprintf("EMP%03d", seq)
}

// NewEmployee validates the input and builds an employee numbered from seq.
func NewEmployee(seq int, name, email string, hireDate time.Time, salary float64, department string) (*Employee, error) {
	if seq <= 0 {
		return nil, apperror.Validation("employeeId", "employee sequence must be positive")
	}
	if err := validateEmployeeName(name); err != nil {
		return nil, err
	}
	if err := validateEmployeeEmail(email); err != nil {
		return nil, err
	}
	if hireDate.IsZero() {
		return nil, apperror.Validation("hireDate", "hireDate is required")
	}
	if err := validateSalary(salary); err != nil {
		return nil, err
	}

	return &Employee{
		Number:     FormatEmployeeNumber(seq),
		Seq:        seq,
		Name:       name,
		Email:      email,
		HireDate:   hireDate,
		Salary:     salary,
		Department: department,
	}, nil
}

// Update applies a partial update; nil or blank values leave the field unchanged.
func (e *Employee) Update(name, email *string, salary *float64, department *string) error {
	if email != nil && strings.TrimSpace(*email) != "" {
		if err := validateEmployeeEmail(*email); err != nil {
			return err
		}
	}
	if salary != nil {
		if err := validateSalary(*salary); err != nil {
			return err
		}
	}

	if name != nil && strings.TrimSpace(*name) != "" {
		e.Name = *name
	}
	if email != nil && strings.TrimSpace(*email) != "" {
		e.Email = *email
	}
	if salary != nil {
		e.Salary = *salary
	}
	if department != nil {
		e.Department = *department
	}
	return nil
}

// MarshalJSON renders the hire date as a plain date.
func (e Employee) MarshalJSON() ([]byte, error) {
	type plain Employee
	return json.Marshal(struct {
		plain
		HireDate string `json:"hireDate"`
	}{plain(e), e.FormattedHireDate()})
}

// FormattedHireDate returns the hire date in HireDateLayout.
func (e *Employee) FormattedHireDate() string {
	return e.HireDate.Format(HireDateLayout)
}

func validateEmployeeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperror.Validation("name", "name is required")
	}
	return nil
}

func validateEmployeeEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperror.Validation("email", "email is required")
	}
	if err := emailValidator.Var(email, "email"); err != nil {
		return apperror.Validation("email", "email %q is not a valid address", email)
	}
	return nil
}

func validateSalary(salary float64) error {
	if salary < 0 {
		return apperror.Validation("salary", "salary must be zero or greater")
	}
	return nil
}
