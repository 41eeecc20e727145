package enrollment

import (
	"strings"
	"time"

	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee belongs to exactly one business owner
type Employee struct {
	shared.BaseEntity
	BusinessOwnerID           uuid.UUID
	FirstName                 string
	LastName                  string
	Email                     string
	Phone                     string
	JobTitle                  string
	AnnualSalary              decimal.Decimal
	HireDate                  *time.Time
	BirthDate                 *time.Time
	HasCurrentHealthInsurance bool
	HasCurrentLifeInsurance   bool
	CurrentHealthPremium      *decimal.Decimal
	CurrentLifePremium        *decimal.Decimal
}

// EmployeeInput carries the fields needed to add an employee
type EmployeeInput struct {
	BusinessOwnerID           uuid.UUID
	FirstName                 string
	LastName                  string
	Email                     string
	Phone                     string
	JobTitle                  string
	AnnualSalary              decimal.Decimal
	HireDate                  *time.Time
	BirthDate                 *time.Time
	HasCurrentHealthInsurance bool
	HasCurrentLifeInsurance   bool
	CurrentHealthPremium      *decimal.Decimal
	CurrentLifePremium        *decimal.Decimal
}

// NewEmployee validates the input and creates a new employee
func NewEmployee(in EmployeeInput) (*Employee, error) {
	if in.BusinessOwnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "business_owner_id is required")
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee first and last name are required")
	}
	if strings.TrimSpace(in.JobTitle) == "" {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "job_title is required")
	}
	if !IsValidEmail(in.Email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Please enter a valid email address")
	}
	if !in.AnnualSalary.IsPositive() {
		return nil, shared.NewDomainError("INVALID_SALARY", "Annual salary must be a valid positive number")
	}
	if in.CurrentHealthPremium != nil && in.CurrentHealthPremium.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PREMIUM", "Current health premium cannot be negative")
	}
	if in.CurrentLifePremium != nil && in.CurrentLifePremium.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PREMIUM", "Current life premium cannot be negative")
	}

	return &Employee{
		BaseEntity:                shared.NewBaseEntity(),
		BusinessOwnerID:           in.BusinessOwnerID,
		FirstName:                 strings.TrimSpace(in.FirstName),
		LastName:                  strings.TrimSpace(in.LastName),
		Email:                     strings.TrimSpace(in.Email),
		Phone:                     strings.TrimSpace(in.Phone),
		JobTitle:                  strings.TrimSpace(in.JobTitle),
		AnnualSalary:              in.AnnualSalary,
		HireDate:                  in.HireDate,
		BirthDate:                 in.BirthDate,
		HasCurrentHealthInsurance: in.HasCurrentHealthInsurance,
		HasCurrentLifeInsurance:   in.HasCurrentLifeInsurance,
		CurrentHealthPremium:      in.CurrentHealthPremium,
		CurrentLifePremium:        in.CurrentLifePremium,
	}, nil
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
