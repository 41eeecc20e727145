package enrollment

import (
	"context"
	"errors"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/google/uuid"
)

// EmployeeService manages a business owner's roster
type EmployeeService struct {
	ownerRepo    enrollment.BusinessOwnerRepository
	employeeRepo enrollment.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(
	ownerRepo enrollment.BusinessOwnerRepository,
	employeeRepo enrollment.EmployeeRepository,
) *EmployeeService {
	return &EmployeeService{
		ownerRepo:    ownerRepo,
		employeeRepo: employeeRepo,
	}
}

// Create adds an employee to an existing owner's roster
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if _, err := findOwner(ctx, s.ownerRepo, req.BusinessOwnerID); err != nil {
		return nil, err
	}

	hireDate, err := ParseDate("hire_date", req.HireDate)
	if err != nil {
		return nil, err
	}
	birthDate, err := ParseDate("birth_date", req.BirthDate)
	if err != nil {
		return nil, err
	}

	input := enrollment.EmployeeInput{
		BusinessOwnerID:           req.BusinessOwnerID,
		FirstName:                 req.FirstName,
		LastName:                  req.LastName,
		Email:                     req.Email,
		Phone:                     req.Phone,
		JobTitle:                  req.JobTitle,
		HireDate:                  hireDate,
		BirthDate:                 birthDate,
		HasCurrentHealthInsurance: req.HasCurrentHealthInsurance,
		HasCurrentLifeInsurance:   req.HasCurrentLifeInsurance,
		CurrentHealthPremium:      req.CurrentHealthPremium,
		CurrentLifePremium:        req.CurrentLifePremium,
	}
	if req.AnnualSalary != nil {
		input.AnnualSalary = *req.AnnualSalary
	}

	employee, err := enrollment.NewEmployee(input)
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// ListByOwner returns the owner's roster
func (s *EmployeeService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]EmployeeResponse, error) {
	employees, err := s.employeeRepo.FindByBusinessOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponses(employees), nil
}

// GetByID retrieves an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	employee, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToEmployeeResponse(employee)
	return &resp, nil
}

// Delete removes an employee. Deleting an unknown employee is NOT_FOUND.
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findEmployee(ctx, id); err != nil {
		return err
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("Employee")
		}
		return err
	}
	return nil
}

func (s *EmployeeService) findEmployee(ctx context.Context, id uuid.UUID) (*enrollment.Employee, error) {
	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Employee")
		}
		return nil, err
	}
	return employee, nil
}
