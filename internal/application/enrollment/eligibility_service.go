package enrollment

import (
	"context"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/google/uuid"
)

// EligibilityService evaluates program eligibility for a business owner
type EligibilityService struct {
	ownerRepo    enrollment.BusinessOwnerRepository
	employeeRepo enrollment.EmployeeRepository
}

// NewEligibilityService creates a new EligibilityService
func NewEligibilityService(
	ownerRepo enrollment.BusinessOwnerRepository,
	employeeRepo enrollment.EmployeeRepository,
) *EligibilityService {
	return &EligibilityService{
		ownerRepo:    ownerRepo,
		employeeRepo: employeeRepo,
	}
}

// Check evaluates the owner against the current roster size
func (s *EligibilityService) Check(ctx context.Context, ownerID uuid.UUID) (*EligibilityResponse, error) {
	owner, err := findOwner(ctx, s.ownerRepo, ownerID)
	if err != nil {
		return nil, err
	}

	count, err := s.employeeRepo.CountByBusinessOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := enrollment.EvaluateEligibility(owner, int(count))
	return &EligibilityResponse{
		Eligible:        result.Eligible,
		EmployeeCount:   result.EmployeeCount,
		YearsInBusiness: result.YearsInBusiness,
		Industry:        string(result.Industry),
		Reasons:         result.Reasons,
	}, nil
}
