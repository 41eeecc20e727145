package enrollment

import (
	"context"
	"errors"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/google/uuid"
)

// RecentApplicationsLimit is the number of applications shown on the dashboard
const RecentApplicationsLimit = 3

// DashboardService builds the per-owner summary
type DashboardService struct {
	ownerRepo    enrollment.BusinessOwnerRepository
	employeeRepo enrollment.EmployeeRepository
	calcRepo     enrollment.FicaCalculationRepository
	appRepo      enrollment.ApplicationRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	ownerRepo enrollment.BusinessOwnerRepository,
	employeeRepo enrollment.EmployeeRepository,
	calcRepo enrollment.FicaCalculationRepository,
	appRepo enrollment.ApplicationRepository,
) *DashboardService {
	return &DashboardService{
		ownerRepo:    ownerRepo,
		employeeRepo: employeeRepo,
		calcRepo:     calcRepo,
		appRepo:      appRepo,
	}
}

// Get returns the dashboard summary for an owner
func (s *DashboardService) Get(ctx context.Context, ownerID uuid.UUID) (*DashboardResponse, error) {
	owner, err := findOwner(ctx, s.ownerRepo, ownerID)
	if err != nil {
		return nil, err
	}

	employeeCount, err := s.employeeRepo.CountByBusinessOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	appCount, err := s.appRepo.CountByBusinessOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	recent, err := s.appRepo.FindByBusinessOwner(ctx, ownerID, RecentApplicationsLimit)
	if err != nil {
		return nil, err
	}

	resp := &DashboardResponse{
		BusinessName:       owner.BusinessName,
		EmployeeCount:      employeeCount,
		ApplicationsCount:  appCount,
		RecentApplications: ToApplicationResponses(recent),
	}

	latest, err := s.calcRepo.FindLatest(ctx, ownerID)
	switch {
	case err == nil:
		calc := ToFicaCalculationResponse(latest)
		resp.LatestCalculation = &calc
	case errors.Is(err, shared.ErrNotFound):
	default:
		return nil, err
	}

	return resp, nil
}
