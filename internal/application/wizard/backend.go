package wizard

import (
	"context"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/google/uuid"
)

// Backend is the enrollment API the wizard drives
type Backend interface {
	CreateBusinessOwner(ctx context.Context, req appenrollment.CreateBusinessOwnerRequest) (*appenrollment.BusinessOwnerResponse, error)
	GetBusinessOwner(ctx context.Context, id uuid.UUID) (*appenrollment.BusinessOwnerResponse, error)

	CreateEmployee(ctx context.Context, req appenrollment.CreateEmployeeRequest) (*appenrollment.EmployeeResponse, error)
	ListEmployees(ctx context.Context, ownerID uuid.UUID) ([]appenrollment.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error

	ListBenefitPlans(ctx context.Context) ([]appenrollment.BenefitPlanResponse, error)
	CalculateFica(ctx context.Context, ownerID uuid.UUID, healthPlanID, lifePlanID *uuid.UUID) (*appenrollment.FicaCalculationResponse, error)
	CheckEligibility(ctx context.Context, ownerID uuid.UUID) (*appenrollment.EligibilityResponse, error)

	CreateApplication(ctx context.Context, req appenrollment.CreateApplicationRequest) (*appenrollment.ApplicationResponse, error)
	UpdateApplication(ctx context.Context, id uuid.UUID, req appenrollment.UpdateApplicationRequest) (*appenrollment.ApplicationResponse, error)
}
