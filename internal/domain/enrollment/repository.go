package enrollment

import (
	"context"

	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/google/uuid"
)

// BusinessOwnerRepository persists business owners
type BusinessOwnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BusinessOwner, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]BusinessOwner, error)
	Save(ctx context.Context, owner *BusinessOwner) error
	Count(ctx context.Context) (int64, error)
}

// EmployeeRepository persists employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByBusinessOwner(ctx context.Context, ownerID uuid.UUID) ([]Employee, error)
	CountByBusinessOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Save(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BenefitPlanRepository persists the plan catalog
type BenefitPlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BenefitPlan, error)
	FindActive(ctx context.Context) ([]BenefitPlan, error)
	FindActiveByType(ctx context.Context, planType PlanType) ([]BenefitPlan, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, plan *BenefitPlan) error
}

// FicaCalculationRepository persists calculation history
type FicaCalculationRepository interface {
	Save(ctx context.Context, calc *FicaCalculation) error
	// FindByBusinessOwner returns newest first, at most limit rows
	FindByBusinessOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]FicaCalculation, error)
	FindLatest(ctx context.Context, ownerID uuid.UUID) (*FicaCalculation, error)
}

// ApplicationRepository persists applications
type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)
	// FindByBusinessOwner returns newest first, at most limit rows
	FindByBusinessOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]Application, error)
	CountByBusinessOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Save(ctx context.Context, app *Application) error
}
