package enrollment

import (
	"context"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockBusinessOwnerRepository is a mock implementation of BusinessOwnerRepository
type MockBusinessOwnerRepository struct {
	mock.Mock
}

func (m *MockBusinessOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*enrollment.BusinessOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.BusinessOwner), args.Error(1)
}

func (m *MockBusinessOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]enrollment.BusinessOwner, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]enrollment.BusinessOwner), args.Error(1)
}

func (m *MockBusinessOwnerRepository) Save(ctx context.Context, owner *enrollment.BusinessOwner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockBusinessOwnerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*enrollment.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByBusinessOwner(ctx context.Context, ownerID uuid.UUID) ([]enrollment.Employee, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]enrollment.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) CountByBusinessOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *enrollment.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBenefitPlanRepository is a mock implementation of BenefitPlanRepository
type MockBenefitPlanRepository struct {
	mock.Mock
}

func (m *MockBenefitPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*enrollment.BenefitPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.BenefitPlan), args.Error(1)
}

func (m *MockBenefitPlanRepository) FindActive(ctx context.Context) ([]enrollment.BenefitPlan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]enrollment.BenefitPlan), args.Error(1)
}

func (m *MockBenefitPlanRepository) FindActiveByType(ctx context.Context, planType enrollment.PlanType) ([]enrollment.BenefitPlan, error) {
	args := m.Called(ctx, planType)
	return args.Get(0).([]enrollment.BenefitPlan), args.Error(1)
}

func (m *MockBenefitPlanRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBenefitPlanRepository) Save(ctx context.Context, plan *enrollment.BenefitPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// MockFicaCalculationRepository is a mock implementation of FicaCalculationRepository
type MockFicaCalculationRepository struct {
	mock.Mock
}

func (m *MockFicaCalculationRepository) Save(ctx context.Context, calc *enrollment.FicaCalculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}

func (m *MockFicaCalculationRepository) FindByBusinessOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]enrollment.FicaCalculation, error) {
	args := m.Called(ctx, ownerID, limit)
	return args.Get(0).([]enrollment.FicaCalculation), args.Error(1)
}

func (m *MockFicaCalculationRepository) FindLatest(ctx context.Context, ownerID uuid.UUID) (*enrollment.FicaCalculation, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.FicaCalculation), args.Error(1)
}

// MockApplicationRepository is a mock implementation of ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*enrollment.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enrollment.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByBusinessOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]enrollment.Application, error) {
	args := m.Called(ctx, ownerID, limit)
	return args.Get(0).([]enrollment.Application), args.Error(1)
}

func (m *MockApplicationRepository) CountByBusinessOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) Save(ctx context.Context, app *enrollment.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

// MockPlanCatalogCache is a mock implementation of PlanCatalogCache
type MockPlanCatalogCache struct {
	mock.Mock
}

func (m *MockPlanCatalogCache) Get(ctx context.Context) ([]enrollment.BenefitPlan, bool, error) {
	args := m.Called(ctx)
	plans, _ := args.Get(0).([]enrollment.BenefitPlan)
	return plans, args.Bool(1), args.Error(2)
}

func (m *MockPlanCatalogCache) Set(ctx context.Context, plans []enrollment.BenefitPlan) error {
	args := m.Called(ctx, plans)
	return args.Error(0)
}

func (m *MockPlanCatalogCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRecorder is a mock implementation of Recorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) CalculationCompleted(netSavings decimal.Decimal) {
	m.Called(netSavings)
}

func (m *MockRecorder) ApplicationSubmitted() {
	m.Called()
}

// MockSummaryRenderer is a mock implementation of SummaryRenderer
type MockSummaryRenderer struct {
	mock.Mock
}

func (m *MockSummaryRenderer) RenderApplicationSummary(summary *ApplicationSummary) ([]byte, error) {
	args := m.Called(summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockDocumentArchive is a mock implementation of DocumentArchive
type MockDocumentArchive struct {
	mock.Mock
}

func (m *MockDocumentArchive) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func newTestOwner(years int, industry enrollment.Industry) *enrollment.BusinessOwner {
	owner, err := enrollment.NewBusinessOwner(enrollment.BusinessOwnerInput{
		FirstName:       "Maria",
		LastName:        "Lopez",
		Email:           "maria@lopezbuilds.com",
		Phone:           "555-0100",
		BusinessName:    "Lopez Builds",
		BusinessType:    enrollment.BusinessTypeLLC,
		Industry:        industry,
		TaxID:           "12-3456789",
		YearsInBusiness: years,
	})
	if err != nil {
		panic(err)
	}
	return owner
}

func newTestRoster(ownerID uuid.UUID, n int, salary int64) []enrollment.Employee {
	roster := make([]enrollment.Employee, 0, n)
	for i := 0; i < n; i++ {
		e, err := enrollment.NewEmployee(enrollment.EmployeeInput{
			BusinessOwnerID: ownerID,
			FirstName:       "Worker",
			LastName:        string(rune('A' + i%26)),
			Email:           "worker@lopezbuilds.com",
			JobTitle:        "Carpenter",
			AnnualSalary:    decimal.NewFromInt(salary),
		})
		if err != nil {
			panic(err)
		}
		roster = append(roster, *e)
	}
	return roster
}

func newTestPlan(planType enrollment.PlanType, monthly int64) *enrollment.BenefitPlan {
	plan, err := enrollment.NewBenefitPlan(enrollment.BenefitPlanInput{
		Name:                      string(planType),
		PlanType:                  planType,
		MonthlyPremiumPerEmployee: decimal.NewFromInt(monthly),
	})
	if err != nil {
		panic(err)
	}
	return plan
}
