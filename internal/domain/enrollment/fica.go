package enrollment

import (
	"time"

	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default rates applied by the calculator
var (
	// DefaultFicaRate is the employer share of Social Security (6.2%) plus Medicare (1.45%)
	DefaultFicaRate = decimal.RequireFromString("0.0765")
	// DefaultSavingsRate is the share of benefit cost projected as FICA savings
	DefaultSavingsRate = decimal.RequireFromString("0.30")
)

// ErrNoEmployees is returned when a calculation is requested for an empty roster
var ErrNoEmployees = shared.NewDomainError("NO_EMPLOYEES", "No employees found for this business")

// FicaCalculation is a persisted savings estimate for a business owner
type FicaCalculation struct {
	ID                    uuid.UUID
	BusinessOwnerID       uuid.UUID
	TotalEmployeeSalaries decimal.Decimal
	CurrentFicaTax        decimal.Decimal
	ProjectedFicaSavings  decimal.Decimal
	HealthBenefitCost     decimal.Decimal
	LifeInsuranceCost     decimal.Decimal
	TotalBenefitCost      decimal.Decimal
	AnnualSavings         decimal.Decimal
	NetSavings            decimal.Decimal
	SelectedHealthPlanID  *uuid.UUID
	SelectedLifePlanID    *uuid.UUID
	EmployeeCount         int
	CalculationDate       time.Time
}

// FicaCalculator turns a roster and a plan selection into a FicaCalculation
type FicaCalculator struct {
	FicaRate    decimal.Decimal
	SavingsRate decimal.Decimal
}

// NewFicaCalculator creates a calculator. Zero rates fall back to the defaults.
func NewFicaCalculator(ficaRate, savingsRate decimal.Decimal) *FicaCalculator {
	if ficaRate.IsZero() {
		ficaRate = DefaultFicaRate
	}
	if savingsRate.IsZero() {
		savingsRate = DefaultSavingsRate
	}
	return &FicaCalculator{FicaRate: ficaRate, SavingsRate: savingsRate}
}

// Calculate computes the savings estimate.
// A nil plan contributes zero cost.
func (c *FicaCalculator) Calculate(ownerID uuid.UUID, employees []Employee, health, life *BenefitPlan) (*FicaCalculation, error) {
	if len(employees) == 0 {
		return nil, ErrNoEmployees
	}
	if health != nil && !health.PlanType.IsHealth() {
		return nil, shared.NewDomainError("INVALID_PLAN_TYPE", "Selected health plan is not a health plan")
	}
	if life != nil && !life.PlanType.IsLife() {
		return nil, shared.NewDomainError("INVALID_PLAN_TYPE", "Selected life plan is not a life insurance plan")
	}

	salaries := valueobject.ZeroUSD()
	for _, e := range employees {
		salaries = salaries.MustAdd(valueobject.NewMoneyUSD(e.AnnualSalary))
	}

	count := len(employees)
	healthCost := valueobject.ZeroUSD()
	var healthID *uuid.UUID
	if health != nil {
		healthCost = valueobject.NewMoneyUSD(health.AnnualCost(count))
		id := health.ID
		healthID = &id
	}
	lifeCost := valueobject.ZeroUSD()
	var lifeID *uuid.UUID
	if life != nil {
		lifeCost = valueobject.NewMoneyUSD(life.AnnualCost(count))
		id := life.ID
		lifeID = &id
	}

	healthCost = healthCost.Round(2)
	lifeCost = lifeCost.Round(2)
	totalBenefit := healthCost.MustAdd(lifeCost)
	projected := totalBenefit.Multiply(c.SavingsRate).Round(2)
	net := projected.MustSubtract(totalBenefit)

	return &FicaCalculation{
		ID:                    uuid.New(),
		BusinessOwnerID:       ownerID,
		TotalEmployeeSalaries: salaries.Round(2).Amount(),
		CurrentFicaTax:        salaries.Multiply(c.FicaRate).Round(2).Amount(),
		ProjectedFicaSavings:  projected.Amount(),
		HealthBenefitCost:     healthCost.Amount(),
		LifeInsuranceCost:     lifeCost.Amount(),
		TotalBenefitCost:      totalBenefit.Amount(),
		AnnualSavings:         projected.Amount(),
		NetSavings:            net.Amount(),
		SelectedHealthPlanID:  healthID,
		SelectedLifePlanID:    lifeID,
		EmployeeCount:         count,
		CalculationDate:       shared.Now(),
	}, nil
}
