package enrollment

import (
	"strings"

	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PlanType identifies a benefit plan tier
type PlanType string

const (
	PlanTypeHealthBasic   PlanType = "health_basic"
	PlanTypeHealthPremium PlanType = "health_premium"
	PlanTypeLifeBasic     PlanType = "life_basic"
	PlanTypeLifePremium   PlanType = "life_premium"
)

// IsValid reports whether the plan type is a known value
func (t PlanType) IsValid() bool {
	return t.IsHealth() || t.IsLife()
}

// IsHealth reports whether this is a health plan
func (t PlanType) IsHealth() bool {
	return t == PlanTypeHealthBasic || t == PlanTypeHealthPremium
}

// IsLife reports whether this is a life insurance plan
func (t PlanType) IsLife() bool {
	return t == PlanTypeLifeBasic || t == PlanTypeLifePremium
}

// BenefitPlan is a catalog entry. Clients treat it as read-only.
type BenefitPlan struct {
	shared.BaseEntity
	Name                      string
	PlanType                  PlanType
	Description               string
	MonthlyPremiumPerEmployee decimal.Decimal
	CoverageAmount            *decimal.Decimal
	Deductible                *decimal.Decimal
	Features                  []string
	IsActive                  bool
}

// BenefitPlanInput carries the fields needed to create a plan
type BenefitPlanInput struct {
	Name                      string
	PlanType                  PlanType
	Description               string
	MonthlyPremiumPerEmployee decimal.Decimal
	CoverageAmount            *decimal.Decimal
	Deductible                *decimal.Decimal
	Features                  []string
}

// NewBenefitPlan validates the input and creates an active plan
func NewBenefitPlan(in BenefitPlanInput) (*BenefitPlan, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan name is required")
	}
	if !in.PlanType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLAN_TYPE", "Unknown plan type: "+string(in.PlanType))
	}
	if in.MonthlyPremiumPerEmployee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PREMIUM", "Monthly premium cannot be negative")
	}

	features := in.Features
	if features == nil {
		features = []string{}
	}

	return &BenefitPlan{
		BaseEntity:                shared.NewBaseEntity(),
		Name:                      strings.TrimSpace(in.Name),
		PlanType:                  in.PlanType,
		Description:               in.Description,
		MonthlyPremiumPerEmployee: in.MonthlyPremiumPerEmployee,
		CoverageAmount:            in.CoverageAmount,
		Deductible:                in.Deductible,
		Features:                  features,
		IsActive:                  true,
	}, nil
}

// AnnualCost returns premium x employees x 12
func (p *BenefitPlan) AnnualCost(employeeCount int) decimal.Decimal {
	return p.MonthlyPremiumPerEmployee.
		Mul(decimal.NewFromInt(int64(employeeCount))).
		Mul(decimal.NewFromInt(12))
}

// SplitPlans partitions plans into health and life subsets, preserving order
func SplitPlans(plans []BenefitPlan) (health, life []BenefitPlan) {
	health = make([]BenefitPlan, 0)
	life = make([]BenefitPlan, 0)
	for _, p := range plans {
		switch {
		case p.PlanType.IsHealth():
			health = append(health, p)
		case p.PlanType.IsLife():
			life = append(life, p)
		}
	}
	return health, life
}

func amountPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultPlanCatalog returns the plans seeded into an empty catalog
func DefaultPlanCatalog() []BenefitPlanInput {
	return []BenefitPlanInput{
		{
			Name:                      "Basic Health Plan",
			PlanType:                  PlanTypeHealthBasic,
			Description:               "Essential health coverage with major medical benefits",
			MonthlyPremiumPerEmployee: decimal.NewFromInt(250),
			CoverageAmount:            amountPtr(50000),
			Deductible:                amountPtr(2500),
			Features:                  []string{"Doctor visits", "Emergency care", "Prescription coverage", "Preventive care"},
		},
		{
			Name:                      "Premium Health Plan",
			PlanType:                  PlanTypeHealthPremium,
			Description:               "Comprehensive health coverage with low deductibles",
			MonthlyPremiumPerEmployee: decimal.NewFromInt(450),
			CoverageAmount:            amountPtr(100000),
			Deductible:                amountPtr(500),
			Features:                  []string{"All Basic features", "Specialist care", "Mental health", "Dental", "Vision"},
		},
		{
			Name:                      "Basic Life Insurance",
			PlanType:                  PlanTypeLifeBasic,
			Description:               "Term life insurance coverage",
			MonthlyPremiumPerEmployee: decimal.NewFromInt(25),
			CoverageAmount:            amountPtr(50000),
			Features:                  []string{"Term life coverage", "Accidental death benefit"},
		},
		{
			Name:                      "Premium Life Insurance",
			PlanType:                  PlanTypeLifePremium,
			Description:               "Permanent life insurance with cash value",
			MonthlyPremiumPerEmployee: decimal.NewFromInt(75),
			CoverageAmount:            amountPtr(100000),
			Features:                  []string{"Permanent life coverage", "Cash value accumulation", "Loan option", "Disability waiver"},
		},
	}
}
