package enrollment

import (
	"strings"
	"time"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted for employee dates
const DateLayout = "2006-01-02"

// CreateBusinessOwnerRequest represents a request to register a business owner
type CreateBusinessOwnerRequest struct {
	FirstName       string `json:"first_name" binding:"required,max=100"`
	LastName        string `json:"last_name" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email,max=200"`
	Phone           string `json:"phone" binding:"required,max=50"`
	BusinessName    string `json:"business_name" binding:"required,max=200"`
	BusinessType    string `json:"business_type" binding:"required,oneof=corporation llc partnership sole_proprietorship s_corp"`
	Industry        string `json:"industry" binding:"required,oneof=technology healthcare manufacturing retail construction professional_services hospitality other"`
	TaxID           string `json:"tax_id" binding:"required,max=50"`
	YearsInBusiness int    `json:"years_in_business" binding:"min=0"`
	Address         string `json:"address" binding:"max=300"`
	City            string `json:"city" binding:"max=100"`
	State           string `json:"state" binding:"max=100"`
	ZipCode         string `json:"zip_code" binding:"max=20"`
}

// BusinessOwnerResponse represents a business owner in API responses
type BusinessOwnerResponse struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	BusinessName    string    `json:"business_name"`
	BusinessType    string    `json:"business_type"`
	Industry        string    `json:"industry"`
	TaxID           string    `json:"tax_id"`
	YearsInBusiness int       `json:"years_in_business"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	ZipCode         string    `json:"zip_code"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BusinessOwnerListFilter represents paging for the owner listing
type BusinessOwnerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreateEmployeeRequest represents a request to add an employee to a roster
type CreateEmployeeRequest struct {
	BusinessOwnerID           uuid.UUID        `json:"business_owner_id" binding:"required"`
	FirstName                 string           `json:"first_name" binding:"required,max=100"`
	LastName                  string           `json:"last_name" binding:"required,max=100"`
	Email                     string           `json:"email" binding:"required,email,max=200"`
	Phone                     string           `json:"phone" binding:"max=50"`
	JobTitle                  string           `json:"job_title" binding:"required,max=100"`
	AnnualSalary              *decimal.Decimal `json:"annual_salary" binding:"required"`
	HireDate                  string           `json:"hire_date"`
	BirthDate                 string           `json:"birth_date"`
	HasCurrentHealthInsurance bool             `json:"has_current_health_insurance"`
	HasCurrentLifeInsurance   bool             `json:"has_current_life_insurance"`
	CurrentHealthPremium      *decimal.Decimal `json:"current_health_premium"`
	CurrentLifePremium        *decimal.Decimal `json:"current_life_premium"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID                        uuid.UUID        `json:"id"`
	BusinessOwnerID           uuid.UUID        `json:"business_owner_id"`
	FirstName                 string           `json:"first_name"`
	LastName                  string           `json:"last_name"`
	Email                     string           `json:"email"`
	Phone                     string           `json:"phone"`
	JobTitle                  string           `json:"job_title"`
	AnnualSalary              decimal.Decimal  `json:"annual_salary"`
	HireDate                  *string          `json:"hire_date"`
	BirthDate                 *string          `json:"birth_date"`
	HasCurrentHealthInsurance bool             `json:"has_current_health_insurance"`
	HasCurrentLifeInsurance   bool             `json:"has_current_life_insurance"`
	CurrentHealthPremium      *decimal.Decimal `json:"current_health_premium"`
	CurrentLifePremium        *decimal.Decimal `json:"current_life_premium"`
	CreatedAt                 time.Time        `json:"created_at"`
}

// CreateBenefitPlanRequest represents a request to add a plan to the catalog
type CreateBenefitPlanRequest struct {
	Name                      string           `json:"name" binding:"required,max=200"`
	PlanType                  string           `json:"plan_type" binding:"required,oneof=health_basic health_premium life_basic life_premium"`
	Description               string           `json:"description" binding:"max=2000"`
	MonthlyPremiumPerEmployee *decimal.Decimal `json:"monthly_premium_per_employee" binding:"required"`
	CoverageAmount            *decimal.Decimal `json:"coverage_amount"`
	Deductible                *decimal.Decimal `json:"deductible"`
	Features                  []string         `json:"features"`
}

// BenefitPlanResponse represents a catalog plan in API responses
type BenefitPlanResponse struct {
	ID                        uuid.UUID        `json:"id"`
	Name                      string           `json:"name"`
	PlanType                  string           `json:"plan_type"`
	Description               string           `json:"description"`
	MonthlyPremiumPerEmployee decimal.Decimal  `json:"monthly_premium_per_employee"`
	CoverageAmount            *decimal.Decimal `json:"coverage_amount"`
	Deductible                *decimal.Decimal `json:"deductible"`
	Features                  []string         `json:"features"`
	IsActive                  bool             `json:"is_active"`
	CreatedAt                 time.Time        `json:"created_at"`
}

// CalculateFicaRequest selects the plans priced into a calculation
type CalculateFicaRequest struct {
	HealthPlanID *uuid.UUID
	LifePlanID   *uuid.UUID
}

// FicaCalculationResponse represents a savings estimate in API responses
type FicaCalculationResponse struct {
	ID                    uuid.UUID       `json:"id"`
	BusinessOwnerID       uuid.UUID       `json:"business_owner_id"`
	TotalEmployeeSalaries decimal.Decimal `json:"total_employee_salaries"`
	CurrentFicaTax        decimal.Decimal `json:"current_fica_tax"`
	ProjectedFicaSavings  decimal.Decimal `json:"projected_fica_savings"`
	AnnualSavings         decimal.Decimal `json:"annual_savings"`
	HealthBenefitCost     decimal.Decimal `json:"health_benefit_cost"`
	LifeInsuranceCost     decimal.Decimal `json:"life_insurance_cost"`
	TotalBenefitCost      decimal.Decimal `json:"total_benefit_cost"`
	NetSavings            decimal.Decimal `json:"net_savings"`
	SelectedHealthPlanID  *uuid.UUID      `json:"selected_health_plan_id"`
	SelectedLifePlanID    *uuid.UUID      `json:"selected_life_plan_id"`
	EmployeeCount         int             `json:"employee_count"`
	CalculationDate       time.Time       `json:"calculation_date"`
}

// CreateApplicationRequest represents a request to open an application
type CreateApplicationRequest struct {
	BusinessOwnerID        uuid.UUID        `json:"business_owner_id" binding:"required"`
	SelectedHealthPlanID   *uuid.UUID       `json:"selected_health_plan_id"`
	SelectedLifePlanID     *uuid.UUID       `json:"selected_life_plan_id"`
	Notes                  string           `json:"notes" binding:"max=2000"`
	EstimatedAnnualSavings *decimal.Decimal `json:"estimated_annual_savings"`
}

// UpdateApplicationRequest is a partial update. Omitted fields are left untouched.
type UpdateApplicationRequest struct {
	Status                 *string          `json:"status" binding:"omitempty,oneof=draft submitted under_review approved rejected"`
	SelectedHealthPlanID   *uuid.UUID       `json:"selected_health_plan_id"`
	SelectedLifePlanID     *uuid.UUID       `json:"selected_life_plan_id"`
	Notes                  *string          `json:"notes" binding:"omitempty,max=2000"`
	EstimatedAnnualSavings *decimal.Decimal `json:"estimated_annual_savings"`
}

// ApplicationResponse represents an application in API responses
type ApplicationResponse struct {
	ID                     uuid.UUID       `json:"id"`
	BusinessOwnerID        uuid.UUID       `json:"business_owner_id"`
	Status                 string          `json:"status"`
	SelectedHealthPlanID   *uuid.UUID      `json:"selected_health_plan_id"`
	SelectedLifePlanID     *uuid.UUID      `json:"selected_life_plan_id"`
	TotalEmployees         int             `json:"total_employees"`
	EstimatedAnnualSavings decimal.Decimal `json:"estimated_annual_savings"`
	Notes                  string          `json:"notes"`
	SubmittedAt            *time.Time      `json:"submitted_at"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// EligibilityResponse represents the outcome of an eligibility check
type EligibilityResponse struct {
	Eligible        bool     `json:"eligible"`
	EmployeeCount   int      `json:"employee_count"`
	YearsInBusiness int      `json:"years_in_business"`
	Industry        string   `json:"industry"`
	Reasons         []string `json:"reasons"`
}

// DashboardResponse summarises a business owner's enrollment
type DashboardResponse struct {
	BusinessName       string                   `json:"business_name"`
	EmployeeCount      int64                    `json:"employee_count"`
	ApplicationsCount  int64                    `json:"applications_count"`
	LatestCalculation  *FicaCalculationResponse `json:"latest_calculation"`
	RecentApplications []ApplicationResponse    `json:"recent_applications"`
}

// ToBusinessOwnerResponse converts a domain BusinessOwner to BusinessOwnerResponse
func ToBusinessOwnerResponse(o *enrollment.BusinessOwner) BusinessOwnerResponse {
	return BusinessOwnerResponse{
		ID:              o.ID,
		FirstName:       o.FirstName,
		LastName:        o.LastName,
		Email:           o.Email,
		Phone:           o.Phone,
		BusinessName:    o.BusinessName,
		BusinessType:    string(o.BusinessType),
		Industry:        string(o.Industry),
		TaxID:           o.TaxID,
		YearsInBusiness: o.YearsInBusiness,
		Address:         o.Address,
		City:            o.City,
		State:           o.State,
		ZipCode:         o.ZipCode,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e *enrollment.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                        e.ID,
		BusinessOwnerID:           e.BusinessOwnerID,
		FirstName:                 e.FirstName,
		LastName:                  e.LastName,
		Email:                     e.Email,
		Phone:                     e.Phone,
		JobTitle:                  e.JobTitle,
		AnnualSalary:              e.AnnualSalary,
		HireDate:                  formatDate(e.HireDate),
		BirthDate:                 formatDate(e.BirthDate),
		HasCurrentHealthInsurance: e.HasCurrentHealthInsurance,
		HasCurrentLifeInsurance:   e.HasCurrentLifeInsurance,
		CurrentHealthPremium:      e.CurrentHealthPremium,
		CurrentLifePremium:        e.CurrentLifePremium,
		CreatedAt:                 e.CreatedAt,
	}
}

// ToEmployeeResponses converts a roster
func ToEmployeeResponses(employees []enrollment.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, len(employees))
	for i := range employees {
		responses[i] = ToEmployeeResponse(&employees[i])
	}
	return responses
}

// ToBenefitPlanResponse converts a domain BenefitPlan to BenefitPlanResponse
func ToBenefitPlanResponse(p *enrollment.BenefitPlan) BenefitPlanResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return BenefitPlanResponse{
		ID:                        p.ID,
		Name:                      p.Name,
		PlanType:                  string(p.PlanType),
		Description:               p.Description,
		MonthlyPremiumPerEmployee: p.MonthlyPremiumPerEmployee,
		CoverageAmount:            p.CoverageAmount,
		Deductible:                p.Deductible,
		Features:                  features,
		IsActive:                  p.IsActive,
		CreatedAt:                 p.CreatedAt,
	}
}

// ToBenefitPlanResponses converts a list of plans
func ToBenefitPlanResponses(plans []enrollment.BenefitPlan) []BenefitPlanResponse {
	responses := make([]BenefitPlanResponse, len(plans))
	for i := range plans {
		responses[i] = ToBenefitPlanResponse(&plans[i])
	}
	return responses
}

// ToFicaCalculationResponse converts a domain FicaCalculation to FicaCalculationResponse
func ToFicaCalculationResponse(c *enrollment.FicaCalculation) FicaCalculationResponse {
	return FicaCalculationResponse{
		ID:                    c.ID,
		BusinessOwnerID:       c.BusinessOwnerID,
		TotalEmployeeSalaries: c.TotalEmployeeSalaries.Round(2),
		CurrentFicaTax:        c.CurrentFicaTax.Round(2),
		ProjectedFicaSavings:  c.ProjectedFicaSavings.Round(2),
		AnnualSavings:         c.AnnualSavings.Round(2),
		HealthBenefitCost:     c.HealthBenefitCost.Round(2),
		LifeInsuranceCost:     c.LifeInsuranceCost.Round(2),
		TotalBenefitCost:      c.TotalBenefitCost.Round(2),
		NetSavings:            c.NetSavings.Round(2),
		SelectedHealthPlanID:  c.SelectedHealthPlanID,
		SelectedLifePlanID:    c.SelectedLifePlanID,
		EmployeeCount:         c.EmployeeCount,
		CalculationDate:       c.CalculationDate,
	}
}

// ToApplicationResponse converts a domain Application to ApplicationResponse
func ToApplicationResponse(a *enrollment.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                     a.ID,
		BusinessOwnerID:        a.BusinessOwnerID,
		Status:                 string(a.Status),
		SelectedHealthPlanID:   a.SelectedHealthPlanID,
		SelectedLifePlanID:     a.SelectedLifePlanID,
		TotalEmployees:         a.TotalEmployees,
		EstimatedAnnualSavings: a.EstimatedSavings,
		Notes:                  a.Notes,
		SubmittedAt:            a.SubmittedAt,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
}

// ToApplicationResponses converts a list of applications
func ToApplicationResponses(apps []enrollment.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, len(apps))
	for i := range apps {
		responses[i] = ToApplicationResponse(&apps[i])
	}
	return responses
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp. Blank input yields nil.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d, nil
	}
	return nil, shared.NewDomainError("INVALID_DATE", field+" must be a date in YYYY-MM-DD format")
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
