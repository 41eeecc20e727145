package models

import (
	"time"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessOwnerModel is the persistence model for BusinessOwner
type BusinessOwnerModel struct {
	BaseModel
	FirstName       string                  `gorm:"type:varchar(100);not null"`
	LastName        string                  `gorm:"type:varchar(100);not null"`
	Email           string                  `gorm:"type:varchar(200);not null;index"`
	Phone           string                  `gorm:"type:varchar(50);not null"`
	BusinessName    string                  `gorm:"type:varchar(200);not null"`
	BusinessType    enrollment.BusinessType `gorm:"type:varchar(30);not null"`
	Industry        enrollment.Industry     `gorm:"type:varchar(30);not null"`
	TaxID           string                  `gorm:"column:tax_id;type:varchar(50);not null"`
	YearsInBusiness int                     `gorm:"not null;default:0"`
	Address         string                  `gorm:"type:varchar(300)"`
	City            string                  `gorm:"type:varchar(100)"`
	State           string                  `gorm:"type:varchar(100)"`
	ZipCode         string                  `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (BusinessOwnerModel) TableName() string {
	return "business_owners"
}

// ToDomain converts the model to a domain BusinessOwner
func (m *BusinessOwnerModel) ToDomain() *enrollment.BusinessOwner {
	return &enrollment.BusinessOwner{
		BaseEntity:      m.BaseModel.ToDomain(),
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Phone:           m.Phone,
		BusinessName:    m.BusinessName,
		BusinessType:    m.BusinessType,
		Industry:        m.Industry,
		TaxID:           m.TaxID,
		YearsInBusiness: m.YearsInBusiness,
		Address:         m.Address,
		City:            m.City,
		State:           m.State,
		ZipCode:         m.ZipCode,
	}
}

// BusinessOwnerModelFromDomain converts a domain BusinessOwner to its model
func BusinessOwnerModelFromDomain(o *enrollment.BusinessOwner) *BusinessOwnerModel {
	return &BusinessOwnerModel{
		BaseModel:       baseModelOf(o.BaseEntity),
		FirstName:       o.FirstName,
		LastName:        o.LastName,
		Email:           o.Email,
		Phone:           o.Phone,
		BusinessName:    o.BusinessName,
		BusinessType:    o.BusinessType,
		Industry:        o.Industry,
		TaxID:           o.TaxID,
		YearsInBusiness: o.YearsInBusiness,
		Address:         o.Address,
		City:            o.City,
		State:           o.State,
		ZipCode:         o.ZipCode,
	}
}

// EmployeeModel is the persistence model for Employee
type EmployeeModel struct {
	BaseModel
	BusinessOwnerID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	FirstName                 string           `gorm:"type:varchar(100);not null"`
	LastName                  string           `gorm:"type:varchar(100);not null"`
	Email                     string           `gorm:"type:varchar(200);not null"`
	Phone                     string           `gorm:"type:varchar(50)"`
	JobTitle                  string           `gorm:"type:varchar(100);not null"`
	AnnualSalary              decimal.Decimal  `gorm:"type:decimal(14,2);not null"`
	HireDate                  *time.Time       `gorm:"type:date"`
	BirthDate                 *time.Time       `gorm:"column:date_of_birth;type:date"`
	HasCurrentHealthInsurance bool             `gorm:"not null;default:false"`
	HasCurrentLifeInsurance   bool             `gorm:"not null;default:false"`
	CurrentHealthPremium      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CurrentLifePremium        *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the model to a domain Employee
func (m *EmployeeModel) ToDomain() *enrollment.Employee {
	return &enrollment.Employee{
		BaseEntity:                m.BaseModel.ToDomain(),
		BusinessOwnerID:           m.BusinessOwnerID,
		FirstName:                 m.FirstName,
		LastName:                  m.LastName,
		Email:                     m.Email,
		Phone:                     m.Phone,
		JobTitle:                  m.JobTitle,
		AnnualSalary:              m.AnnualSalary,
		HireDate:                  m.HireDate,
		BirthDate:                 m.BirthDate,
		HasCurrentHealthInsurance: m.HasCurrentHealthInsurance,
		HasCurrentLifeInsurance:   m.HasCurrentLifeInsurance,
		CurrentHealthPremium:      m.CurrentHealthPremium,
		CurrentLifePremium:        m.CurrentLifePremium,
	}
}

// EmployeeModelFromDomain converts a domain Employee to its model
func EmployeeModelFromDomain(e *enrollment.Employee) *EmployeeModel {
	return &EmployeeModel{
		BaseModel:                 baseModelOf(e.BaseEntity),
		BusinessOwnerID:           e.BusinessOwnerID,
		FirstName:                 e.FirstName,
		LastName:                  e.LastName,
		Email:                     e.Email,
		Phone:                     e.Phone,
		JobTitle:                  e.JobTitle,
		AnnualSalary:              e.AnnualSalary,
		HireDate:                  e.HireDate,
		BirthDate:                 e.BirthDate,
		HasCurrentHealthInsurance: e.HasCurrentHealthInsurance,
		HasCurrentLifeInsurance:   e.HasCurrentLifeInsurance,
		CurrentHealthPremium:      e.CurrentHealthPremium,
		CurrentLifePremium:        e.CurrentLifePremium,
	}
}

// BenefitPlanModel is the persistence model for BenefitPlan.
// Features are stored as a JSON array.
type BenefitPlanModel struct {
	BaseModel
	Name                      string              `gorm:"type:varchar(200);not null"`
	PlanType                  enrollment.PlanType `gorm:"type:varchar(30);not null;index"`
	Description               string              `gorm:"type:text"`
	MonthlyPremiumPerEmployee decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	CoverageAmount            *decimal.Decimal    `gorm:"type:decimal(14,2)"`
	Deductible                *decimal.Decimal    `gorm:"type:decimal(12,2)"`
	Features                  []string            `gorm:"type:jsonb;serializer:json"`
	IsActive                  bool                `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BenefitPlanModel) TableName() string {
	return "benefit_plans"
}

// ToDomain converts the model to a domain BenefitPlan
func (m *BenefitPlanModel) ToDomain() *enrollment.BenefitPlan {
	features := m.Features
	if features == nil {
		features = []string{}
	}
	return &enrollment.BenefitPlan{
		BaseEntity:                m.BaseModel.ToDomain(),
		Name:                      m.Name,
		PlanType:                  m.PlanType,
		Description:               m.Description,
		MonthlyPremiumPerEmployee: m.MonthlyPremiumPerEmployee,
		CoverageAmount:            m.CoverageAmount,
		Deductible:                m.Deductible,
		Features:                  features,
		IsActive:                  m.IsActive,
	}
}

// BenefitPlanModelFromDomain converts a domain BenefitPlan to its model
func BenefitPlanModelFromDomain(p *enrollment.BenefitPlan) *BenefitPlanModel {
	return &BenefitPlanModel{
		BaseModel:                 baseModelOf(p.BaseEntity),
		Name:                      p.Name,
		PlanType:                  p.PlanType,
		Description:               p.Description,
		MonthlyPremiumPerEmployee: p.MonthlyPremiumPerEmployee,
		CoverageAmount:            p.CoverageAmount,
		Deductible:                p.Deductible,
		Features:                  p.Features,
		IsActive:                  p.IsActive,
	}
}

// FicaCalculationModel is the persistence model for FicaCalculation.
// Rows are append-only.
type FicaCalculationModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key"`
	BusinessOwnerID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_fica_owner_date,priority:1"`
	TotalEmployeeSalaries decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	CurrentFicaTax        decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	ProjectedFicaSavings  decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	HealthBenefitCost     decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	LifeInsuranceCost     decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	TotalBenefitCost      decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	AnnualSavings         decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	NetSavings            decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	SelectedHealthPlanID  *uuid.UUID      `gorm:"type:uuid"`
	SelectedLifePlanID    *uuid.UUID      `gorm:"type:uuid"`
	EmployeeCount         int             `gorm:"not null;default:0"`
	CalculationDate       time.Time       `gorm:"not null;index:idx_fica_owner_date,priority:2"`
}

// TableName returns the table name for GORM
func (FicaCalculationModel) TableName() string {
	return "fica_calculations"
}

// ToDomain converts the model to a domain FicaCalculation
func (m *FicaCalculationModel) ToDomain() *enrollment.FicaCalculation {
	return &enrollment.FicaCalculation{
		ID:                    m.ID,
		BusinessOwnerID:       m.BusinessOwnerID,
		TotalEmployeeSalaries: m.TotalEmployeeSalaries,
		CurrentFicaTax:        m.CurrentFicaTax,
		ProjectedFicaSavings:  m.ProjectedFicaSavings,
		HealthBenefitCost:     m.HealthBenefitCost,
		LifeInsuranceCost:     m.LifeInsuranceCost,
		TotalBenefitCost:      m.TotalBenefitCost,
		AnnualSavings:         m.AnnualSavings,
		NetSavings:            m.NetSavings,
		SelectedHealthPlanID:  m.SelectedHealthPlanID,
		SelectedLifePlanID:    m.SelectedLifePlanID,
		EmployeeCount:         m.EmployeeCount,
		CalculationDate:       m.CalculationDate,
	}
}

// FicaCalculationModelFromDomain converts a domain FicaCalculation to its model
func FicaCalculationModelFromDomain(c *enrollment.FicaCalculation) *FicaCalculationModel {
	return &FicaCalculationModel{
		ID:                    c.ID,
		BusinessOwnerID:       c.BusinessOwnerID,
		TotalEmployeeSalaries: c.TotalEmployeeSalaries,
		CurrentFicaTax:        c.CurrentFicaTax,
		ProjectedFicaSavings:  c.ProjectedFicaSavings,
		HealthBenefitCost:     c.HealthBenefitCost,
		LifeInsuranceCost:     c.LifeInsuranceCost,
		TotalBenefitCost:      c.TotalBenefitCost,
		AnnualSavings:         c.AnnualSavings,
		NetSavings:            c.NetSavings,
		SelectedHealthPlanID:  c.SelectedHealthPlanID,
		SelectedLifePlanID:    c.SelectedLifePlanID,
		EmployeeCount:         c.EmployeeCount,
		CalculationDate:       c.CalculationDate,
	}
}

// ApplicationModel is the persistence model for Application
type ApplicationModel struct {
	BaseModel
	BusinessOwnerID      uuid.UUID                    `gorm:"type:uuid;not null;index"`
	SelectedHealthPlanID *uuid.UUID                   `gorm:"type:uuid"`
	SelectedLifePlanID   *uuid.UUID                   `gorm:"type:uuid"`
	Status               enrollment.ApplicationStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	TotalEmployees       int                          `gorm:"not null;default:0"`
	EstimatedSavings     decimal.Decimal              `gorm:"type:decimal(16,2);not null;default:0"`
	Notes                string                       `gorm:"type:text"`
	SubmittedAt          *time.Time
}

// TableName returns the table name for GORM
func (ApplicationModel) TableName() string {
	return "applications"
}

// ToDomain converts the model to a domain Application
func (m *ApplicationModel) ToDomain() *enrollment.Application {
	return &enrollment.Application{
		BaseEntity:           m.BaseModel.ToDomain(),
		BusinessOwnerID:      m.BusinessOwnerID,
		SelectedHealthPlanID: m.SelectedHealthPlanID,
		SelectedLifePlanID:   m.SelectedLifePlanID,
		Status:               m.Status,
		TotalEmployees:       m.TotalEmployees,
		EstimatedSavings:     m.EstimatedSavings,
		Notes:                m.Notes,
		SubmittedAt:          m.SubmittedAt,
	}
}

// ApplicationModelFromDomain converts a domain Application to its model
func ApplicationModelFromDomain(a *enrollment.Application) *ApplicationModel {
	return &ApplicationModel{
		BaseModel:            baseModelOf(a.BaseEntity),
		BusinessOwnerID:      a.BusinessOwnerID,
		SelectedHealthPlanID: a.SelectedHealthPlanID,
		SelectedLifePlanID:   a.SelectedLifePlanID,
		Status:               a.Status,
		TotalEmployees:       a.TotalEmployees,
		EstimatedSavings:     a.EstimatedSavings,
		Notes:                a.Notes,
		SubmittedAt:          a.SubmittedAt,
	}
}

