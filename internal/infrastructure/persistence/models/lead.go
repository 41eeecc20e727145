package models

import (
	"github.com/RobertWLight/BSC/internal/domain/lead"
)

// LeadModel is the persistence model for Lead
type LeadModel struct {
	BaseModel
	FirstName         string              `gorm:"type:varchar(100);not null"`
	LastName          string              `gorm:"type:varchar(100);not null"`
	Email             string              `gorm:"type:varchar(200);not null"`
	Phone             string              `gorm:"type:varchar(50)"`
	BusinessName      string              `gorm:"type:varchar(200);not null"`
	NumberOfEmployees lead.EmployeeBucket `gorm:"type:varchar(10);not null"`
	Industry          string              `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (LeadModel) TableName() string {
	return "leads"
}

// ToDomain converts the model to a domain Lead
func (m *LeadModel) ToDomain() *lead.Lead {
	return &lead.Lead{
		BaseEntity:        m.BaseModel.ToDomain(),
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Email:             m.Email,
		Phone:             m.Phone,
		BusinessName:      m.BusinessName,
		NumberOfEmployees: m.NumberOfEmployees,
		Industry:          m.Industry,
	}
}

// LeadModelFromDomain converts a domain Lead to its model
func LeadModelFromDomain(l *lead.Lead) *LeadModel {
	return &LeadModel{
		BaseModel:         baseModelOf(l.BaseEntity),
		FirstName:         l.FirstName,
		LastName:          l.LastName,
		Email:             l.Email,
		Phone:             l.Phone,
		BusinessName:      l.BusinessName,
		NumberOfEmployees: l.NumberOfEmployees,
		Industry:          l.Industry,
	}
}

// AllModels lists every model in migration order
func AllModels() []any {
	return []any{
		&BusinessOwnerModel{},
		&EmployeeModel{},
		&BenefitPlanModel{},
		&FicaCalculationModel{},
		&ApplicationModel{},
		&LeadModel{},
	}
}
