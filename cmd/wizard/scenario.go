package main

import (
	"fmt"

	"github.com/RobertWLight/BSC/internal/application/wizard"
	"github.com/spf13/viper"
)

// scenario is a scripted pass through the wizard
type scenario struct {
	Business    businessSection   `mapstructure:"business"`
	Employees   []employeeSection `mapstructure:"employees"`
	HealthPlan  string            `mapstructure:"health_plan"`
	LifePlan    string            `mapstructure:"life_plan"`
	AcceptTerms bool              `mapstructure:"accept_terms"`
}

type businessSection struct {
	FirstName       string `mapstructure:"first_name"`
	LastName        string `mapstructure:"last_name"`
	Email           string `mapstructure:"email"`
	Phone           string `mapstructure:"phone"`
	BusinessName    string `mapstructure:"business_name"`
	BusinessType    string `mapstructure:"business_type"`
	Industry        string `mapstructure:"industry"`
	TaxID           string `mapstructure:"tax_id"`
	YearsInBusiness string `mapstructure:"years_in_business"`
	Address         string `mapstructure:"address"`
	City            string `mapstructure:"city"`
	State           string `mapstructure:"state"`
	ZipCode         string `mapstructure:"zip_code"`
}

type employeeSection struct {
	FirstName            string `mapstructure:"first_name"`
	LastName             string `mapstructure:"last_name"`
	Email                string `mapstructure:"email"`
	Phone                string `mapstructure:"phone"`
	JobTitle             string `mapstructure:"job_title"`
	AnnualSalary         string `mapstructure:"annual_salary"`
	HireDate             string `mapstructure:"hire_date"`
	BirthDate            string `mapstructure:"birth_date"`
	HasHealthInsurance   bool   `mapstructure:"has_current_health_insurance"`
	HasLifeInsurance     bool   `mapstructure:"has_current_life_insurance"`
	CurrentHealthPremium string `mapstructure:"current_health_premium"`
	CurrentLifePremium   string `mapstructure:"current_life_premium"`
}

func loadScenario(path string) (*scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &s, nil
}

func (b businessSection) form() wizard.BusinessInfoForm {
	return wizard.BusinessInfoForm{
		FirstName:       b.FirstName,
		LastName:        b.LastName,
		Email:           b.Email,
		Phone:           b.Phone,
		BusinessName:    b.BusinessName,
		BusinessType:    b.BusinessType,
		Industry:        b.Industry,
		TaxID:           b.TaxID,
		YearsInBusiness: b.YearsInBusiness,
		Address:         b.Address,
		City:            b.City,
		State:           b.State,
		ZipCode:         b.ZipCode,
	}
}

func (e employeeSection) form() wizard.EmployeeForm {
	return wizard.EmployeeForm{
		FirstName:                 e.FirstName,
		LastName:                  e.LastName,
		Email:                     e.Email,
		Phone:                     e.Phone,
		JobTitle:                  e.JobTitle,
		AnnualSalary:              e.AnnualSalary,
		HireDate:                  e.HireDate,
		BirthDate:                 e.BirthDate,
		HasCurrentHealthInsurance: e.HasHealthInsurance,
		HasCurrentLifeInsurance:   e.HasLifeInsurance,
		CurrentHealthPremium:      e.CurrentHealthPremium,
		CurrentLifePremium:        e.CurrentLifePremium,
	}
}
