package wizard

import (
	"strconv"
	"strings"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User-facing validation messages
const (
	MsgInvalidEmail          = "Please enter a valid email address"
	MsgInvalidYears          = "Years in business must be a valid number"
	MsgInvalidSalary         = "Annual salary must be a valid positive number"
	MsgNoEmployees           = "Please add at least one employee to continue"
	MsgNoPlanSelected        = "Please select at least one benefit plan to continue"
	MsgTermsNotAccepted      = "Please accept the terms and conditions to submit your application"
	MsgNotEligible           = "Your business does not meet the eligibility requirements"
	MsgUnknownPlan           = "Please choose a plan from the catalog"
	missingFieldPrefix       = "Please fill in all required fields. Missing: "
	MsgSaveBusinessFailed    = "Error saving business information. Please try again."
	MsgAddEmployeeFailed     = "Error adding employee. Please try again."
	MsgDeleteEmployeeFailed  = "Error deleting employee. Please try again."
	MsgCalculateFicaFailed   = "Error calculating FICA savings. Please try again."
	MsgSubmitApplicationFail = "Error submitting application. Please try again."
)

// MissingFieldMessage names the first missing field.
// Only the first underscore is turned into a space ("zip code", "years in_business").
func MissingFieldMessage(field string) string {
	return missingFieldPrefix + strings.Replace(field, "_", " ", 1)
}

// BusinessInfoForm is the raw step 1 form
type BusinessInfoForm struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	BusinessName    string
	BusinessType    string
	Industry        string
	TaxID           string
	YearsInBusiness string
	Address         string
	City            string
	State           string
	ZipCode         string
}

func (f BusinessInfoForm) fields() []namedField {
	return []namedField{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"business_name", f.BusinessName},
		{"business_type", f.BusinessType},
		{"industry", f.Industry},
		{"tax_id", f.TaxID},
		{"years_in_business", f.YearsInBusiness},
		{"address", f.Address},
		{"city", f.City},
		{"state", f.State},
		{"zip_code", f.ZipCode},
	}
}

// Validate checks the form locally and builds the create request
func (f BusinessInfoForm) Validate() (appenrollment.CreateBusinessOwnerRequest, error) {
	if err := firstMissing(f.fields()); err != nil {
		return appenrollment.CreateBusinessOwnerRequest{}, err
	}
	if !enrollment.IsValidEmail(f.Email) {
		return appenrollment.CreateBusinessOwnerRequest{}, validationError(MsgInvalidEmail)
	}

	years, err := strconv.ParseFloat(strings.TrimSpace(f.YearsInBusiness), 64)
	if err != nil || years < 0 {
		return appenrollment.CreateBusinessOwnerRequest{}, validationError(MsgInvalidYears)
	}

	return appenrollment.CreateBusinessOwnerRequest{
		FirstName:       f.FirstName,
		LastName:        f.LastName,
		Email:           f.Email,
		Phone:           f.Phone,
		BusinessName:    f.BusinessName,
		BusinessType:    f.BusinessType,
		Industry:        f.Industry,
		TaxID:           f.TaxID,
		YearsInBusiness: int(years),
		Address:         f.Address,
		City:            f.City,
		State:           f.State,
		ZipCode:         f.ZipCode,
	}, nil
}

// EmployeeForm is the raw step 2 form
type EmployeeForm struct {
	FirstName                 string
	LastName                  string
	Email                     string
	Phone                     string
	JobTitle                  string
	AnnualSalary              string
	HireDate                  string
	BirthDate                 string
	HasCurrentHealthInsurance bool
	HasCurrentLifeInsurance   bool
	CurrentHealthPremium      string
	CurrentLifePremium        string
}

func (f EmployeeForm) fields() []namedField {
	return []namedField{
		{"first_name", f.FirstName},
		{"last_name", f.LastName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"job_title", f.JobTitle},
		{"annual_salary", f.AnnualSalary},
		{"hire_date", f.HireDate},
		{"birth_date", f.BirthDate},
	}
}

// Validate checks the form locally and builds the create request for ownerID.
// Premiums that do not parse are sent as absent.
func (f EmployeeForm) Validate(ownerID uuid.UUID) (appenrollment.CreateEmployeeRequest, error) {
	if err := firstMissing(f.fields()); err != nil {
		return appenrollment.CreateEmployeeRequest{}, err
	}
	if !enrollment.IsValidEmail(f.Email) {
		return appenrollment.CreateEmployeeRequest{}, validationError(MsgInvalidEmail)
	}

	salary, err := decimal.NewFromString(strings.TrimSpace(f.AnnualSalary))
	if err != nil || !salary.IsPositive() {
		return appenrollment.CreateEmployeeRequest{}, validationError(MsgInvalidSalary)
	}

	return appenrollment.CreateEmployeeRequest{
		BusinessOwnerID:           ownerID,
		FirstName:                 f.FirstName,
		LastName:                  f.LastName,
		Email:                     f.Email,
		Phone:                     f.Phone,
		JobTitle:                  f.JobTitle,
		AnnualSalary:              &salary,
		HireDate:                  f.HireDate,
		BirthDate:                 f.BirthDate,
		HasCurrentHealthInsurance: f.HasCurrentHealthInsurance,
		HasCurrentLifeInsurance:   f.HasCurrentLifeInsurance,
		CurrentHealthPremium:      optionalAmount(f.CurrentHealthPremium),
		CurrentLifePremium:        optionalAmount(f.CurrentLifePremium),
	}, nil
}

type namedField struct {
	name  string
	value string
}

func firstMissing(fields []namedField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return validationError(MissingFieldMessage(f.name))
		}
	}
	return nil
}

func optionalAmount(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
