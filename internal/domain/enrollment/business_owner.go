package enrollment

import (
	"regexp"
	"strings"

	"github.com/RobertWLight/BSC/internal/domain/shared"
)

// BusinessType represents the legal form of a business
type BusinessType string

const (
	BusinessTypeCorporation        BusinessType = "corporation"
	BusinessTypeLLC                BusinessType = "llc"
	BusinessTypePartnership        BusinessType = "partnership"
	BusinessTypeSoleProprietorship BusinessType = "sole_proprietorship"
	BusinessTypeSCorp              BusinessType = "s_corp"
)

// IsValid reports whether the business type is a known value
func (t BusinessType) IsValid() bool {
	switch t {
	case BusinessTypeCorporation, BusinessTypeLLC, BusinessTypePartnership,
		BusinessTypeSoleProprietorship, BusinessTypeSCorp:
		return true
	}
	return false
}

// Industry represents the industry a business operates in
type Industry string

const (
	IndustryTechnology           Industry = "technology"
	IndustryHealthcare           Industry = "healthcare"
	IndustryManufacturing        Industry = "manufacturing"
	IndustryRetail               Industry = "retail"
	IndustryConstruction         Industry = "construction"
	IndustryProfessionalServices Industry = "professional_services"
	IndustryHospitality          Industry = "hospitality"
	IndustryOther                Industry = "other"
)

// IsValid reports whether the industry is a known value
func (i Industry) IsValid() bool {
	switch i {
	case IndustryTechnology, IndustryHealthcare, IndustryManufacturing, IndustryRetail,
		IndustryConstruction, IndustryProfessionalServices, IndustryHospitality, IndustryOther:
		return true
	}
	return false
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail applies the email format check used across the funnel
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// BusinessOwner is the account holder driving an application.
// It is immutable once created.
type BusinessOwner struct {
	shared.BaseEntity
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	BusinessName    string
	BusinessType    BusinessType
	Industry        Industry
	TaxID           string
	YearsInBusiness int
	Address         string
	City            string
	State           string
	ZipCode         string
}

// BusinessOwnerInput carries the fields needed to register a business owner
type BusinessOwnerInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	BusinessName    string
	BusinessType    BusinessType
	Industry        Industry
	TaxID           string
	YearsInBusiness int
	Address         string
	City            string
	State           string
	ZipCode         string
}

// NewBusinessOwner validates the input and creates a new business owner
func NewBusinessOwner(in BusinessOwnerInput) (*BusinessOwner, error) {
	required := []struct {
		field string
		value string
	}{
		{"first_name", in.FirstName},
		{"last_name", in.LastName},
		{"email", in.Email},
		{"phone", in.Phone},
		{"business_name", in.BusinessName},
		{"tax_id", in.TaxID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return nil, shared.NewDomainError("INVALID_BUSINESS_OWNER", r.field+" is required")
		}
	}
	if !IsValidEmail(in.Email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Please enter a valid email address")
	}
	if !in.BusinessType.IsValid() {
		return nil, shared.NewDomainError("INVALID_BUSINESS_TYPE", "Unknown business type: "+string(in.BusinessType))
	}
	if !in.Industry.IsValid() {
		return nil, shared.NewDomainError("INVALID_INDUSTRY", "Unknown industry: "+string(in.Industry))
	}
	if in.YearsInBusiness < 0 {
		return nil, shared.NewDomainError("INVALID_YEARS_IN_BUSINESS", "Years in business must be a valid number")
	}

	return &BusinessOwner{
		BaseEntity:      shared.NewBaseEntity(),
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Email:           strings.TrimSpace(in.Email),
		Phone:           strings.TrimSpace(in.Phone),
		BusinessName:    strings.TrimSpace(in.BusinessName),
		BusinessType:    in.BusinessType,
		Industry:        in.Industry,
		TaxID:           strings.TrimSpace(in.TaxID),
		YearsInBusiness: in.YearsInBusiness,
		Address:         in.Address,
		City:            in.City,
		State:           in.State,
		ZipCode:         in.ZipCode,
	}, nil
}

// FullName returns the owner's display name
func (o *BusinessOwner) FullName() string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}
