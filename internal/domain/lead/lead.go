package lead

import (
	"regexp"
	"strings"
	"time"

	"github.com/RobertWLight/BSC/internal/domain/shared"
)

// EmployeeBucket is one of the fixed company-size ranges offered on the lead form
type EmployeeBucket string

const (
	Bucket2To5     EmployeeBucket = "2-5"
	Bucket6To10    EmployeeBucket = "6-10"
	Bucket11To25   EmployeeBucket = "11-25"
	Bucket26To50   EmployeeBucket = "26-50"
	Bucket51To100  EmployeeBucket = "51-100"
	Bucket100AndUp EmployeeBucket = "100+"
)

// AllBuckets lists the buckets in display order
var AllBuckets = []EmployeeBucket{
	Bucket2To5, Bucket6To10, Bucket11To25, Bucket26To50, Bucket51To100, Bucket100AndUp,
}

// bucketBounds maps each bucket to its [min, max] employee count.
// 100+ is capped at 200 for estimates.
var bucketBounds = map[EmployeeBucket][2]int64{
	Bucket2To5:     {2, 5},
	Bucket6To10:    {6, 10},
	Bucket11To25:   {11, 25},
	Bucket26To50:   {26, 50},
	Bucket51To100:  {51, 100},
	Bucket100AndUp: {100, 200},
}

// IsValid reports whether the bucket is one of the six known ranges
func (b EmployeeBucket) IsValid() bool {
	_, ok := bucketBounds[b]
	return ok
}

// Bounds returns the min and max employee counts for the bucket
func (b EmployeeBucket) Bounds() (min, max int64, ok bool) {
	bounds, ok := bucketBounds[b]
	if !ok {
		return 0, 0, false
	}
	return bounds[0], bounds[1], true
}

// Label returns the human-readable bucket label, e.g. "6-10 employees"
func (b EmployeeBucket) Label() string {
	if !b.IsValid() {
		return UnknownBucketLabel
	}
	return string(b) + " employees"
}

// Labels used when a lead field is blank or unrecognised
const (
	NotSpecifiedIndustry = "Not specified"
	UnknownBucketLabel   = "Unknown"
	UnknownBucketKey     = "unknown"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Lead is a marketing funnel contact. It is not tied to a business owner.
type Lead struct {
	shared.BaseEntity
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	BusinessName      string
	NumberOfEmployees EmployeeBucket
	Industry          string
}

// Input carries the lead form fields
type Input struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	BusinessName      string
	NumberOfEmployees EmployeeBucket
	Industry          string
}

// NewLead validates the form and creates a lead
func NewLead(in Input) (*Lead, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, shared.NewDomainError("INVALID_LEAD", "First and last name are required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Please enter a valid email address")
	}
	if strings.TrimSpace(in.BusinessName) == "" {
		return nil, shared.NewDomainError("INVALID_LEAD", "Business name is required")
	}
	if !in.NumberOfEmployees.IsValid() {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE_BUCKET", "Number of employees must be one of 2-5, 6-10, 11-25, 26-50, 51-100, 100+")
	}

	return &Lead{
		BaseEntity:        shared.NewBaseEntity(),
		FirstName:         strings.TrimSpace(in.FirstName),
		LastName:          strings.TrimSpace(in.LastName),
		Email:             strings.TrimSpace(in.Email),
		Phone:             strings.TrimSpace(in.Phone),
		BusinessName:      strings.TrimSpace(in.BusinessName),
		NumberOfEmployees: in.NumberOfEmployees,
		Industry:          strings.TrimSpace(in.Industry),
	}, nil
}

// FullName returns the contact's display name
func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}

// IndustryLabel returns the industry, or "Not specified" when blank
func (l *Lead) IndustryLabel() string {
	if l.Industry == "" {
		return NotSpecifiedIndustry
	}
	return l.Industry
}

// CreatedIn returns the creation instant in the given zone
func (l *Lead) CreatedIn(zone *time.Location) time.Time {
	return l.CreatedAt.In(zone)
}
