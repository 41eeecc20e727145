package enrollment

// Eligibility reason strings shown verbatim to applicants
const (
	ReasonTooFewEmployees  = "Business must have at least 2 employees"
	ReasonTooYoung         = "Business must be operating for at least 1 year"
	ReasonIndustryReview   = "Industry type may require special review"
	ReasonAllCriteriaMet   = "All eligibility criteria met"
	MinEligibleEmployees   = 2
	MinEligibleYearsActive = 1
)

// EligibilityResult is the outcome of evaluating a business owner
type EligibilityResult struct {
	Eligible        bool
	Reasons         []string
	EmployeeCount   int
	YearsInBusiness int
	Industry        Industry
}

// restrictedIndustries need manual review before enrollment
var restrictedIndustries = map[Industry]bool{
	IndustryOther: true,
}

// EvaluateEligibility applies the program rules in order.
// Every failed rule contributes a reason.
func EvaluateEligibility(owner *BusinessOwner, employeeCount int) EligibilityResult {
	reasons := make([]string, 0, 3)

	if employeeCount < MinEligibleEmployees {
		reasons = append(reasons, ReasonTooFewEmployees)
	}
	if owner.YearsInBusiness < MinEligibleYearsActive {
		reasons = append(reasons, ReasonTooYoung)
	}
	if restrictedIndustries[owner.Industry] {
		reasons = append(reasons, ReasonIndustryReview)
	}

	eligible := len(reasons) == 0
	if eligible {
		reasons = []string{ReasonAllCriteriaMet}
	}

	return EligibilityResult{
		Eligible:        eligible,
		Reasons:         reasons,
		EmployeeCount:   employeeCount,
		YearsInBusiness: owner.YearsInBusiness,
		Industry:        owner.Industry,
	}
}
