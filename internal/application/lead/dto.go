package lead

import (
	"time"

	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaptureLeadRequest represents the public lead form
type CaptureLeadRequest struct {
	FirstName         string `json:"first_name" binding:"required,max=100"`
	LastName          string `json:"last_name" binding:"required,max=100"`
	Email             string `json:"email" binding:"required,email,max=200"`
	Phone             string `json:"phone" binding:"max=50"`
	BusinessName      string `json:"business_name" binding:"required,max=200"`
	NumberOfEmployees string `json:"number_of_employees" binding:"required,oneof=2-5 6-10 11-25 26-50 51-100 100+"`
	Industry          string `json:"industry" binding:"max=100"`
}

// LeadListFilter represents paging for the lead listing
type LeadListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=500"`
}

// SavingsRangeResponse is the potential savings window for a lead
type SavingsRangeResponse struct {
	MinEmployees int64           `json:"min_employees"`
	MaxEmployees int64           `json:"max_employees"`
	Min          decimal.Decimal `json:"min"`
	Max          decimal.Decimal `json:"max"`
	Display      string          `json:"display"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID                uuid.UUID             `json:"id"`
	FirstName         string                `json:"first_name"`
	LastName          string                `json:"last_name"`
	Email             string                `json:"email"`
	Phone             string                `json:"phone"`
	BusinessName      string                `json:"business_name"`
	NumberOfEmployees string                `json:"number_of_employees"`
	Industry          string                `json:"industry"`
	PotentialSavings  *SavingsRangeResponse `json:"potential_savings"`
	CreatedAt         time.Time             `json:"created_at"`
}

// CountResponse is one row of a grouped view
type CountResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StatsResponse is the admin rollup over all leads
type StatsResponse struct {
	TotalLeads       int             `json:"total_leads"`
	TodayLeads       int             `json:"today_leads"`
	ThisWeekLeads    int             `json:"this_week_leads"`
	ThisMonthLeads   int             `json:"this_month_leads"`
	TopIndustries    []CountResponse `json:"top_industries"`
	SizeDistribution []CountResponse `json:"size_distribution"`
	RecentLeads      []LeadResponse  `json:"recent_leads"`
	ReferenceZone    string          `json:"reference_zone"`
	Today            time.Time       `json:"today"`
	WeekStart        time.Time       `json:"week_start"`
	MonthStart       time.Time       `json:"month_start"`
}

// ToLeadResponse converts a domain Lead to LeadResponse
func ToLeadResponse(l *lead.Lead) LeadResponse {
	resp := LeadResponse{
		ID:                l.ID,
		FirstName:         l.FirstName,
		LastName:          l.LastName,
		Email:             l.Email,
		Phone:             l.Phone,
		BusinessName:      l.BusinessName,
		NumberOfEmployees: string(l.NumberOfEmployees),
		Industry:          l.Industry,
		CreatedAt:         l.CreatedAt,
	}
	if r, ok := lead.SavingsRangeFor(l.NumberOfEmployees); ok {
		resp.PotentialSavings = &SavingsRangeResponse{
			MinEmployees: r.MinEmployees,
			MaxEmployees: r.MaxEmployees,
			Min:          r.Min.Amount(),
			Max:          r.Max.Amount(),
			Display:      r.String(),
		}
	}
	return resp
}

// ToLeadResponses converts a list of leads
func ToLeadResponses(leads []lead.Lead) []LeadResponse {
	responses := make([]LeadResponse, len(leads))
	for i := range leads {
		responses[i] = ToLeadResponse(&leads[i])
	}
	return responses
}

// ToStatsResponse converts computed stats
func ToStatsResponse(s lead.Stats, zone *time.Location) StatsResponse {
	return StatsResponse{
		TotalLeads:       s.TotalLeads,
		TodayLeads:       s.TodayLeads,
		ThisWeekLeads:    s.ThisWeekLeads,
		ThisMonthLeads:   s.ThisMonthLeads,
		TopIndustries:    toCountResponses(s.TopIndustries),
		SizeDistribution: toCountResponses(s.SizeDistribution),
		RecentLeads:      ToLeadResponses(s.RecentLeads),
		ReferenceZone:    zone.String(),
		Today:            s.Periods.Today,
		WeekStart:        s.Periods.WeekStart,
		MonthStart:       s.Periods.MonthStart,
	}
}

func toCountResponses(counts []lead.Count) []CountResponse {
	out := make([]CountResponse, len(counts))
	for i, c := range counts {
		out[i] = CountResponse{Key: c.Key, Label: c.Label, Count: c.Count}
	}
	return out
}
