package client

import (
	"context"
	"net/http"
	"net/url"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/RobertWLight/BSC/internal/application/wizard"
	"github.com/google/uuid"
)

var _ wizard.Backend = (*Client)(nil)

// CreateBusinessOwner registers a business owner
func (c *Client) CreateBusinessOwner(ctx context.Context, req appenrollment.CreateBusinessOwnerRequest) (*appenrollment.BusinessOwnerResponse, error) {
	var out appenrollment.BusinessOwnerResponse
	if _, err := c.call(ctx, http.MethodPost, "/business-owners", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBusinessOwner loads a business owner
func (c *Client) GetBusinessOwner(ctx context.Context, id uuid.UUID) (*appenrollment.BusinessOwnerResponse, error) {
	var out appenrollment.BusinessOwnerResponse
	if _, err := c.call(ctx, http.MethodGet, "/business-owners/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEmployee adds an employee to an owner's roster
func (c *Client) CreateEmployee(ctx context.Context, req appenrollment.CreateEmployeeRequest) (*appenrollment.EmployeeResponse, error) {
	var out appenrollment.EmployeeResponse
	if _, err := c.call(ctx, http.MethodPost, "/employees", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEmployees returns an owner's roster
func (c *Client) ListEmployees(ctx context.Context, ownerID uuid.UUID) ([]appenrollment.EmployeeResponse, error) {
	var out []appenrollment.EmployeeResponse
	if _, err := c.call(ctx, http.MethodGet, "/employees/business/"+ownerID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteEmployee removes an employee
func (c *Client) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	_, err := c.call(ctx, http.MethodDelete, "/employees/"+id.String(), nil, nil, nil)
	return err
}

// ListBenefitPlans returns the active plan catalog
func (c *Client) ListBenefitPlans(ctx context.Context) ([]appenrollment.BenefitPlanResponse, error) {
	var out []appenrollment.BenefitPlanResponse
	if _, err := c.call(ctx, http.MethodGet, "/benefit-plans", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CalculateFica stores a savings estimate priced with the given plans
func (c *Client) CalculateFica(ctx context.Context, ownerID uuid.UUID, healthPlanID, lifePlanID *uuid.UUID) (*appenrollment.FicaCalculationResponse, error) {
	query := url.Values{}
	if healthPlanID != nil {
		query.Set("health_plan_id", healthPlanID.String())
	}
	if lifePlanID != nil {
		query.Set("life_plan_id", lifePlanID.String())
	}

	var out appenrollment.FicaCalculationResponse
	if _, err := c.call(ctx, http.MethodPost, "/fica-calculation/"+ownerID.String(), query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FicaHistory returns an owner's calculations, newest first
func (c *Client) FicaHistory(ctx context.Context, ownerID uuid.UUID) ([]appenrollment.FicaCalculationResponse, error) {
	var out []appenrollment.FicaCalculationResponse
	if _, err := c.call(ctx, http.MethodGet, "/fica-calculation/history/"+ownerID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckEligibility evaluates the owner against the program rules
func (c *Client) CheckEligibility(ctx context.Context, ownerID uuid.UUID) (*appenrollment.EligibilityResponse, error) {
	var out appenrollment.EligibilityResponse
	if _, err := c.call(ctx, http.MethodGet, "/eligibility-check/"+ownerID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateApplication opens a draft application
func (c *Client) CreateApplication(ctx context.Context, req appenrollment.CreateApplicationRequest) (*appenrollment.ApplicationResponse, error) {
	var out appenrollment.ApplicationResponse
	if _, err := c.call(ctx, http.MethodPost, "/applications", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateApplication applies a partial update
func (c *Client) UpdateApplication(ctx context.Context, id uuid.UUID, req appenrollment.UpdateApplicationRequest) (*appenrollment.ApplicationResponse, error) {
	var out appenrollment.ApplicationResponse
	if _, err := c.call(ctx, http.MethodPut, "/applications/"+id.String(), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListApplications returns an owner's applications, newest first
func (c *Client) ListApplications(ctx context.Context, ownerID uuid.UUID) ([]appenrollment.ApplicationResponse, error) {
	var out []appenrollment.ApplicationResponse
	if _, err := c.call(ctx, http.MethodGet, "/applications/business/"+ownerID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplicationSummary downloads the PDF summary of an application
func (c *Client) ApplicationSummary(ctx context.Context, id uuid.UUID) ([]byte, error) {
	data, _, err := c.download(ctx, "/applications/"+id.String()+"/summary.pdf", appenrollment.SummaryContentType)
	return data, err
}

// Dashboard returns the owner's enrollment summary
func (c *Client) Dashboard(ctx context.Context, ownerID uuid.UUID) (*appenrollment.DashboardResponse, error) {
	var out appenrollment.DashboardResponse
	if _, err := c.call(ctx, http.MethodGet, "/dashboard/"+ownerID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
