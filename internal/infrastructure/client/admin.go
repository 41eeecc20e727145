package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/RobertWLight/BSC/internal/application/admin"
	applead "github.com/RobertWLight/BSC/internal/application/lead"
	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/infrastructure/auth"
)

// leadPageSize is the largest page the lead listing serves
const leadPageSize = 500

var (
	_ admin.LeadSource    = (*Client)(nil)
	_ admin.Authenticator = (*Client)(nil)
)

// CaptureLead submits the public lead form
func (c *Client) CaptureLead(ctx context.Context, req applead.CaptureLeadRequest) (*applead.LeadResponse, error) {
	var out applead.LeadResponse
	if _, err := c.call(ctx, http.MethodPost, "/leads", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListLeads pages through every lead, newest first
func (c *Client) ListLeads(ctx context.Context) ([]lead.Lead, error) {
	var leads []lead.Lead
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(leadPageSize))

		var batch []applead.LeadResponse
		meta, err := c.call(ctx, http.MethodGet, "/leads", query, nil, &batch)
		if err != nil {
			return nil, err
		}
		for i := range batch {
			leads = append(leads, toLead(&batch[i]))
		}

		if len(batch) < leadPageSize || meta == nil || int64(len(leads)) >= meta.Total {
			return leads, nil
		}
	}
}

// Authenticate exchanges the PIN for an admin session. A rejected PIN
// reports false without an error and keeps any previous session.
func (c *Client) Authenticate(ctx context.Context, pin string) (bool, error) {
	var session auth.SessionToken
	_, err := c.call(ctx, http.MethodPost, "/admin/session", nil, map[string]string{"pin": pin}, &session)
	if err != nil {
		var apiErr *APIError
		if errors.Is(err, shared.ErrUnauthorized) ||
			(errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest) {
			return false, nil
		}
		return false, err
	}
	c.SetToken(session.Token)
	return true, nil
}

// LeadStats returns the server-side rollup. It needs an admin session.
func (c *Client) LeadStats(ctx context.Context) (*applead.StatsResponse, error) {
	var out applead.StatsResponse
	if _, err := c.call(ctx, http.MethodGet, "/admin/lead-stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports whether the server and its database are up
func (c *Client) Health(ctx context.Context) error {
	root := *c.baseURL
	root.Path = ""
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root.JoinPath("/health").String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: "server unhealthy"}
	}
	return nil
}

func toLead(r *applead.LeadResponse) lead.Lead {
	return lead.Lead{
		BaseEntity: shared.BaseEntity{
			ID:        r.ID,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.CreatedAt,
		},
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		Phone:             r.Phone,
		BusinessName:      r.BusinessName,
		NumberOfEmployees: lead.EmployeeBucket(r.NumberOfEmployees),
		Industry:          r.Industry,
	}
}
