package enrollment

import (
	"fmt"
	"time"

	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationStatus represents where an application is in review
type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "draft"
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// IsValid reports whether the status is a known value
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusDraft, ApplicationStatusSubmitted, ApplicationStatusUnderReview,
		ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application ties a business owner to a plan selection
type Application struct {
	shared.BaseEntity
	BusinessOwnerID      uuid.UUID
	SelectedHealthPlanID *uuid.UUID
	SelectedLifePlanID   *uuid.UUID
	Status               ApplicationStatus
	TotalEmployees       int
	EstimatedSavings     decimal.Decimal
	Notes                string
	SubmittedAt          *time.Time
}

// NewApplication creates a draft application snapshotting the employee count
func NewApplication(ownerID uuid.UUID, healthPlanID, lifePlanID *uuid.UUID, totalEmployees int, notes string) (*Application, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_APPLICATION", "business_owner_id is required")
	}
	if totalEmployees < 0 {
		return nil, shared.NewDomainError("INVALID_APPLICATION", "total_employees cannot be negative")
	}
	return &Application{
		BaseEntity:           shared.NewBaseEntity(),
		BusinessOwnerID:      ownerID,
		SelectedHealthPlanID: healthPlanID,
		SelectedLifePlanID:   lifePlanID,
		Status:               ApplicationStatusDraft,
		TotalEmployees:       totalEmployees,
		EstimatedSavings:     decimal.Zero,
		Notes:                notes,
	}, nil
}

// SubmissionNotes builds the note attached to a wizard submission
func SubmissionNotes(employeeCount int) string {
	return fmt.Sprintf("Application submitted with %d employees", employeeCount)
}

// ApplicationUpdate is a partial update. Nil fields are left untouched.
type ApplicationUpdate struct {
	Status               *ApplicationStatus
	SelectedHealthPlanID *uuid.UUID
	SelectedLifePlanID   *uuid.UUID
	Notes                *string
	EstimatedSavings     *decimal.Decimal
}

// Apply applies the non-nil fields and bumps UpdatedAt. SubmittedAt is stamped
// the first time the status moves to submitted.
func (a *Application) Apply(u ApplicationUpdate) error {
	if u.Status != nil {
		if !u.Status.IsValid() {
			return shared.NewDomainError("INVALID_STATUS", "Unknown application status: "+string(*u.Status))
		}
		a.Status = *u.Status
	}
	if u.SelectedHealthPlanID != nil {
		id := *u.SelectedHealthPlanID
		a.SelectedHealthPlanID = &id
	}
	if u.SelectedLifePlanID != nil {
		id := *u.SelectedLifePlanID
		a.SelectedLifePlanID = &id
	}
	if u.Notes != nil {
		a.Notes = *u.Notes
	}
	if u.EstimatedSavings != nil {
		a.EstimatedSavings = *u.EstimatedSavings
	}

	a.Touch()
	if u.Status != nil && *u.Status == ApplicationStatusSubmitted && a.SubmittedAt == nil {
		at := a.UpdatedAt
		a.SubmittedAt = &at
	}
	return nil
}

// IsSubmitted reports whether the application has left draft
func (a *Application) IsSubmitted() bool {
	return a.SubmittedAt != nil
}
