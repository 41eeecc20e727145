package enrollment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SummaryContentType is the media type of rendered application summaries
const SummaryContentType = "application/pdf"

// ApplicationSummary gathers everything printed on an application summary
type ApplicationSummary struct {
	Application       *enrollment.Application
	Owner             *enrollment.BusinessOwner
	Employees         []enrollment.Employee
	HealthPlan        *enrollment.BenefitPlan
	LifePlan          *enrollment.BenefitPlan
	LatestCalculation *enrollment.FicaCalculation
	GeneratedAt       time.Time
}

// SummaryRenderer renders an application summary document
type SummaryRenderer interface {
	RenderApplicationSummary(summary *ApplicationSummary) ([]byte, error)
}

// DocumentArchive stores rendered documents.
// This interface will be implemented by the infrastructure layer (S3, in-memory).
type DocumentArchive interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
}

// SummaryStorageKey returns the archive key of an application's summary
func SummaryStorageKey(app *enrollment.Application) string {
	return fmt.Sprintf("applications/%s/%s/summary.pdf", app.BusinessOwnerID, app.ID)
}

// ApplicationService handles the application lifecycle
type ApplicationService struct {
	ownerRepo    enrollment.BusinessOwnerRepository
	employeeRepo enrollment.EmployeeRepository
	planRepo     enrollment.BenefitPlanRepository
	calcRepo     enrollment.FicaCalculationRepository
	appRepo      enrollment.ApplicationRepository
	renderer     SummaryRenderer
	archive      DocumentArchive
	recorder     Recorder
	logger       *zap.Logger
}

// ApplicationServiceOption configures an ApplicationService
type ApplicationServiceOption func(*ApplicationService)

// WithSummaryRenderer enables PDF summaries
func WithSummaryRenderer(r SummaryRenderer) ApplicationServiceOption {
	return func(s *ApplicationService) {
		s.renderer = r
	}
}

// WithDocumentArchive archives a summary when an application is submitted
func WithDocumentArchive(a DocumentArchive) ApplicationServiceOption {
	return func(s *ApplicationService) {
		s.archive = a
	}
}

// WithApplicationRecorder sets the event recorder
func WithApplicationRecorder(r Recorder) ApplicationServiceOption {
	return func(s *ApplicationService) {
		s.recorder = r
	}
}

// WithApplicationLogger sets the logger
func WithApplicationLogger(logger *zap.Logger) ApplicationServiceOption {
	return func(s *ApplicationService) {
		s.logger = logger
	}
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	ownerRepo enrollment.BusinessOwnerRepository,
	employeeRepo enrollment.EmployeeRepository,
	planRepo enrollment.BenefitPlanRepository,
	calcRepo enrollment.FicaCalculationRepository,
	appRepo enrollment.ApplicationRepository,
	opts ...ApplicationServiceOption,
) *ApplicationService {
	s := &ApplicationService{
		ownerRepo:    ownerRepo,
		employeeRepo: employeeRepo,
		planRepo:     planRepo,
		calcRepo:     calcRepo,
		appRepo:      appRepo,
		recorder:     nopRecorder{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a draft application snapshotting the current roster size
func (s *ApplicationService) Create(ctx context.Context, req CreateApplicationRequest) (*ApplicationResponse, error) {
	if _, err := findOwner(ctx, s.ownerRepo, req.BusinessOwnerID); err != nil {
		return nil, err
	}

	count, err := s.employeeRepo.CountByBusinessOwner(ctx, req.BusinessOwnerID)
	if err != nil {
		return nil, err
	}

	app, err := enrollment.NewApplication(req.BusinessOwnerID, req.SelectedHealthPlanID, req.SelectedLifePlanID, int(count), req.Notes)
	if err != nil {
		return nil, err
	}
	if req.EstimatedAnnualSavings != nil {
		app.EstimatedSavings = *req.EstimatedAnnualSavings
	}

	if err := s.appRepo.Save(ctx, app); err != nil {
		return nil, err
	}

	resp := ToApplicationResponse(app)
	return &resp, nil
}

// GetByID retrieves an application by ID
func (s *ApplicationService) GetByID(ctx context.Context, id uuid.UUID) (*ApplicationResponse, error) {
	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToApplicationResponse(app)
	return &resp, nil
}

// ListByOwner returns the owner's applications, newest first
func (s *ApplicationService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]ApplicationResponse, error) {
	apps, err := s.appRepo.FindByBusinessOwner(ctx, ownerID, HistoryLimit)
	if err != nil {
		return nil, err
	}
	return ToApplicationResponses(apps), nil
}

// Update applies a partial update. The first transition to submitted
// archives a summary when an archive is configured.
func (s *ApplicationService) Update(ctx context.Context, id uuid.UUID, req UpdateApplicationRequest) (_ *ApplicationResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "application", "update",
		telemetry.WithAttribute(telemetry.SpanAttrApplicationID, id.String()),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	update := enrollment.ApplicationUpdate{
		SelectedHealthPlanID: req.SelectedHealthPlanID,
		SelectedLifePlanID:   req.SelectedLifePlanID,
		Notes:                req.Notes,
		EstimatedSavings:     req.EstimatedAnnualSavings,
	}
	if req.Status != nil {
		status := enrollment.ApplicationStatus(*req.Status)
		update.Status = &status
	}

	wasSubmitted := app.IsSubmitted()
	if err := app.Apply(update); err != nil {
		return nil, err
	}

	if err := s.appRepo.Save(ctx, app); err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrStatus, string(app.Status))
	if !wasSubmitted && app.IsSubmitted() {
		s.recorder.ApplicationSubmitted()
		s.archiveSummary(ctx, app)
	}

	resp := ToApplicationResponse(app)
	return &resp, nil
}

// RenderSummary renders the application summary PDF
func (s *ApplicationService) RenderSummary(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("SUMMARY_UNAVAILABLE", "Application summaries are not enabled")
	}

	app, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := s.buildSummary(ctx, app)
	if err != nil {
		return nil, err
	}
	return s.renderer.RenderApplicationSummary(summary)
}

func (s *ApplicationService) archiveSummary(ctx context.Context, app *enrollment.Application) {
	if s.renderer == nil || s.archive == nil {
		return
	}

	summary, err := s.buildSummary(ctx, app)
	if err != nil {
		s.logger.Warn("Failed to build application summary", zap.String("application_id", app.ID.String()), zap.Error(err))
		return
	}
	data, err := s.renderer.RenderApplicationSummary(summary)
	if err != nil {
		s.logger.Warn("Failed to render application summary", zap.String("application_id", app.ID.String()), zap.Error(err))
		return
	}

	key := SummaryStorageKey(app)
	if err := s.archive.Upload(ctx, key, data, SummaryContentType); err != nil {
		s.logger.Warn("Failed to archive application summary", zap.String("storage_key", key), zap.Error(err))
		return
	}
	s.logger.Info("Archived application summary", zap.String("storage_key", key), zap.Int("bytes", len(data)))
}

func (s *ApplicationService) buildSummary(ctx context.Context, app *enrollment.Application) (*ApplicationSummary, error) {
	owner, err := findOwner(ctx, s.ownerRepo, app.BusinessOwnerID)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.FindByBusinessOwner(ctx, app.BusinessOwnerID)
	if err != nil {
		return nil, err
	}

	health, err := s.optionalPlan(ctx, app.SelectedHealthPlanID)
	if err != nil {
		return nil, err
	}
	life, err := s.optionalPlan(ctx, app.SelectedLifePlanID)
	if err != nil {
		return nil, err
	}

	latest, err := s.calcRepo.FindLatest(ctx, app.BusinessOwnerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	return &ApplicationSummary{
		Application:       app,
		Owner:             owner,
		Employees:         employees,
		HealthPlan:        health,
		LifePlan:          life,
		LatestCalculation: latest,
		GeneratedAt:       shared.Now(),
	}, nil
}

func (s *ApplicationService) optionalPlan(ctx context.Context, id *uuid.UUID) (*enrollment.BenefitPlan, error) {
	if id == nil {
		return nil, nil
	}
	plan, err := s.planRepo.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}

func (s *ApplicationService) findApplication(ctx context.Context, id uuid.UUID) (*enrollment.Application, error) {
	app, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Application")
		}
		return nil, err
	}
	return app, nil
}
