package lead

import (
	"context"

	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"go.uber.org/zap"
)

// Recorder receives lead funnel events for instrumentation
type Recorder interface {
	LeadCaptured(bucket string)
}

type nopRecorder struct{}

func (nopRecorder) LeadCaptured(string) {}

// LeadService captures leads and builds the admin statistics
type LeadService struct {
	repo       lead.Repository
	aggregator *lead.Aggregator
	recorder   Recorder
	logger     *zap.Logger
}

// Option configures a LeadService
type Option func(*LeadService)

// WithRecorder sets the event recorder
func WithRecorder(r Recorder) Option {
	return func(s *LeadService) {
		s.recorder = r
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *LeadService) {
		s.logger = logger
	}
}

// NewLeadService creates a new LeadService
func NewLeadService(repo lead.Repository, aggregator *lead.Aggregator, opts ...Option) *LeadService {
	s := &LeadService{
		repo:       repo,
		aggregator: aggregator,
		recorder:   nopRecorder{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capture validates and stores a lead
func (s *LeadService) Capture(ctx context.Context, req CaptureLeadRequest) (*LeadResponse, error) {
	l, err := lead.NewLead(lead.Input{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		BusinessName:      req.BusinessName,
		NumberOfEmployees: lead.EmployeeBucket(req.NumberOfEmployees),
		Industry:          req.Industry,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, l); err != nil {
		return nil, err
	}

	s.recorder.LeadCaptured(string(l.NumberOfEmployees))
	s.logger.Info("Lead captured",
		zap.String("lead_id", l.ID.String()),
		zap.String("number_of_employees", string(l.NumberOfEmployees)),
	)

	resp := ToLeadResponse(l)
	return &resp, nil
}

// List returns leads newest first
func (s *LeadService) List(ctx context.Context, filter LeadListFilter) ([]LeadResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	leads, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return ToLeadResponses(leads), total, nil
}

// Stats computes the admin rollup over every stored lead
func (s *LeadService) Stats(ctx context.Context) (*StatsResponse, error) {
	all := shared.DefaultFilter()
	all.PageSize = 0

	leads, err := s.repo.FindAll(ctx, all)
	if err != nil {
		return nil, err
	}

	resp := ToStatsResponse(s.aggregator.Compute(leads), s.aggregator.Zone())
	return &resp, nil
}
