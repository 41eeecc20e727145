package enrollment

import (
	"context"
	"sync"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"go.uber.org/zap"
)

// PlanCatalogCache caches the active plan catalog.
// Implementations live in the infrastructure layer (Redis, in-memory).
type PlanCatalogCache interface {
	// Get returns the cached catalog. ok is false on a miss.
	Get(ctx context.Context) (plans []enrollment.BenefitPlan, ok bool, err error)
	Set(ctx context.Context, plans []enrollment.BenefitPlan) error
	Invalidate(ctx context.Context) error
}

// BenefitPlanService serves the plan catalog
type BenefitPlanService struct {
	planRepo enrollment.BenefitPlanRepository
	cache    PlanCatalogCache
	logger   *zap.Logger

	seedMu sync.Mutex
}

// BenefitPlanServiceOption configures a BenefitPlanService
type BenefitPlanServiceOption func(*BenefitPlanService)

// WithPlanCatalogCache sets the catalog cache
func WithPlanCatalogCache(cache PlanCatalogCache) BenefitPlanServiceOption {
	return func(s *BenefitPlanService) {
		s.cache = cache
	}
}

// WithPlanLogger sets the logger
func WithPlanLogger(logger *zap.Logger) BenefitPlanServiceOption {
	return func(s *BenefitPlanService) {
		s.logger = logger
	}
}

// NewBenefitPlanService creates a new BenefitPlanService
func NewBenefitPlanService(planRepo enrollment.BenefitPlanRepository, opts ...BenefitPlanServiceOption) *BenefitPlanService {
	s := &BenefitPlanService{
		planRepo: planRepo,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedDefaults inserts the default catalog when no plans exist.
// It returns the number of plans inserted.
func (s *BenefitPlanService) SeedDefaults(ctx context.Context) (int, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	count, err := s.planRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, in := range enrollment.DefaultPlanCatalog() {
		plan, err := enrollment.NewBenefitPlan(in)
		if err != nil {
			return inserted, err
		}
		if err := s.planRepo.Save(ctx, plan); err != nil {
			return inserted, err
		}
		inserted++
	}

	s.invalidate(ctx)
	s.logger.Info("Seeded default benefit plans", zap.Int("count", inserted))
	return inserted, nil
}

// ListActive returns the active catalog, seeding it on first read
func (s *BenefitPlanService) ListActive(ctx context.Context) ([]BenefitPlanResponse, error) {
	if s.cache != nil {
		plans, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("Plan catalog cache read failed", zap.Error(err))
		} else if ok {
			return ToBenefitPlanResponses(plans), nil
		}
	}

	if _, err := s.SeedDefaults(ctx); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, plans); err != nil {
			s.logger.Warn("Plan catalog cache write failed", zap.Error(err))
		}
	}
	return ToBenefitPlanResponses(plans), nil
}

// ListByType returns the active plans of one type
func (s *BenefitPlanService) ListByType(ctx context.Context, planType string) ([]BenefitPlanResponse, error) {
	pt := enrollment.PlanType(planType)
	if !pt.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLAN_TYPE", "Unknown plan type: "+planType)
	}

	if _, err := s.SeedDefaults(ctx); err != nil {
		return nil, err
	}

	plans, err := s.planRepo.FindActiveByType(ctx, pt)
	if err != nil {
		return nil, err
	}
	return ToBenefitPlanResponses(plans), nil
}

// Create adds a plan to the catalog
func (s *BenefitPlanService) Create(ctx context.Context, req CreateBenefitPlanRequest) (*BenefitPlanResponse, error) {
	in := enrollment.BenefitPlanInput{
		Name:           req.Name,
		PlanType:       enrollment.PlanType(req.PlanType),
		Description:    req.Description,
		CoverageAmount: req.CoverageAmount,
		Deductible:     req.Deductible,
		Features:       req.Features,
	}
	if req.MonthlyPremiumPerEmployee != nil {
		in.MonthlyPremiumPerEmployee = *req.MonthlyPremiumPerEmployee
	}

	plan, err := enrollment.NewBenefitPlan(in)
	if err != nil {
		return nil, err
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToBenefitPlanResponse(plan)
	return &resp, nil
}

func (s *BenefitPlanService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Plan catalog cache invalidation failed", zap.Error(err))
	}
}
