package enrollment

import (
	"context"
	"errors"

	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared"
	"github.com/RobertWLight/BSC/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// HistoryLimit caps calculation and application listings
const HistoryLimit = 100

// Recorder receives enrollment business events for instrumentation
type Recorder interface {
	CalculationCompleted(netSavings decimal.Decimal)
	ApplicationSubmitted()
}

type nopRecorder struct{}

func (nopRecorder) CalculationCompleted(decimal.Decimal) {}
func (nopRecorder) ApplicationSubmitted()                {}

// FicaService prices plan selections against a roster and keeps the history
type FicaService struct {
	ownerRepo    enrollment.BusinessOwnerRepository
	employeeRepo enrollment.EmployeeRepository
	planRepo     enrollment.BenefitPlanRepository
	calcRepo     enrollment.FicaCalculationRepository
	calculator   *enrollment.FicaCalculator
	recorder     Recorder
	logger       *zap.Logger
}

// FicaServiceOption configures a FicaService
type FicaServiceOption func(*FicaService)

// WithFicaRecorder sets the event recorder
func WithFicaRecorder(r Recorder) FicaServiceOption {
	return func(s *FicaService) {
		s.recorder = r
	}
}

// WithFicaLogger sets the logger
func WithFicaLogger(logger *zap.Logger) FicaServiceOption {
	return func(s *FicaService) {
		s.logger = logger
	}
}

// NewFicaService creates a new FicaService
func NewFicaService(
	ownerRepo enrollment.BusinessOwnerRepository,
	employeeRepo enrollment.EmployeeRepository,
	planRepo enrollment.BenefitPlanRepository,
	calcRepo enrollment.FicaCalculationRepository,
	calculator *enrollment.FicaCalculator,
	opts ...FicaServiceOption,
) *FicaService {
	if calculator == nil {
		calculator = enrollment.NewFicaCalculator(decimal.Zero, decimal.Zero)
	}
	s := &FicaService{
		ownerRepo:    ownerRepo,
		employeeRepo: employeeRepo,
		planRepo:     planRepo,
		calcRepo:     calcRepo,
		calculator:   calculator,
		recorder:     nopRecorder{},
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Calculate computes and persists a savings estimate for the owner.
// Plan ids that do not resolve contribute zero cost.
func (s *FicaService) Calculate(ctx context.Context, ownerID uuid.UUID, req CalculateFicaRequest) (_ *FicaCalculationResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "fica", "calculate",
		telemetry.WithAttribute(telemetry.SpanAttrBusinessOwnerID, ownerID.String()),
	)
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	if _, err := findOwner(ctx, s.ownerRepo, ownerID); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.FindByBusinessOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, enrollment.ErrNoEmployees
	}

	health, err := s.resolvePlan(ctx, req.HealthPlanID)
	if err != nil {
		return nil, err
	}
	life, err := s.resolvePlan(ctx, req.LifePlanID)
	if err != nil {
		return nil, err
	}

	calc, err := s.calculator.Calculate(ownerID, employees, health, life)
	if err != nil {
		return nil, err
	}

	if err := s.calcRepo.Save(ctx, calc); err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrEmployeeCount, calc.EmployeeCount)
	s.recorder.CalculationCompleted(calc.NetSavings)
	s.logger.Debug("FICA calculation stored",
		zap.String("business_owner_id", ownerID.String()),
		zap.Int("employees", calc.EmployeeCount),
		zap.String("net_savings", calc.NetSavings.StringFixed(2)),
	)

	resp := ToFicaCalculationResponse(calc)
	return &resp, nil
}

// History returns the owner's calculations, newest first
func (s *FicaService) History(ctx context.Context, ownerID uuid.UUID) ([]FicaCalculationResponse, error) {
	calcs, err := s.calcRepo.FindByBusinessOwner(ctx, ownerID, HistoryLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]FicaCalculationResponse, len(calcs))
	for i := range calcs {
		responses[i] = ToFicaCalculationResponse(&calcs[i])
	}
	return responses, nil
}

func (s *FicaService) resolvePlan(ctx context.Context, id *uuid.UUID) (*enrollment.BenefitPlan, error) {
	if id == nil {
		return nil, nil
	}
	plan, err := s.planRepo.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Debug("Selected plan not found, pricing as zero", zap.String("plan_id", id.String()))
			return nil, nil
		}
		return nil, err
	}
	return plan, nil
}
