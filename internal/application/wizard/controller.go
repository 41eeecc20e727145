package wizard

import (
	"context"
	"errors"
	"sync"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Step is a wizard page
type Step int

const (
	StepBusinessInfo Step = iota + 1
	StepEmployeeManagement
	StepBenefitSelection
	StepReview
)

var stepNames = map[Step]string{
	StepBusinessInfo:       "Business Information",
	StepEmployeeManagement: "Employee Management",
	StepBenefitSelection:   "Benefit Selection",
	StepReview:             "Review & Submit",
}

// IsValid reports whether the step exists
func (s Step) IsValid() bool {
	return s >= StepBusinessInfo && s <= StepReview
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "Unknown"
}

// State is a point-in-time copy of the wizard
type State struct {
	Step        Step
	Loading     bool
	Error       string
	Owner       *appenrollment.BusinessOwnerResponse
	Employees   []appenrollment.EmployeeResponse
	Plans       []appenrollment.BenefitPlanResponse
	HealthPlan  *appenrollment.BenefitPlanResponse
	LifePlan    *appenrollment.BenefitPlanResponse
	Fica        *appenrollment.FicaCalculationResponse
	Eligibility *appenrollment.EligibilityResponse
	Application *appenrollment.ApplicationResponse
	Completed   bool
}

// Controller drives the four-step enrollment wizard against a Backend.
// It is safe for concurrent use. Backend calls run without holding the
// state lock, so FICA recomputations may overlap; each carries a generation
// number and only the latest one is applied.
type Controller struct {
	backend Backend
	session *Session
	logger  *zap.Logger

	mu          sync.RWMutex
	step        Step
	loading     int
	errMsg      string
	owner       *appenrollment.BusinessOwnerResponse
	employees   []appenrollment.EmployeeResponse
	plans       []appenrollment.BenefitPlanResponse
	healthPlan  *appenrollment.BenefitPlanResponse
	lifePlan    *appenrollment.BenefitPlanResponse
	fica        *appenrollment.FicaCalculationResponse
	ficaGen     uint64
	eligibility *appenrollment.EligibilityResponse
	application *appenrollment.ApplicationResponse
	completed   bool
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a wizard positioned at step 1
func NewController(backend Backend, session *Session, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		session: session,
		logger:  zap.NewNop(),
		step:    StepBusinessInfo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start loads the plan catalog and, when the session already holds an owner,
// the owner and roster. Load failures are logged and do not set Error.
func (c *Controller) Start(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	plans, err := c.backend.ListBenefitPlans(ctx)
	if err != nil {
		c.logger.Warn("Error loading benefit plans", zap.Error(err))
		keep(err)
	} else {
		c.mu.Lock()
		c.plans = plans
		c.mu.Unlock()
	}

	ownerID, ok := c.session.BusinessOwnerID()
	if !ok {
		return firstErr
	}

	c.begin()
	owner, err := c.backend.GetBusinessOwner(ctx, ownerID)
	c.end()
	if err != nil {
		c.logger.Warn("Error loading business owner", zap.String("business_owner_id", ownerID.String()), zap.Error(err))
		keep(err)
	} else {
		c.mu.Lock()
		c.owner = owner
		c.mu.Unlock()
	}

	if err := c.refreshEmployees(ctx, ownerID); err != nil {
		keep(err)
	}
	return firstErr
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return State{
		Step:        c.step,
		Loading:     c.loading > 0,
		Error:       c.errMsg,
		Owner:       c.owner,
		Employees:   append([]appenrollment.EmployeeResponse(nil), c.employees...),
		Plans:       append([]appenrollment.BenefitPlanResponse(nil), c.plans...),
		HealthPlan:  c.healthPlan,
		LifePlan:    c.lifePlan,
		Fica:        c.fica,
		Eligibility: c.eligibility,
		Application: c.application,
		Completed:   c.completed,
	}
}

// Step returns the current step
func (c *Controller) Step() Step {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.step
}

// Error returns the user-visible error, if any
func (c *Controller) Error() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// Loading reports whether a backend call is in flight
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading > 0
}

// Completed reports whether the application was submitted
func (c *Controller) Completed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.completed
}

// ClearError dismisses the current error
func (c *Controller) ClearError() {
	c.setError("")
}

// HealthPlans returns the health half of the catalog
func (c *Controller) HealthPlans() []appenrollment.BenefitPlanResponse {
	return c.plansWhere(func(t enrollment.PlanType) bool { return t.IsHealth() })
}

// LifePlans returns the life half of the catalog
func (c *Controller) LifePlans() []appenrollment.BenefitPlanResponse {
	return c.plansWhere(func(t enrollment.PlanType) bool { return t.IsLife() })
}

// NextStep advances one step. It is a no-op on the last step.
func (c *Controller) NextStep(ctx context.Context) error {
	return c.moveTo(ctx, func(cur Step) Step {
		if cur < StepReview {
			return cur + 1
		}
		return cur
	})
}

// PrevStep goes back one step. It is a no-op on the first step.
func (c *Controller) PrevStep(ctx context.Context) error {
	return c.moveTo(ctx, func(cur Step) Step {
		if cur > StepBusinessInfo {
			return cur - 1
		}
		return cur
	})
}

// GoToStep jumps to step n without checking earlier steps.
// Values outside 1..4 are ignored.
func (c *Controller) GoToStep(ctx context.Context, n int) error {
	target := Step(n)
	if !target.IsValid() {
		return nil
	}
	return c.moveTo(ctx, func(Step) Step { return target })
}

// SubmitBusinessInfo validates step 1 and creates the business owner once.
// When the session already holds an owner it only advances.
func (c *Controller) SubmitBusinessInfo(ctx context.Context, form BusinessInfoForm) error {
	c.setError("")

	req, err := form.Validate()
	if err != nil {
		return c.fail(err)
	}

	if _, ok := c.session.BusinessOwnerID(); ok {
		return c.NextStep(ctx)
	}

	c.begin()
	owner, err := c.backend.CreateBusinessOwner(ctx, req)
	c.end()
	if err != nil {
		c.logger.Error("Error saving business owner", zap.Error(err))
		return c.fail(serviceError(MsgSaveBusinessFailed, err))
	}

	c.mu.Lock()
	c.owner = owner
	c.mu.Unlock()
	c.session.SetBusinessOwnerID(owner.ID)

	return c.NextStep(ctx)
}

// AddEmployee validates the form, creates the employee and reloads the roster
func (c *Controller) AddEmployee(ctx context.Context, form EmployeeForm) error {
	c.setError("")

	ownerID, hasOwner := c.session.BusinessOwnerID()
	req, err := form.Validate(ownerID)
	if err != nil {
		return c.fail(err)
	}
	if !hasOwner {
		return c.fail(serviceError(MsgAddEmployeeFailed, ErrNoBusinessOwner))
	}

	c.begin()
	defer c.end()

	if _, err := c.backend.CreateEmployee(ctx, req); err != nil {
		c.logger.Error("Error adding employee", zap.Error(err))
		return c.fail(serviceError(MsgAddEmployeeFailed, err))
	}
	_ = c.refreshEmployees(ctx, ownerID)
	return nil
}

// RemoveEmployee deletes an employee and reloads the roster
func (c *Controller) RemoveEmployee(ctx context.Context, id uuid.UUID) error {
	ownerID, hasOwner := c.session.BusinessOwnerID()
	if !hasOwner {
		return c.fail(serviceError(MsgDeleteEmployeeFailed, ErrNoBusinessOwner))
	}

	c.begin()
	defer c.end()

	if err := c.backend.DeleteEmployee(ctx, id); err != nil {
		c.logger.Error("Error deleting employee", zap.String("employee_id", id.String()), zap.Error(err))
		return c.fail(serviceError(MsgDeleteEmployeeFailed, err))
	}
	_ = c.refreshEmployees(ctx, ownerID)
	return nil
}

// ContinueFromEmployees leaves step 2 once the roster is non-empty
func (c *Controller) ContinueFromEmployees(ctx context.Context) error {
	c.mu.RLock()
	empty := len(c.employees) == 0
	c.mu.RUnlock()

	if empty {
		return c.fail(validationError(MsgNoEmployees))
	}
	return c.NextStep(ctx)
}

// SelectHealthPlan sets or clears (nil) the health plan and recomputes FICA savings
func (c *Controller) SelectHealthPlan(ctx context.Context, planID *uuid.UUID) error {
	return c.selectPlan(ctx, planID, func(t enrollment.PlanType) bool { return t.IsHealth() }, func(p *appenrollment.BenefitPlanResponse) {
		c.healthPlan = p
	})
}

// SelectLifePlan sets or clears (nil) the life plan and recomputes FICA savings
func (c *Controller) SelectLifePlan(ctx context.Context, planID *uuid.UUID) error {
	return c.selectPlan(ctx, planID, func(t enrollment.PlanType) bool { return t.IsLife() }, func(p *appenrollment.BenefitPlanResponse) {
		c.lifePlan = p
	})
}

// ContinueFromBenefits leaves step 3 once a plan is selected
func (c *Controller) ContinueFromBenefits(ctx context.Context) error {
	c.mu.RLock()
	none := c.healthPlan == nil && c.lifePlan == nil
	c.mu.RUnlock()

	if none {
		return c.fail(validationError(MsgNoPlanSelected))
	}
	return c.NextStep(ctx)
}

// CheckEligibility refreshes the eligibility result. Failures are logged and
// leave the previous result in place.
func (c *Controller) CheckEligibility(ctx context.Context) error {
	ownerID, ok := c.session.BusinessOwnerID()
	if !ok {
		return nil
	}

	result, err := c.backend.CheckEligibility(ctx, ownerID)
	if err != nil {
		c.logger.Warn("Error checking eligibility", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.eligibility = result
	c.mu.Unlock()
	return nil
}

// SubmitApplication creates the application and marks it submitted.
// Terms must be accepted and the business must be eligible.
func (c *Controller) SubmitApplication(ctx context.Context, acceptTerms bool) error {
	if !acceptTerms {
		return c.fail(validationError(MsgTermsNotAccepted))
	}

	c.mu.RLock()
	eligible := c.eligibility != nil && c.eligibility.Eligible
	req := appenrollment.CreateApplicationRequest{
		SelectedHealthPlanID: planID(c.healthPlan),
		SelectedLifePlanID:   planID(c.lifePlan),
		Notes:                enrollment.SubmissionNotes(len(c.employees)),
	}
	if c.fica != nil {
		savings := c.fica.AnnualSavings
		req.EstimatedAnnualSavings = &savings
	}
	c.mu.RUnlock()

	if !eligible {
		return c.fail(validationError(MsgNotEligible))
	}

	ownerID, ok := c.session.BusinessOwnerID()
	if !ok {
		return c.fail(serviceError(MsgSubmitApplicationFail, ErrNoBusinessOwner))
	}
	req.BusinessOwnerID = ownerID

	c.begin()
	defer c.end()

	app, err := c.backend.CreateApplication(ctx, req)
	if err != nil {
		c.logger.Error("Error submitting application", zap.Error(err))
		return c.fail(serviceError(MsgSubmitApplicationFail, err))
	}

	status := string(enrollment.ApplicationStatusSubmitted)
	app, err = c.backend.UpdateApplication(ctx, app.ID, appenrollment.UpdateApplicationRequest{Status: &status})
	if err != nil {
		c.logger.Error("Error submitting application", zap.Error(err))
		return c.fail(serviceError(MsgSubmitApplicationFail, err))
	}

	c.mu.Lock()
	c.application = app
	c.completed = true
	c.mu.Unlock()
	c.logger.Info("Application submitted", zap.String("application_id", app.ID.String()))
	return nil
}

func (c *Controller) moveTo(ctx context.Context, next func(Step) Step) error {
	c.mu.Lock()
	from := c.step
	to := next(from)
	if to == from {
		c.mu.Unlock()
		return nil
	}
	c.step = to
	c.mu.Unlock()

	switch to {
	case StepBenefitSelection:
		return c.recompute(ctx)
	case StepReview:
		return c.CheckEligibility(ctx)
	}
	return nil
}

func (c *Controller) selectPlan(
	ctx context.Context,
	id *uuid.UUID,
	kind func(enrollment.PlanType) bool,
	assign func(*appenrollment.BenefitPlanResponse),
) error {
	c.mu.Lock()
	var selected *appenrollment.BenefitPlanResponse
	if id != nil {
		for i := range c.plans {
			if c.plans[i].ID == *id && kind(enrollment.PlanType(c.plans[i].PlanType)) {
				p := c.plans[i]
				selected = &p
				break
			}
		}
		if selected == nil {
			c.errMsg = MsgUnknownPlan
			c.mu.Unlock()
			return validationError(MsgUnknownPlan)
		}
	}
	assign(selected)
	c.mu.Unlock()

	return c.recompute(ctx)
}

// recompute requests a FICA calculation when a plan is selected and the
// roster is non-empty. With no employees the previous result stays.
func (c *Controller) recompute(ctx context.Context) error {
	ownerID, ok := c.session.BusinessOwnerID()

	c.mu.Lock()
	if !ok || len(c.employees) == 0 || (c.healthPlan == nil && c.lifePlan == nil) {
		c.mu.Unlock()
		return nil
	}
	c.ficaGen++
	gen := c.ficaGen
	healthID, lifeID := planID(c.healthPlan), planID(c.lifePlan)
	c.loading++
	c.mu.Unlock()

	result, err := c.backend.CalculateFica(ctx, ownerID, healthID, lifeID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--

	if gen != c.ficaGen {
		c.logger.Debug("Discarding stale FICA result", zap.Uint64("generation", gen), zap.Uint64("latest", c.ficaGen))
		return nil
	}
	if err != nil {
		c.logger.Error("Error calculating FICA", zap.Error(err))
		c.errMsg = MsgCalculateFicaFailed
		return serviceError(MsgCalculateFicaFailed, err)
	}
	c.fica = result
	return nil
}

func (c *Controller) refreshEmployees(ctx context.Context, ownerID uuid.UUID) error {
	employees, err := c.backend.ListEmployees(ctx, ownerID)
	if err != nil {
		c.logger.Warn("Error loading employees", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.employees = employees
	c.mu.Unlock()
	return nil
}

func (c *Controller) plansWhere(match func(enrollment.PlanType) bool) []appenrollment.BenefitPlanResponse {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]appenrollment.BenefitPlanResponse, 0, len(c.plans))
	for _, p := range c.plans {
		if match(enrollment.PlanType(p.PlanType)) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Controller) fail(err error) error {
	var we *Error
	if errors.As(err, &we) {
		c.setError(we.Message)
	} else {
		c.setError(err.Error())
	}
	return err
}

func (c *Controller) setError(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *Controller) begin() {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()
}

func (c *Controller) end() {
	c.mu.Lock()
	c.loading--
	c.mu.Unlock()
}

func planID(p *appenrollment.BenefitPlanResponse) *uuid.UUID {
	if p == nil {
		return nil
	}
	id := p.ID
	return &id
}
