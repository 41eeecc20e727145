package router

import (
	"time"

	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/RobertWLight/BSC/internal/infrastructure/logger"
	"github.com/RobertWLight/BSC/internal/infrastructure/metrics"
	"github.com/RobertWLight/BSC/internal/interfaces/http/handler"
	"github.com/RobertWLight/BSC/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers are the API handlers mounted under /api/v1
type Handlers struct {
	Owners       *handler.BusinessOwnerHandler
	Employees    *handler.EmployeeHandler
	Plans        *handler.BenefitPlanHandler
	Fica         *handler.FicaHandler
	Applications *handler.ApplicationHandler
	Eligibility  *handler.EligibilityHandler
	Dashboard    *handler.DashboardHandler
	Leads        *handler.LeadHandler
	Admin        *handler.AdminHandler
	Health       *handler.HealthHandler
}

// EngineConfig wires the engine's middleware and handlers
type EngineConfig struct {
	HTTP      config.HTTPConfig
	Telemetry config.TelemetryConfig
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Verifier  middleware.TokenVerifier
	Handlers  Handlers
}

// NewEngine builds the gin engine. The returned stop func releases the
// rate limiter's background cleanup.
func NewEngine(cfg EngineConfig) (*gin.Engine, func()) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Logger - Request-scoped logger and access log
	// 3. Recovery - Catch panics
	// 4. Tracing - Server span per request, error status on 4xx/5xx
	// 5. Metrics - Request counters and latency
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
	}))
	engine.Use(middleware.SpanErrorMarker())
	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.GinMiddleware())
	}
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	stop := func() {}
	if cfg.HTTP.RateLimitEnabled && cfg.HTTP.RateLimitRequests > 0 {
		window := cfg.HTTP.RateLimitWindow
		if window <= 0 {
			window = time.Minute
		}
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, window)
		engine.Use(middleware.RateLimit(rateLimiter))
		stop = rateLimiter.Stop
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", window),
		)
	}

	// Health and metrics stay outside API versioning
	if cfg.Handlers.Health != nil {
		engine.GET("/health", cfg.Handlers.Health.Health)
	}
	if cfg.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, group := range APIGroups(cfg.Handlers, middleware.AdminAuth(cfg.Verifier, log)) {
		r.Register(group)
	}
	r.Setup()

	return engine, stop
}

// APIGroups lays out the versioned API. adminAuth guards the admin reads.
func APIGroups(h Handlers, adminAuth gin.HandlerFunc) []*DomainGroup {
	owners := NewDomainGroup("business-owners", "/business-owners")
	owners.POST("", h.Owners.Create).
		GET("", h.Owners.List).
		GET("/:id", h.Owners.GetByID)

	employees := NewDomainGroup("employees", "/employees")
	employees.POST("", h.Employees.Create).
		GET("/business/:ownerId", h.Employees.ListByOwner).
		GET("/:id", h.Employees.GetByID).
		DELETE("/:id", h.Employees.Delete)

	plans := NewDomainGroup("benefit-plans", "/benefit-plans")
	plans.GET("", h.Plans.ListActive).
		GET("/:planType", h.Plans.ListByType).
		POST("", h.Plans.Create)

	fica := NewDomainGroup("fica", "/fica-calculation")
	fica.POST("/:ownerId", h.Fica.Calculate).
		GET("/history/:ownerId", h.Fica.History)

	applications := NewDomainGroup("applications", "/applications")
	applications.POST("", h.Applications.Create).
		PUT("/:id", h.Applications.Update).
		GET("/business/:ownerId", h.Applications.ListByOwner).
		GET("/:id/summary.pdf", h.Applications.Summary)

	eligibility := NewDomainGroup("eligibility", "/eligibility-check")
	eligibility.GET("/:ownerId", h.Eligibility.Check)

	dashboard := NewDomainGroup("dashboard", "/dashboard")
	dashboard.GET("/:ownerId", h.Dashboard.Get)

	leads := NewDomainGroup("leads", "/leads")
	leads.POST("", h.Leads.Capture).
		GET("", h.Leads.List)

	admin := NewDomainGroup("admin", "/admin")
	admin.POST("/session", h.Admin.CreateSession)
	admin.Group("admin-stats", "").
		Use(adminAuth).
		GET("/lead-stats", h.Admin.LeadStats)

	return []*DomainGroup{owners, employees, plans, fica, applications, eligibility, dashboard, leads, admin}
}
