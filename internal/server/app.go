// Package server wires configuration, persistence and the HTTP stack into a
// runnable enrollment API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RobertWLight/BSC/internal/application/admin"
	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	applead "github.com/RobertWLight/BSC/internal/application/lead"
	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/RobertWLight/BSC/internal/infrastructure/auth"
	"github.com/RobertWLight/BSC/internal/infrastructure/cache"
	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/RobertWLight/BSC/internal/infrastructure/logger"
	"github.com/RobertWLight/BSC/internal/infrastructure/metrics"
	"github.com/RobertWLight/BSC/internal/infrastructure/persistence"
	"github.com/RobertWLight/BSC/internal/infrastructure/report"
	"github.com/RobertWLight/BSC/internal/infrastructure/storage"
	"github.com/RobertWLight/BSC/internal/infrastructure/telemetry"
	"github.com/RobertWLight/BSC/internal/interfaces/http/handler"
	"github.com/RobertWLight/BSC/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Version is reported by the health endpoint
var Version = "dev"

// App is a fully wired server
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *persistence.Database
	engine  *gin.Engine
	metrics *metrics.Metrics
	tokens  *auth.AdminTokenService
	archive storage.Archive

	closers []func(context.Context) error
}

// New opens the database and builds every service and handler. Callers
// release the result with Close.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (_ *App, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	app := &App{cfg: cfg, log: log}
	defer func() {
		if err != nil {
			_ = app.Close(context.Background())
		}
	}()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	app.onClose(tp.Shutdown)

	if err := app.openDatabase(); err != nil {
		return nil, err
	}

	ownerRepo := persistence.NewGormBusinessOwnerRepository(app.db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(app.db.DB)
	planRepo := persistence.NewGormBenefitPlanRepository(app.db.DB)
	calcRepo := persistence.NewGormFicaCalculationRepository(app.db.DB)
	appRepo := persistence.NewGormApplicationRepository(app.db.DB)
	leadRepo := persistence.NewGormLeadRepository(app.db.DB)

	planCache, closeCache := cache.NewPlanCatalogCache(ctx, cfg.Redis, log)
	app.onClose(func(context.Context) error { return closeCache() })

	app.archive, err = storage.NewDocumentArchive(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("init document archive: %w", err)
	}

	aggregator, err := lead.NewAggregator(cfg.Leads.StatsTimezone)
	if err != nil {
		return nil, err
	}

	app.tokens, err = auth.NewAdminTokenService(cfg.Admin)
	if err != nil {
		return nil, fmt.Errorf("init admin tokens: %w", err)
	}
	if cfg.Admin.TokenSecret == "" {
		log.Warn("admin.token_secret is empty, sessions will not survive a restart")
	}

	planOpts := []appenrollment.BenefitPlanServiceOption{
		appenrollment.WithPlanCatalogCache(planCache),
		appenrollment.WithPlanLogger(log),
	}
	ficaOpts := []appenrollment.FicaServiceOption{appenrollment.WithFicaLogger(log)}
	appOpts := []appenrollment.ApplicationServiceOption{
		appenrollment.WithSummaryRenderer(report.NewPDFRenderer()),
		appenrollment.WithDocumentArchive(app.archive),
		appenrollment.WithApplicationLogger(log),
	}
	leadOpts := []applead.Option{applead.WithLogger(log)}
	if cfg.Telemetry.MetricsEnabled {
		app.metrics = metrics.New()
		ficaOpts = append(ficaOpts, appenrollment.WithFicaRecorder(app.metrics))
		appOpts = append(appOpts, appenrollment.WithApplicationRecorder(app.metrics))
		leadOpts = append(leadOpts, applead.WithRecorder(app.metrics))
	}

	calculator := enrollment.NewFicaCalculator(
		decimal.NewFromFloat(cfg.Fica.Rate),
		decimal.NewFromFloat(cfg.Fica.SavingsRate),
	)

	planService := appenrollment.NewBenefitPlanService(planRepo, planOpts...)
	if _, err := planService.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seed benefit plans: %w", err)
	}
	leadService := applead.NewLeadService(leadRepo, aggregator, leadOpts...)

	handlers := router.Handlers{
		Owners:    handler.NewBusinessOwnerHandler(appenrollment.NewBusinessOwnerService(ownerRepo)),
		Employees: handler.NewEmployeeHandler(appenrollment.NewEmployeeService(ownerRepo, employeeRepo)),
		Plans:     handler.NewBenefitPlanHandler(planService),
		Fica: handler.NewFicaHandler(appenrollment.NewFicaService(
			ownerRepo, employeeRepo, planRepo, calcRepo, calculator, ficaOpts...,
		)),
		Applications: handler.NewApplicationHandler(appenrollment.NewApplicationService(
			ownerRepo, employeeRepo, planRepo, calcRepo, appRepo, appOpts...,
		)),
		Eligibility: handler.NewEligibilityHandler(appenrollment.NewEligibilityService(ownerRepo, employeeRepo)),
		Dashboard:   handler.NewDashboardHandler(appenrollment.NewDashboardService(ownerRepo, employeeRepo, calcRepo, appRepo)),
		Leads:       handler.NewLeadHandler(leadService),
		Admin:       handler.NewAdminHandler(admin.NewStaticPINAuthenticator(cfg.Admin.PIN), app.tokens, leadService),
		Health:      handler.NewHealthHandler(app.db, cfg.App.Name, Version),
	}

	engine, stop := router.NewEngine(router.EngineConfig{
		HTTP:      cfg.HTTP,
		Telemetry: cfg.Telemetry,
		Logger:    log,
		Metrics:   app.metrics,
		Verifier:  app.tokens,
		Handlers:  handlers,
	})
	app.onClose(func(context.Context) error { stop(); return nil })
	app.engine = engine

	return app, nil
}

// openDatabase connects, installs tracing and creates the sqlite schema.
// Postgres schemas are owned by the migrate command.
func (a *App) openDatabase() error {
	gormLog := logger.NewGormLogger(a.log, logger.MapGormLogLevel(a.cfg.Log.Level), a.cfg.Database.SlowQueryThresh)
	db, err := persistence.NewDatabaseWithCustomLogger(&a.cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	a.db = db
	a.onClose(func(context.Context) error { return db.Close() })

	dbSystem := "postgresql"
	if db.Driver == "sqlite" {
		dbSystem = "sqlite"
	}
	tracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         a.cfg.Telemetry.Enabled,
		SlowQueryThresh: a.cfg.Database.SlowQueryThresh,
		DBSystem:        dbSystem,
	}, a.log)
	if err := tracing.Register(db.DB); err != nil {
		return fmt.Errorf("register database tracing: %w", err)
	}

	if db.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			return fmt.Errorf("migrate sqlite schema: %w", err)
		}
	}
	a.log.Info("Database connected", zap.String("driver", db.Driver))
	return nil
}

func (a *App) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// Handler returns the root HTTP handler
func (a *App) Handler() http.Handler {
	return a.engine
}

// Tokens returns the admin session issuer
func (a *App) Tokens() *auth.AdminTokenService {
	return a.tokens
}

// Archive returns the document archive summaries are stored in
func (a *App) Archive() storage.Archive {
	return a.archive
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// within cfg.HTTP.ShutdownTimeout
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           ":" + a.cfg.App.Port,
		Handler:        a.engine,
		ReadTimeout:    a.cfg.HTTP.ReadTimeout,
		WriteTimeout:   a.cfg.HTTP.WriteTimeout,
		IdleTimeout:    a.cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: a.cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")
	timeout := a.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.log.Info("Server exited gracefully")
	return nil
}

// Close releases resources in reverse order of acquisition
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
