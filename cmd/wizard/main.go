// Command wizard drives the enrollment wizard and the admin dashboard
// against a running API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/RobertWLight/BSC/internal/application/admin"
	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/RobertWLight/BSC/internal/application/wizard"
	"github.com/RobertWLight/BSC/internal/domain/lead"
	"github.com/RobertWLight/BSC/internal/infrastructure/client"
	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/RobertWLight/BSC/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var (
		configPath   string
		scenarioPath string
		pin          string
		logLevel     string
		fresh        bool
	)

	flag.StringVar(&configPath, "config", "", "Path to a config file (default: ./config.toml if present)")
	flag.StringVar(&scenarioPath, "scenario", "scenario.toml", "Scenario file for the enroll command")
	flag.StringVar(&pin, "pin", "", "Admin PIN for the stats command")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&fresh, "fresh", false, "Forget the stored business owner before enrolling")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	_ = godotenv.Load()
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	api, err := client.New(cfg.Client, client.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch args[0] {
	case "enroll":
		err = enroll(ctx, api, cfg, scenarioPath, fresh, log)
	case "stats":
		err = stats(ctx, api, cfg, pin, log)
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = logger.Sync(log)
		os.Exit(1)
	}
}

func enroll(ctx context.Context, api *client.Client, cfg *config.Config, scenarioPath string, fresh bool, log *zap.Logger) error {
	sc, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	var store wizard.SessionStore
	if cfg.Client.SessionFile != "" {
		store = wizard.NewFileSessionStore(cfg.Client.SessionFile)
	}
	session, err := wizard.NewSession(store, log)
	if err != nil {
		return err
	}
	if fresh {
		if err := session.Clear(); err != nil {
			return err
		}
	}

	ctrl := wizard.NewController(api, session, wizard.WithLogger(log))
	if err := ctrl.Start(ctx); err != nil {
		log.Warn("Wizard started with load errors", zap.Error(err))
	}

	step := func(err error) error {
		if err != nil {
			return fmt.Errorf("%s: %w", ctrl.Step(), err)
		}
		return nil
	}

	if err := step(ctrl.SubmitBusinessInfo(ctx, sc.Business.form())); err != nil {
		return err
	}
	fmt.Printf("Business owner: %s\n", ctrl.State().Owner.BusinessName)

	for _, e := range sc.Employees {
		if err := step(ctrl.AddEmployee(ctx, e.form())); err != nil {
			return err
		}
	}
	fmt.Printf("Employees on roster: %d\n", len(ctrl.State().Employees))
	if err := step(ctrl.ContinueFromEmployees(ctx)); err != nil {
		return err
	}

	if id := findPlan(ctrl.HealthPlans(), sc.HealthPlan); id != nil {
		if err := step(ctrl.SelectHealthPlan(ctx, id)); err != nil {
			return err
		}
	}
	if id := findPlan(ctrl.LifePlans(), sc.LifePlan); id != nil {
		if err := step(ctrl.SelectLifePlan(ctx, id)); err != nil {
			return err
		}
	}
	if fica := ctrl.State().Fica; fica != nil {
		fmt.Printf("Projected FICA savings: %s  Benefit cost: %s  Net: %s\n",
			fica.ProjectedFicaSavings.StringFixed(2),
			fica.TotalBenefitCost.StringFixed(2),
			fica.NetSavings.StringFixed(2),
		)
	}
	if err := step(ctrl.ContinueFromBenefits(ctx)); err != nil {
		return err
	}

	if e := ctrl.State().Eligibility; e != nil {
		fmt.Printf("Eligible: %t\n", e.Eligible)
		for _, reason := range e.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
	}
	if err := step(ctrl.SubmitApplication(ctx, sc.AcceptTerms)); err != nil {
		return err
	}

	app := ctrl.State().Application
	fmt.Printf("Application %s is %s\n", app.ID, app.Status)
	return nil
}

// findPlan resolves a plan by name or plan type
func findPlan(plans []appenrollment.BenefitPlanResponse, want string) *uuid.UUID {
	if want == "" {
		return nil
	}
	for i := range plans {
		if plans[i].Name == want || plans[i].PlanType == want {
			id := plans[i].ID
			return &id
		}
	}
	return nil
}

func stats(ctx context.Context, api *client.Client, cfg *config.Config, pin string, log *zap.Logger) error {
	gate := admin.NewGate(api)
	gate.SetInput(pin)
	if !gate.CanSubmit() {
		return fmt.Errorf("a %d digit PIN is required", admin.PINLength)
	}
	if _, err := gate.Submit(ctx); err != nil {
		return err
	}
	if msg := gate.Error(); msg != "" {
		return fmt.Errorf("%s", msg)
	}

	aggregator, err := lead.NewAggregator(cfg.Leads.StatsTimezone)
	if err != nil {
		return err
	}
	s, err := admin.NewDashboard(gate, api, aggregator, log).Load(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Total leads: %d\nToday: %d\nThis week: %d\nThis month: %d\n",
		s.TotalLeads, s.TodayLeads, s.ThisWeekLeads, s.ThisMonthLeads)
	fmt.Println("Top industries:")
	for _, c := range s.TopIndustries {
		fmt.Printf("  %-30s %d\n", c.Label, c.Count)
	}
	fmt.Println("Company sizes:")
	for _, c := range s.SizeDistribution {
		fmt.Printf("  %-30s %d\n", c.Label, c.Count)
	}
	return nil
}

func printUsage() {
	fmt.Println(`Usage: wizard [flags] <command>

Commands:
  enroll    Run the enrollment wizard from a scenario file
  stats     Show lead statistics (requires -pin)

Flags:`)
	flag.PrintDefaults()
}
