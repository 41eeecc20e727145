package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/RobertWLight/BSC/internal/infrastructure/config"
	"github.com/RobertWLight/BSC/internal/infrastructure/logger"
	"github.com/RobertWLight/BSC/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: ./config.toml if present)")
	flag.Parse()

	// A missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.LoadFile(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting BSC enrollment API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize server", zap.Error(err))
	}

	runErr := app.Run(ctx)
	if err := app.Close(context.Background()); err != nil {
		log.Error("Error releasing resources", zap.Error(err))
	}
	if runErr != nil {
		log.Error("Server stopped with error", zap.Error(runErr))
		_ = logger.Sync(log)
		os.Exit(1)
	}
}
