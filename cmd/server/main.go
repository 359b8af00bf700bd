package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/nearmate-api/internal/adapter"
	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/handler"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/server"
	"github.com/MKhiriev/nearmate-api/internal/service"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/internal/workers"
	"github.com/MKhiriev/nearmate-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	build := buildInfo()
	printBuildInfo(build)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewLoggerForEnv("nearmate-server", cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	sender, err := adapter.NewOTPSender(cfg.Adapter, log)
	if err != nil {
		return fmt.Errorf("error creating otp sender: %w", err)
	}
	defer sender.Close()

	services, err := service.NewServices(storages, sender, *cfg, build, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	// refuse to start with signing keys that cannot issue or verify tokens
	if err = services.TokenService.CheckKeys(ctx); err != nil {
		return fmt.Errorf("token keys check failed: %w", err)
	}

	handlers, err := handler.NewHandlers(services, storages, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	bg := workers.NewWorkers(services.OTPService, cfg.Workers, log)
	bg.Run(ctx)

	err = srv.RunServer(ctx)

	stop()
	bg.Wait()

	return err
}

func buildInfo() models.AppBuildInfo {
	return models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.Date)
	fmt.Printf("Build commit: %s\n", build.Commit)
}
