// Command seed bootstraps a fresh database: it creates the administrator
// account, registers the demo partners and assigns login ids to every
// partner still lacking one. Running it again changes nothing.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/nearmate-api/internal/adapter"
	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/service"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/models"
)

type demoPartner struct {
	phone string
	data  models.RegistrationData
}

var demoPartners = []demoPartner{
	{phone: "9990001111", data: models.RegistrationData{Name: "John Doe", Email: "john@example.com"}},
	{phone: "9990002222", data: models.RegistrationData{Name: "Jane Roe", Email: "jane@example.com"}},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewLoggerForEnv("nearmate-seed", cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	ctx = log.WithContext(ctx)

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer storages.Close()

	// no codes are sent while seeding
	services, err := service.NewServices(storages, adapter.NewLogSender(log), *cfg, models.AppBuildInfo{}, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	return seed(ctx, services.AccountService, cfg.Seed, log)
}

func seed(ctx context.Context, accounts service.AccountService, cfg config.Seed, log *logger.Logger) error {
	admin, created, err := accounts.BootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrapping admin failed: %w", err)
	}
	log.Info().Str("email", admin.Email).Bool("created", created).Msg("admin ready")

	for _, p := range demoPartners {
		data := p.data
		partner, created, err := accounts.FindOrCreate(ctx, p.phone, models.ActorPartner, &data)
		if err != nil {
			return fmt.Errorf("seeding partner %s failed: %w", p.data.Name, err)
		}
		log.Info().Str("id", partner.ID).Str("login_id", partner.LoginID).Bool("created", created).Msg("partner ready")
	}

	updated, err := accounts.BackfillLoginIDs(ctx)
	if err != nil {
		return fmt.Errorf("login id backfill failed after %d partners: %w", updated, err)
	}
	log.Info().Int("updated", updated).Msg("login id backfill finished")

	return nil
}
