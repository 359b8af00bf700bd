package service

import (
	"fmt"

	"github.com/MKhiriev/nearmate-api/internal/adapter"
	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/store"
	"github.com/MKhiriev/nearmate-api/models"
)

type Services struct {
	AuthService    AuthService
	TokenService   TokenService
	OTPService     OTPService
	LoginIDService LoginIDService
	AccountService AccountService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, sender adapter.OTPSender, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	loginIDService := NewLoginIDService(storages.AccountRepository, logger)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg.Auth, logger),
		TokenService:   NewTokenService(cfg.Auth, logger),
		OTPService:     NewOTPService(storages.OTPRepository, sender, cfg.Auth, logger),
		LoginIDService: loginIDService,
		AccountService: NewAccountService(storages.AccountRepository, storages.UserRepository, loginIDService, cfg.Auth, logger),
		AppInfoService: appInfoService,
	}, nil
}
