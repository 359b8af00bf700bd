package config

import "time"

// Deployment environments recognised by [App.Env].
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// One-time-code delivery channels recognised by [Adapter.OTPDelivery].
const (
	DeliveryLog   = "log"
	DeliverySMS   = "sms"
	DeliveryKafka = "kafka"
)

const (
	defaultVersion         = "dev"
	defaultHTTPAddress     = "localhost:8080"
	defaultRequestTimeout  = 30 * time.Second
	defaultAccessTokenTTL  = time.Hour
	defaultRefreshTokenTTL = 30 * 24 * time.Hour
	defaultBcryptCost      = 10
	defaultOTPTTL          = 5 * time.Minute
	defaultSMSTimeout      = 10 * time.Second
	defaultAdminEmail      = "admin@nearmate.local"
	defaultAdminPassword   = "admin123"
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}
	if cfg.App.Env == "" {
		cfg.App.Env = EnvDevelopment
	}

	if cfg.Auth.AccessTokenTTL == 0 {
		cfg.Auth.AccessTokenTTL = defaultAccessTokenTTL
	}
	if cfg.Auth.RefreshTokenTTL == 0 {
		cfg.Auth.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	if cfg.Auth.OTPTTL == 0 {
		cfg.Auth.OTPTTL = defaultOTPTTL
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}

	if cfg.Adapter.OTPDelivery == "" {
		cfg.Adapter.OTPDelivery = DeliveryLog
	}
	if cfg.Adapter.SMS.Timeout == 0 {
		cfg.Adapter.SMS.Timeout = defaultSMSTimeout
	}

	if cfg.Seed.AdminEmail == "" {
		cfg.Seed.AdminEmail = defaultAdminEmail
	}
	if cfg.Seed.AdminPassword == "" {
		cfg.Seed.AdminPassword = defaultAdminPassword
	}
}
