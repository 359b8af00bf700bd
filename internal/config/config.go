// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// nearmate-api service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version and deployment environment.
	App App `envPrefix:"APP_"`

	// Auth holds token signing material, token lifetimes, password hashing
	// cost and one-time-code settings.
	Auth Auth `envPrefix:"AUTH_"`

	// Storage holds configuration for the relational database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds configuration for outbound one-time-code delivery.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Seed holds the bootstrap administrator credentials used by cmd/seed.
	Seed Seed `envPrefix:"SEED_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// Env is the deployment environment name ("development", "production").
	// Env: APP_ENV
	Env string `env:"ENV"`
}

// IsProduction reports whether the service runs in the production environment.
func (a App) IsProduction() bool {
	return a.Env == EnvProduction
}

// Auth holds everything the credential verifier, the token issuer and the
// one-time-code manager need.
type Auth struct {
	// JWTPrivateKey is an inline PEM-encoded RSA private key. Literal "\n"
	// sequences are accepted in place of newlines.
	// Env: AUTH_JWT_PRIVATE_KEY
	JWTPrivateKey string `env:"JWT_PRIVATE_KEY"`

	// JWTPrivateKeyPath is consulted when JWTPrivateKey is empty.
	// Env: AUTH_JWT_PRIVATE_KEY_PATH
	JWTPrivateKeyPath string `env:"JWT_PRIVATE_KEY_PATH"`

	// JWTPublicKey is an inline PEM-encoded RSA public key used for bearer
	// token verification.
	// Env: AUTH_JWT_PUBLIC_KEY
	JWTPublicKey string `env:"JWT_PUBLIC_KEY"`

	// JWTPublicKeyPath is consulted when JWTPublicKey is empty.
	// Env: AUTH_JWT_PUBLIC_KEY_PATH
	JWTPublicKeyPath string `env:"JWT_PUBLIC_KEY_PATH"`

	// TokenIssuer is the optional "iss" claim of issued tokens.
	// Env: AUTH_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenTTL defaults to one hour.
	// Env: AUTH_ACCESS_TOKEN_TTL
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"`

	// RefreshTokenTTL defaults to thirty days.
	// Env: AUTH_REFRESH_TOKEN_TTL
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL"`

	// BcryptCost is used when hashing new passwords.
	// Env: AUTH_BCRYPT_COST
	BcryptCost int `env:"BCRYPT_COST"`

	// OTPTTL is the lifetime of a one-time code.
	// Env: AUTH_OTP_TTL
	OTPTTL time.Duration `env:"OTP_TTL"`

	// OTPHashKey keys the HMAC under which one-time codes are stored.
	// Env: AUTH_OTP_HASH_KEY
	OTPHashKey string `env:"OTP_HASH_KEY"`

	// ExposeOTP echoes freshly generated codes in the request-otp response.
	// Development only; rejected when App.Env is "production".
	// Env: AUTH_EXPOSE_OTP
	ExposeOTP bool `env:"EXPOSE_OTP"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects the driver as well: "postgres://" / "postgresql://" URLs
	// open PostgreSQL, "file:" / "sqlite://" DSNs open SQLite.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health endpoint. Empty
	// disables the gRPC server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds configuration for outbound one-time-code delivery.
type Adapter struct {
	// OTPDelivery is one of "log", "sms" or "kafka".
	// Env: ADAPTER_OTP_DELIVERY
	OTPDelivery string `env:"OTP_DELIVERY"`

	SMS   SMS   `envPrefix:"SMS_"`
	Kafka Kafka `envPrefix:"KAFKA_"`
}

// SMS holds SMS gateway settings.
type SMS struct {
	// Env: ADAPTER_SMS_BASE_URL
	BaseURL string `env:"BASE_URL"`
	// Env: ADAPTER_SMS_API_KEY
	APIKey string `env:"API_KEY"`
	// Env: ADAPTER_SMS_SENDER
	Sender string `env:"SENDER"`
	// Env: ADAPTER_SMS_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// Kafka holds the broker list and topic OTP delivery events are published to.
type Kafka struct {
	// Env: ADAPTER_KAFKA_BROKERS (comma separated)
	Brokers []string `env:"BROKERS" envSeparator:","`
	// Env: ADAPTER_KAFKA_TOPIC
	Topic string `env:"TOPIC"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// OTPSweepInterval is the period of the expired-code sweep. Zero disables
	// the worker.
	// Env: WORKERS_OTP_SWEEP_INTERVAL
	OTPSweepInterval time.Duration `env:"OTP_SWEEP_INTERVAL"`
}

// Seed holds the administrator account created by cmd/seed.
type Seed struct {
	// Env: SEED_ADMIN_EMAIL
	AdminEmail string `env:"ADMIN_EMAIL"`
	// Env: SEED_ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied to every field still unset after merging.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
