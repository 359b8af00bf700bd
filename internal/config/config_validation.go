// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Key material is not
// checked here; the token service resolves keys lazily and is probed once by
// cmd/server.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 || cfg.Auth.OTPTTL <= 0 {
		return fmt.Errorf("%w: token and code lifetimes must be positive", ErrInvalidAuthConfigs)
	}

	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAuthConfigs, cfg.Auth.BcryptCost)
	}

	if cfg.Auth.ExposeOTP && cfg.App.IsProduction() {
		return fmt.Errorf("%w: AUTH_EXPOSE_OTP must not be enabled in production", ErrInvalidAuthConfigs)
	}

	// an unkeyed HMAC over a six-digit code is reversible by enumeration
	if cfg.Auth.OTPHashKey == "" && cfg.App.IsProduction() {
		return fmt.Errorf("%w: AUTH_OTP_HASH_KEY is required in production", ErrInvalidAuthConfigs)
	}

	switch cfg.Adapter.OTPDelivery {
	case DeliveryLog:
	case DeliverySMS:
		if cfg.Adapter.SMS.BaseURL == "" {
			return fmt.Errorf("%w: sms delivery requires a base url", ErrInvalidAdapterConfigs)
		}
	case DeliveryKafka:
		if len(cfg.Adapter.Kafka.Brokers) == 0 || cfg.Adapter.Kafka.Topic == "" {
			return fmt.Errorf("%w: kafka delivery requires brokers and a topic", ErrInvalidAdapterConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown otp delivery %q", ErrInvalidAdapterConfigs, cfg.Adapter.OTPDelivery)
	}

	if cfg.Workers.OTPSweepInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
