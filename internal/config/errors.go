package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an empty database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates unusable authentication settings
	// (non-positive token lifetimes, out-of-range bcrypt cost, or a dev-only
	// flag enabled in production).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidAdapterConfigs indicates an unknown delivery channel or a
	// channel missing its endpoint settings.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWorkerConfigs indicates a negative sweep interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
