package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrUnauthorized is the parent of every authentication failure.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidCredentials       = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrInvalidOrExpiredOTP      = fmt.Errorf("%w: invalid or expired otp", ErrUnauthorized)
	ErrAccountNotFound          = fmt.Errorf("%w: account not found", ErrUnauthorized)
	ErrRegistrationDataRequired = fmt.Errorf("%w: user data required for registration", ErrUnauthorized)
	ErrTokenIsExpiredOrInvalid  = fmt.Errorf("%w: token is expired or invalid", ErrUnauthorized)

	// ErrConfiguration marks failures caused by server-side settings rather
	// than by the caller.
	ErrConfiguration    = errors.New("server configuration error")
	ErrKeyNotConfigured = fmt.Errorf("%w: signing key not configured", ErrConfiguration)

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrOTPDeliveryFailed       = errors.New("otp delivery failed")
	ErrLoginIDAllocationFailed = errors.New("could not allocate a unique login id")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)
