// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// nearmate-api handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials covers both an unknown email and a wrong password.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgInvalidOrExpiredOTP covers wrong, expired, already used and
	// wrongly scoped codes alike.
	MsgInvalidOrExpiredOTP = "Invalid or expired OTP"

	// MsgUnauthorized is the generic answer for every other authentication
	// failure.
	MsgUnauthorized = "Unauthorized"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is missing,
	// expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	MsgNotFound = "not found"

	// MsgForbidden is returned when a valid token lacks the role a route
	// requires.
	MsgForbidden = "Forbidden"

	MsgAccountNotFound          = "Account not found with this mobile number"
	MsgRegistrationDataRequired = "Account not found and no user data provided for registration"

	// MsgOTPDeliveryFailed is returned when the delivery channel rejected a
	// freshly generated code.
	MsgOTPDeliveryFailed = "could not deliver OTP, please retry"

	MsgServiceUnavailable = "service temporarily unavailable"

	// MsgConflict is returned when a phone number, email or login id is
	// already taken.
	MsgConflict = "resource already exists"

	// MsgLoginIDAllocationFailed is returned when no free partner login id
	// could be reserved after several attempts.
	MsgLoginIDAllocationFailed = "could not allocate a login id, please retry"
)

// Success messages of the auth endpoints.
const (
	MsgOTPSent             = "OTP sent successfully"
	MsgRegistrationSuccess = "Registration successful"
	MsgLoginSuccess        = "Login successful"
	MsgExpiredOTPsCleared  = "Expired OTPs cleared successfully"
	MsgPhoneRegistered     = "Phone number is already registered"
	MsgPhoneAvailable      = "Phone number is available for registration"
)
