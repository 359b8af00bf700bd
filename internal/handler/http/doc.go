// Package http serves the authentication REST API.
//
// Public routes cover password login for administrators and the one-time
// code flows for end users and partners. The code listing and cleanup routes
// need an administrator bearer token. Every request gets a trace id and an
// access log line; failures are rendered as {statusCode, message}.
package http
