// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the nearmate-api binaries.
//
// Every entry is a JSON line carrying the emitting binary ("role"), a
// timestamp and the calling function. Request handlers and services pick up
// the request-scoped logger with [FromContext] or [FromRequest]; the HTTP
// middleware stores one carrying the trace id.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger struct {
	zerolog.Logger
}

// envLevels lists the deployment environments that log above Debug.
var envLevels = map[string]zerolog.Level{
	"production": zerolog.InfoLevel,
	"staging":    zerolog.InfoLevel,
	"test":       zerolog.WarnLevel,
}

// NewLogger returns a Debug level JSON logger writing to stdout. role names
// the binary, e.g. "nearmate-server".
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role, zerolog.DebugLevel)
}

// NewLoggerForEnv is [NewLogger] with the level picked from env. Unknown
// environments log everything.
func NewLoggerForEnv(role, env string) *Logger {
	level, ok := envLevels[env]
	if !ok {
		level = zerolog.DebugLevel
	}
	return newLogger(os.Stdout, role, level)
}

func newLogger(w io.Writer, role string, level zerolog.Level) *Logger {
	zerolog.SetGlobalLevel(level)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(w).With().Str("role", role).Timestamp().Caller().Logger()}
}

// WithField returns a child logger carrying an extra string field.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// FromRequest is [FromContext] applied to r.Context().
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx with WithContext. Without
// one zerolog falls back to its default logger, so the result is never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
