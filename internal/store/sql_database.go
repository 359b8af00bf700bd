package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/utils"
	"github.com/MKhiriev/nearmate-api/migrations"
)

// generateID assigns primary keys to rows created without one.
var generateID = utils.NewUUIDGenerator().Generate

// Dialect names the SQL backend a [DB] talks to. The values double as the
// database/sql driver names and the goose dialect names.
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

// DB wraps a *sql.DB together with the query builder and error classifier
// matching its dialect.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, classifier ErrorClassificator, log *logger.Logger) *DB {
	var placeholders sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholders = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholders),
		errorClassificator: classifier,
		logger:             log,
	}
}

// NewConnectDB opens the database named by cfg.DSN. PostgreSQL URLs and
// keyword DSNs go through pgx, "file:" and "sqlite://" DSNs through
// go-sqlite3.
func NewConnectDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dialect, err := dialectFromDSN(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectDB").Msg("cannot pick database driver")
		return nil, err
	}

	switch dialect {
	case DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

func dialectFromDSN(dsn string) (Dialect, error) {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"),
		strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "host="):
		return DialectPostgres, nil
	case strings.HasPrefix(lower, "file:"),
		strings.HasPrefix(lower, "sqlite://"),
		strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"):
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
	}
}

// redactDSN keeps the scheme only so credentials never reach the logs.
func redactDSN(dsn string) string {
	if scheme, _, ok := strings.Cut(dsn, "://"); ok {
		return scheme + "://..."
	}
	return "..."
}

// Migrate applies the embedded schema migrations for the connection dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// classify wraps retryable driver errors with [ErrTransientFailure] so that
// callers can decide on a retry with errors.Is.
func (db *DB) classify(err error) error {
	if err == nil {
		return nil
	}
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrTransientFailure, err)
	}
	return err
}

// IsRetryable reports whether err was classified as transient by a repository.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransientFailure)
}
