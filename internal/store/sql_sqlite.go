package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
)

// NewConnectSQLite opens a file-backed SQLite database, creating the file on
// first use. It serves local development and tests.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn, path := sqliteDSN(cfg.DSN)

	// db will be in file
	if path != "" {
		if err := createLocalDBFileIfNotExists(path); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file: %w", err)
		}
	}

	conn, err := sql.Open(string(DialectSQLite), dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// sqlite serializes writers anyway
	conn.SetMaxOpenConns(1)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		_ = conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, DialectSQLite, NewSQLiteErrorClassifier(), log), nil
}

// sqliteDSN normalizes a "sqlite://" DSN into the "file:" form go-sqlite3
// expects and returns the file path behind it (empty for in-memory DBs).
func sqliteDSN(dsn string) (string, string) {
	if rest, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		dsn = "file:" + rest
	}

	path := strings.TrimPrefix(dsn, "file:")
	path, _, _ = strings.Cut(path, "?")
	if path == "" || path == ":memory:" {
		return dsn, ""
	}

	return dsn, path
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}

func sqliteError(err error) *sqlite3.Error {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return &liteErr
	}
	return nil
}

// isSQLiteUniqueViolation matches "UNIQUE constraint failed: <table>.<column>".
func isSQLiteUniqueViolation(err error, table, column string) bool {
	liteErr := sqliteError(err)
	if liteErr == nil || liteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return false
	}
	return strings.Contains(liteErr.Error(), table+"."+column)
}

// isUniqueViolation reports whether err is a unique-key conflict on
// table.column in either supported backend.
func isUniqueViolation(err error, table, column string) bool {
	return isPostgresUniqueViolation(err, table, column) || isSQLiteUniqueViolation(err, table, column)
}
