package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/nearmate-api/internal/config"
	"github.com/MKhiriev/nearmate-api/internal/logger"
)

// Storages bundles the repositories sharing one connection pool.
type Storages struct {
	UserRepository    UserRepository
	OTPRepository     OTPRepository
	AccountRepository AccountRepository

	db *DB
}

// NewStorages connects to the configured database, brings the schema up to
// date and constructs every repository.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		_ = db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB wires repositories over an already opened connection.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		OTPRepository:     NewOTPRepository(db, log),
		AccountRepository: NewAccountRepository(db, log),
		db:                db,
	}
}

// Ping checks that the database still answers.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storages) Close() error {
	return s.db.Close()
}
