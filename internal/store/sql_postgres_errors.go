package store

import (
	"github.com/jackc/pgerrcode"
)

type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier treats lost connections, serialization failures,
// deadlocks and a server that is starting up or shutting down as transient.
// Constraint violations are never retried here; repositories translate them
// into their own sentinels.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	pgErr := postgresError(err)
	if pgErr == nil {
		return NonRetryable
	}

	switch code := pgErr.Code; {
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		code == pgerrcode.CannotConnectNow,
		code == pgerrcode.AdminShutdown:
		return Retryable
	default:
		return NonRetryable
	}
}
