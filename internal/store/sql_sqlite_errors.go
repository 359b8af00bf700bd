package store

import "github.com/mattn/go-sqlite3"

// SQLiteErrorClassifier implements [ErrorClassificator] for SQLite. A busy or
// locked database file is worth another attempt, everything else is not.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	liteErr := sqliteError(err)
	if liteErr == nil {
		return NonRetryable
	}

	switch liteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	default:
		return NonRetryable
	}
}
