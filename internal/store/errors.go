package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user with the same email is
	// already stored.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrPhoneAlreadyExists is returned when an end user or partner with the
	// same phone number is already stored.
	ErrPhoneAlreadyExists = errors.New("phone number already exists")

	// ErrLoginIDTaken is returned when another partner already holds the
	// login id being written.
	ErrLoginIDTaken = errors.New("login id already taken")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrAccountNotFound is returned when no end user or partner matches.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrOTPNotFound is returned when no pending one-time code matched a
	// consume attempt, including when a concurrent attempt won the race.
	ErrOTPNotFound = errors.New("no pending one-time code matched")

	// ErrTransientFailure wraps driver errors classified as [Retryable].
	ErrTransientFailure = errors.New("transient database failure")

	// ErrUnsupportedDSN is returned when the DSN names no supported backend.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration
	// fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
