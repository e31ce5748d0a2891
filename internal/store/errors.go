package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a sign-up or e-mail change hits
	// the unique constraint on users.email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when no user matches the lookup.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTripNotFound is returned when a trip does not exist or belongs to
	// another user.
	ErrTripNotFound = errors.New("trip was not found")

	// ErrVehicleNotFound is returned when a vehicle does not exist or belongs
	// to another user.
	ErrVehicleNotFound = errors.New("vehicle was not found")

	// ErrSegmentNotFound is returned when an odometer segment does not exist
	// or belongs to another user.
	ErrSegmentNotFound = errors.New("odometer segment was not found")

	// ErrSegmentClosed is returned when finishing a segment that already has
	// an end reading.
	ErrSegmentClosed = errors.New("odometer segment is already finished")

	// ErrInvalidReference is returned when a row points at a trip or vehicle
	// that does not exist (foreign key violation).
	ErrInvalidReference = errors.New("referenced trip or vehicle does not exist")

	// ErrPhotoNotFound is returned when a photo object is missing.
	ErrPhotoNotFound = errors.New("photo was not found")

	// ErrTemporary wraps database errors classified as retryable.
	ErrTemporary = errors.New("temporary database failure")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingValue is returned when a value cannot be serialized for
	// storage.
	ErrEncodingValue = errors.New("failed to encode value")
)

// Client store errors.
var (
	// ErrCorruptedValue is returned (wrapped with the key) when a persisted
	// value cannot be decoded. The value is discarded by the caller.
	ErrCorruptedValue = errors.New("corrupted stored value")

	// ErrNoSession is returned when no auth session is stored locally.
	ErrNoSession = errors.New("no stored session")
)

// ErrInvalidValue is returned when the database rejects a value through a
// check constraint, e.g. an odometer end reading below the start.
var ErrInvalidValue = errors.New("value rejected by constraint")
