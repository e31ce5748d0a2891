package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/migrations"
)

// DB is a database handle shared by repositories. The server wraps a
// PostgreSQL connection, the client a SQLite file.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	dialect            migrations.Dialect
}

// Migrate applies the embedded migrations of the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}

// retryable reports whether err is worth retrying according to the
// connection's error classificator.
func (db *DB) retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// wrapError wraps err with base and marks transient failures with
// [ErrTemporary].
func (db *DB) wrapError(base, err error) error {
	if db.retryable(err) {
		return fmt.Errorf("%w: %w: %w", base, ErrTemporary, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and scans every row with scan. It never returns a nil
// slice on success.
func queryAll[T any](ctx context.Context, db *DB, funcName, query string, args []any, scan func(rowScanner) (T, error)) ([]T, error) {
	log := logger.FromContext(ctx)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, db.wrapError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]T, 0, 16)
	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, item)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return results, nil
}
