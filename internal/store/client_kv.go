package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
)

// Keys of the client key-value table.
const (
	keyCacheTrips    = "cache.trips"
	keyCacheVehicles = "cache.vehicles"
	keyQueuePending  = "queue.pending"
	keyQueueSeq      = "queue.seq"
	keyAuthSession   = "auth.session"
	keyAuthOwner     = "auth.owner"
)

const (
	getKV    = `SELECT value FROM kv WHERE key = ?;`
	upsertKV = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`
	deleteKV = `DELETE FROM kv WHERE key = ?;`
)

type kvPair struct {
	key   string
	value string
}

// kvStore is the string key-value table every client store is built on.
type kvStore struct {
	*DB
}

// get returns the value of key and whether it exists.
func (s *kvStore) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, getKV, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "kvStore.get").
			Str("key", key).
			Msg("failed to read key")
		return "", false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return value, true, nil
}

// set writes all pairs in one transaction.
func (s *kvStore) set(ctx context.Context, pairs ...kvPair) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, p := range pairs {
			if _, err := tx.ExecContext(ctx, upsertKV, p.key, p.value); err != nil {
				return fmt.Errorf("%w: key %s: %w", ErrExecutingStatement, p.key, err)
			}
		}
		return nil
	})
}

func (s *kvStore) delete(ctx context.Context, keys ...string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, deleteKV, key); err != nil {
				return fmt.Errorf("%w: key %s: %w", ErrExecutingStatement, key, err)
			}
		}
		return nil
	})
}

func (s *kvStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "kvStore.inTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		log.Err(err).Str("func", "kvStore.inTx").Msg("failed to write keys")
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "kvStore.inTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
