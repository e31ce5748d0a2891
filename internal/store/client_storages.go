package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
)

// ClientStorages groups the client-side stores. All of them share one SQLite
// file holding a single key-value table.
type ClientStorages struct {
	Cache    LocalCache
	Queue    PendingQueue
	Sessions SessionStore

	db *DB
}

// NewClientStorages opens (creating if needed) the SQLite file named by
// cfg.DB.DSN, applies the client migrations and wires the stores.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Cache:    NewLocalCache(db, logger),
		Queue:    NewPendingQueue(db, logger),
		Sessions: NewSessionStore(db, logger),
		db:       db,
	}, nil
}

// Close releases the SQLite file.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
