package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type localCache struct {
	kv     *kvStore
	logger *logger.Logger
}

// NewLocalCache returns a [LocalCache] stored in the client key-value table
// under "cache.trips" and "cache.vehicles".
func NewLocalCache(db *DB, logger *logger.Logger) LocalCache {
	return &localCache{
		kv:     &kvStore{DB: db},
		logger: logger,
	}
}

// Save serializes both collections and overwrites them in one transaction.
// nil slices are stored as empty arrays.
func (c *localCache) Save(ctx context.Context, trips []models.Trip, vehicles []models.Vehicle) error {
	if trips == nil {
		trips = []models.Trip{}
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	tripsJSON, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("%w: trips: %w", ErrEncodingValue, err)
	}
	vehiclesJSON, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("%w: vehicles: %w", ErrEncodingValue, err)
	}

	return c.kv.set(ctx,
		kvPair{key: keyCacheTrips, value: string(tripsJSON)},
		kvPair{key: keyCacheVehicles, value: string(vehiclesJSON)},
	)
}

// Load reads both collections. The snapshot is usable whatever the error:
// a key that is missing, unreadable or not a JSON array yields an empty slice.
func (c *localCache) Load(ctx context.Context) (models.CacheSnapshot, error) {
	trips, tripsErr := loadArray[models.Trip](ctx, c.kv, keyCacheTrips)
	vehicles, vehiclesErr := loadArray[models.Vehicle](ctx, c.kv, keyCacheVehicles)

	err := errors.Join(tripsErr, vehiclesErr)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "localCache.Load").
			Msg("discarded unreadable cache keys")
	}

	return models.CacheSnapshot{Trips: trips, Vehicles: vehicles}, err
}

// loadArray decodes the JSON array stored under key. It never returns nil.
func loadArray[T any](ctx context.Context, kv *kvStore, key string) ([]T, error) {
	raw, ok, err := kv.get(ctx, key)
	if err != nil {
		return []T{}, err
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []T{}, fmt.Errorf("%w: %s: %w", ErrCorruptedValue, key, err)
	}
	if items == nil {
		// "null" is not an array
		return []T{}, fmt.Errorf("%w: %s: not an array", ErrCorruptedValue, key)
	}
	return items, nil
}
