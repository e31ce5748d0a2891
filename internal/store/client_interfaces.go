package store

import (
	"context"

	"github.com/MKhiriev/go-trip-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalCache keeps the last-known trips and vehicles for offline reads.
type LocalCache interface {
	// Save overwrites both collections.
	Save(ctx context.Context, trips []models.Trip, vehicles []models.Vehicle) error
	// Load always returns a usable snapshot. Missing keys yield empty slices;
	// malformed keys are discarded and reported through the error.
	Load(ctx context.Context) (models.CacheSnapshot, error)
}

// PendingQueue stages mutations that could not reach the backend.
type PendingQueue interface {
	// Enqueue assigns the next sequence number, appends op and persists the
	// whole list. The stored operation is returned.
	Enqueue(ctx context.Context, op models.PendingOperation) (models.PendingOperation, error)
	ReadAll(ctx context.Context) ([]models.PendingOperation, error)
	Replace(ctx context.Context, ops []models.PendingOperation) error
	// Update rewrites the list with fn under the queue lock, so no Enqueue
	// lands between the read and the write. The written list is returned.
	Update(ctx context.Context, fn func(ops []models.PendingOperation) []models.PendingOperation) ([]models.PendingOperation, error)
}

// SessionStore persists the signed-in session between client runs.
type SessionStore interface {
	SaveSession(ctx context.Context, session models.Session) error
	// LoadSession returns [ErrNoSession] when nothing is stored.
	LoadSession(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error

	// LoadOwner returns the id of the user the cache and queue belong to,
	// 0 when none was recorded.
	LoadOwner(ctx context.Context) (int64, error)
	SaveOwner(ctx context.Context, userID int64) error
}
