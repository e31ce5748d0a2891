package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// clientEntities holds what the trip, vehicle and link services share: the
// choice between the direct backend path and the queue-and-cache path.
type clientEntities struct {
	adapter adapter.ServerAdapter
	queue   store.PendingQueue
	cache   store.LocalCache
	state   *ClientState
	conn    Connectivity

	now    func() time.Time
	logger *logger.Logger
}

func newClientEntities(serverAdapter adapter.ServerAdapter, queue store.PendingQueue, cache store.LocalCache,
	state *ClientState, conn Connectivity, logger *logger.Logger) *clientEntities {
	return &clientEntities{
		adapter: serverAdapter,
		queue:   queue,
		cache:   cache,
		state:   state,
		conn:    conn,
		now:     time.Now,
		logger:  logger,
	}
}

// online reports whether mutations can go to the backend directly.
func (e *clientEntities) online() bool {
	return e.adapter.Token() != "" && e.conn.Online()
}

// direct reports whether an operation on id can skip the queue. Entities
// that still carry a placeholder have their insert queued, so everything
// touching them is queued behind it.
func (e *clientEntities) direct(id string) bool {
	return e.online() && !models.IsLocalID(id)
}

// enqueue stages op and bumps the pending counter.
func (e *clientEntities) enqueue(ctx context.Context, op models.PendingOperation) error {
	op.EnqueuedAt = e.now().UTC()
	stored, err := e.queue.Enqueue(ctx, op)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", op.Kind, err)
	}

	e.logger.Debug().Int64("seq", stored.Seq).Str("kind", string(stored.Kind)).
		Str("entity_id", stored.EntityID).Msg("operation queued")
	e.state.UpdateSyncStatus(func(st *models.SyncStatus) { st.Pending++ })
	return nil
}

// persist writes the current state to the cache. A failed write only costs
// the offline copy, so it is logged and ignored.
func (e *clientEntities) persist(ctx context.Context) {
	snapshot := e.state.Snapshot()
	if err := e.cache.Save(ctx, snapshot.Trips, snapshot.Vehicles); err != nil {
		e.logger.Warn().Err(err).Msg("failed to save cache")
	}
}

// queuedStatus returns the sync status of vehicles with queued changes. An
// unreadable queue yields an empty map.
func (e *clientEntities) queuedStatus(ctx context.Context) map[string]models.VehicleSyncStatus {
	ops, err := e.queue.ReadAll(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("pending queue unreadable")
		return map[string]models.VehicleSyncStatus{}
	}
	return queuedVehicleStatus(ops)
}

// unreachable reports whether a read failed without a backend answer, in
// which case the local copy is served instead.
func unreachable(err error) bool {
	return errors.Is(err, adapter.ErrTransport) || errors.Is(err, adapter.ErrUnavailable) ||
		errors.Is(err, adapter.ErrBadGateway)
}
