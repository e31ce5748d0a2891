package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type clientSyncService struct {
	queue   store.PendingQueue
	cache   store.LocalCache
	adapter adapter.ServerAdapter
	state   *ClientState

	timeout    time.Duration
	maxRetries int
	now        func() time.Time

	logger *logger.Logger

	mu      sync.Mutex
	running bool
	rerun   bool

	wg sync.WaitGroup
}

// NewClientSyncService builds the sync orchestrator. A zero timeout falls back
// to [config.DefaultSyncTimeout]; maxRetries <= 0 disables the retry cap.
func NewClientSyncService(queue store.PendingQueue, cache store.LocalCache, serverAdapter adapter.ServerAdapter,
	state *ClientState, cfg config.ClientWorkers, logger *logger.Logger) ClientSyncService {
	timeout := cfg.SyncTimeout
	if timeout <= 0 {
		timeout = config.DefaultSyncTimeout
	}

	return &clientSyncService{
		queue:      queue,
		cache:      cache,
		adapter:    serverAdapter,
		state:      state,
		timeout:    timeout,
		maxRetries: cfg.MaxRetries,
		now:        time.Now,
		logger:     logger.WithComponent("sync"),
	}
}

func (s *clientSyncService) RunCycle(ctx context.Context) error {
	if s.adapter.Token() == "" {
		return ErrNoSession
	}

	s.mu.Lock()
	if s.running {
		s.rerun = true
		s.mu.Unlock()
		return ErrSyncInProgress
	}
	s.running = true
	s.mu.Unlock()

	s.state.UpdateSyncStatus(func(st *models.SyncStatus) {
		st.Foreground = true
		st.Background = false
	})

	// The cycle is not cancelled by the caller: the timeout only stops
	// waiting for it. One trace id ties its requests together server side.
	workCtx := utils.WithTraceID(context.WithoutCancel(ctx), utils.NewTraceID())
	done := make(chan error, 1)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		done <- s.cycle(workCtx)
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		s.settle(err)
		return err
	case <-timer.C:
		s.logger.Info().Dur("timeout", s.timeout).Msg("sync continues in background")
	case <-ctx.Done():
		s.logger.Info().Err(ctx.Err()).Msg("sync caller gone, continuing in background")
	}

	s.state.UpdateSyncStatus(func(st *models.SyncStatus) {
		st.Foreground = false
		st.Background = true
	})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := <-done
		if err != nil {
			s.logger.Warn().Err(err).Msg("background sync finished with errors")
		}
		s.settle(err)
	}()

	return nil
}

func (s *clientSyncService) Trigger(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.RunCycle(context.WithoutCancel(ctx))
		if err != nil && !errors.Is(err, ErrSyncInProgress) && !errors.Is(err, ErrNoSession) {
			s.logger.Warn().Err(err).Msg("triggered sync failed")
		}
	}()
}

func (s *clientSyncService) Status() models.SyncStatus {
	return s.state.SyncStatus()
}

func (s *clientSyncService) FailedOperations(ctx context.Context) ([]models.PendingOperation, error) {
	ops, err := s.queue.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueueUnreadable, err)
	}

	failed := make([]models.PendingOperation, 0)
	for _, op := range ops {
		if op.Failed() {
			failed = append(failed, op)
		}
	}
	return failed, nil
}

func (s *clientSyncService) RetryFailed(ctx context.Context) (int, error) {
	// Update would drop a corrupted list; report it instead
	if _, err := s.queue.ReadAll(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrQueueUnreadable, err)
	}

	reset := 0
	ops, err := s.queue.Update(ctx, func(ops []models.PendingOperation) []models.PendingOperation {
		for i := range ops {
			if ops[i].Failed() {
				ops[i].Status = models.OperationPending
				ops[i].Retries = 0
				reset++
			}
		}
		return ops
	})
	if err != nil {
		return 0, err
	}

	s.updateQueueCounters(ops)
	return reset, nil
}

func (s *clientSyncService) Wait() {
	s.wg.Wait()
}

// settle ends a cycle: both phases go back to false and a coalesced rerun,
// if any, starts afterwards.
func (s *clientSyncService) settle(err error) {
	s.state.UpdateSyncStatus(func(st *models.SyncStatus) {
		st.Foreground = false
		st.Background = false
		st.LastRunAt = s.now().UTC()
		st.LastError = ""
		if err != nil {
			st.LastError = err.Error()
		}
	})

	s.mu.Lock()
	s.running = false
	rerun := s.rerun
	s.rerun = false
	s.mu.Unlock()

	if rerun {
		s.Trigger(context.Background())
	}
}

// cycle flushes the queue and refreshes both collections. The refresh runs
// even when the flush failed.
func (s *clientSyncService) cycle(ctx context.Context) error {
	log := s.logger

	var (
		flushErr  error
		remaining []models.PendingOperation
	)
	ops, err := s.queue.ReadAll(ctx)
	switch {
	case err != nil:
		// a corrupted queue is left alone, Enqueue resets it
		log.Warn().Err(err).Msg("pending queue unreadable, flush skipped")
		flushErr = fmt.Errorf("%w: %w", ErrQueueUnreadable, err)
	case len(ops) > 0:
		lastSeq := ops[len(ops)-1].Seq
		var rewrites []idRewrite
		remaining, rewrites, flushErr = s.flush(ctx, ops)
		if remaining, err = s.persistQueue(ctx, remaining, rewrites, lastSeq); err != nil {
			flushErr = errors.Join(flushErr, err)
		}
	default:
		s.updateQueueCounters(nil)
	}

	if err = s.refresh(ctx, remaining); err != nil {
		return errors.Join(flushErr, err)
	}
	return flushErr
}

// idRewrite records a placeholder replaced by the server id of its insert.
type idRewrite struct {
	trip  bool
	oldID string
	newID string
}

func (r idRewrite) apply(ops []models.PendingOperation) {
	for i := range ops {
		ops[i].RewriteID(r.trip, r.oldID, r.newID)
	}
}

// flush replays ops in FIFO order and returns the operations to keep along
// with the placeholders it reconciled. It stops at the first failure; failed
// operations are skipped.
func (s *clientSyncService) flush(ctx context.Context, ops []models.PendingOperation) ([]models.PendingOperation, []idRewrite, error) {
	remaining := make([]models.PendingOperation, 0, len(ops))
	var (
		rewrites []idRewrite
		stopErr  error
	)

	for i := range ops {
		op := ops[i]
		if op.Failed() || stopErr != nil {
			remaining = append(remaining, op)
			continue
		}

		rewrite, err := s.apply(ctx, op)
		if err == nil {
			if rewrite.newID != "" {
				rewrite.apply(ops[i+1:])
				rewrites = append(rewrites, rewrite)
			}
			continue
		}

		op.Retries++
		op.LastError = err.Error()
		if s.maxRetries > 0 && op.Retries >= s.maxRetries {
			op.Status = models.OperationFailed
			s.markDependentsFailed(op, ops[i+1:])
			if op.Kind == models.OpVehicleInsert || op.Kind == models.OpVehicleUpdate {
				s.state.SetVehicleSyncStatus(op.EntityID, models.SyncStatusError)
			}
			s.logger.Warn().Err(err).Int64("seq", op.Seq).Str("kind", string(op.Kind)).
				Int("retries", op.Retries).Msg("pending operation reached retry cap")
		} else {
			s.logger.Debug().Err(err).Int64("seq", op.Seq).Str("kind", string(op.Kind)).Msg("pending operation failed")
		}

		stopErr = fmt.Errorf("replay %s #%d: %w", op.Kind, op.Seq, err)
		remaining = append(remaining, op)
	}

	return remaining, rewrites, stopErr
}

// apply sends one operation. A reconciled insert rewrites its placeholder in
// the state and reports the rewrite for the queue.
func (s *clientSyncService) apply(ctx context.Context, op models.PendingOperation) (idRewrite, error) {
	switch op.Kind {
	case models.OpTripInsert:
		created, err := s.adapter.CreateTrip(ctx, op.Trip.Clone())
		if err != nil {
			return idRewrite{}, err
		}
		s.state.ReplaceTripID(op.EntityID, created.ID)
		return idRewrite{trip: true, oldID: op.EntityID, newID: created.ID}, nil

	case models.OpTripUpdate:
		if _, err := s.adapter.UpdateTrip(ctx, op.EntityID, *op.TripUpdate); err != nil {
			return idRewrite{}, err
		}

	case models.OpTripDelete:
		if err := s.adapter.DeleteTrip(ctx, op.EntityID); err != nil {
			return idRewrite{}, err
		}

	case models.OpVehicleInsert:
		created, err := s.adapter.CreateVehicle(ctx, op.Vehicle.Clone())
		if err != nil {
			return idRewrite{}, err
		}
		s.state.ReplaceVehicleID(op.EntityID, created.ID)
		return idRewrite{oldID: op.EntityID, newID: created.ID}, nil

	case models.OpVehicleUpdate:
		if _, err := s.adapter.UpdateVehicle(ctx, op.EntityID, *op.VehicleUpdate); err != nil {
			return idRewrite{}, err
		}
		s.state.SetVehicleSyncStatus(op.EntityID, models.SyncStatusSynced)

	case models.OpVehicleDelete:
		if err := s.adapter.DeleteVehicle(ctx, op.EntityID); err != nil {
			return idRewrite{}, err
		}

	default:
		return idRewrite{}, fmt.Errorf("%w: unknown kind %q", models.ErrMalformedOperation, op.Kind)
	}
	return idRewrite{}, nil
}

// markDependentsFailed fails later operations on the entity of a failed
// insert; they can never succeed.
func (s *clientSyncService) markDependentsFailed(op models.PendingOperation, later []models.PendingOperation) {
	if !op.IsInsert() {
		return
	}
	for i := range later {
		if later[i].IsTrip() == op.IsTrip() && later[i].EntityID == op.EntityID && !later[i].Failed() {
			later[i].Status = models.OperationFailed
			later[i].LastError = fmt.Sprintf("insert #%d failed", op.Seq)
		}
	}
}

// persistQueue writes the remainder in one locked step. Operations enqueued
// while the flush was running (seq above lastSeq) are appended with the
// placeholders of this pass rewritten, and fail along with a failed insert
// they depend on.
func (s *clientSyncService) persistQueue(ctx context.Context, remaining []models.PendingOperation, rewrites []idRewrite, lastSeq int64) ([]models.PendingOperation, error) {
	written, err := s.queue.Update(ctx, func(current []models.PendingOperation) []models.PendingOperation {
		late := make([]models.PendingOperation, 0)
		for _, op := range current {
			if op.Seq > lastSeq {
				late = append(late, op)
			}
		}
		for _, r := range rewrites {
			r.apply(late)
		}
		for _, op := range remaining {
			if op.Failed() {
				s.markDependentsFailed(op, late)
			}
		}
		return append(slices.Clone(remaining), late...)
	})
	if err != nil {
		s.logger.Err(err).Msg("failed to persist pending queue")
		return remaining, fmt.Errorf("persist pending queue: %w", err)
	}

	s.updateQueueCounters(written)
	return written, nil
}

func (s *clientSyncService) updateQueueCounters(ops []models.PendingOperation) {
	setQueueCounters(s.state, ops)
}

func setQueueCounters(state *ClientState, ops []models.PendingOperation) {
	pending, failed := 0, 0
	for _, op := range ops {
		if op.Failed() {
			failed++
		} else {
			pending++
		}
	}
	state.UpdateSyncStatus(func(st *models.SyncStatus) {
		st.Pending = pending
		st.FailedItems = failed
	})
}

// refresh overwrites trips and vehicles with the backend state. Entities that
// still carry a placeholder are kept: their insert is queued.
func (s *clientSyncService) refresh(ctx context.Context, queued []models.PendingOperation) error {
	trips, err := s.adapter.ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("refresh trips: %w", err)
	}
	vehicles, err := s.adapter.ListVehicles(ctx)
	if err != nil {
		return fmt.Errorf("refresh vehicles: %w", err)
	}

	snapshot := mergeWithLocal(trips, vehicles, s.state.Snapshot(), queuedVehicleStatus(queued))
	s.state.SetSnapshot(snapshot)

	if err = s.cache.Save(ctx, snapshot.Trips, snapshot.Vehicles); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save cache after refresh")
	}
	return nil
}

// queuedVehicleStatus tags vehicles that still have queued changes.
func queuedVehicleStatus(ops []models.PendingOperation) map[string]models.VehicleSyncStatus {
	status := make(map[string]models.VehicleSyncStatus)
	for _, op := range ops {
		if op.IsTrip() {
			continue
		}
		if op.Failed() {
			status[op.EntityID] = models.SyncStatusError
		} else if _, seen := status[op.EntityID]; !seen {
			status[op.EntityID] = models.SyncStatusPending
		}
	}
	return status
}

// mergeWithLocal builds the new snapshot from server data plus local
// placeholders. Server vehicles are synced unless changes are still queued.
func mergeWithLocal(trips []models.Trip, vehicles []models.Vehicle, local models.CacheSnapshot, queued map[string]models.VehicleSyncStatus) models.CacheSnapshot {
	return models.CacheSnapshot{
		Trips:    mergeTrips(trips, local.Trips),
		Vehicles: mergeVehicles(vehicles, local.Vehicles, queued),
	}
}

func mergeTrips(trips, local []models.Trip) []models.Trip {
	out := make([]models.Trip, 0, len(trips))
	for _, t := range local {
		if models.IsLocalID(t.ID) {
			out = append(out, t)
		}
	}
	for _, t := range trips {
		if t.VehicleIDs == nil {
			t.VehicleIDs = []string{}
		}
		out = append(out, t)
	}
	return out
}

func mergeVehicles(vehicles, local []models.Vehicle, queued map[string]models.VehicleSyncStatus) []models.Vehicle {
	out := make([]models.Vehicle, 0, len(vehicles))
	for _, v := range local {
		if models.IsLocalID(v.ID) {
			out = append(out, v)
		}
	}
	for _, v := range vehicles {
		v.SyncStatus = models.SyncStatusSynced
		if status, ok := queued[v.ID]; ok {
			v.SyncStatus = status
		}
		out = append(out, v)
	}
	return out
}
