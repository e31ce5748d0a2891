package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/workers"
	"github.com/MKhiriev/go-trip-keeper/models"
)

const (
	// pendingRetryInterval re-triggers a sync while online and operations
	// are still queued.
	pendingRetryInterval = time.Minute
	// feedRetryInterval is the pause before reopening an ended change feed.
	feedRetryInterval = 5 * time.Second
)

var refreshTables = []models.ChangeTable{models.ChangeTrips, models.ChangeVehicles, models.ChangeTripVehicles}

type clientSyncJob struct {
	syncService  ClientSyncService
	connectivity Connectivity
	feed         adapter.ChangeFeed
	tokens       interface{ Token() string }
	logger       *logger.Logger

	retryInterval time.Duration
	feedRetry     time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates the worker that starts sync cycles: on every
// offline to online transition, on change feed events for trips and vehicles,
// and periodically while operations are queued. feed may be nil. The job is
// idle until Run is called.
func NewClientSyncJob(syncService ClientSyncService, connectivity Connectivity, feed adapter.ChangeFeed,
	tokens interface{ Token() string }, logger *logger.Logger) workers.Worker {
	return &clientSyncJob{
		syncService:   syncService,
		connectivity:  connectivity,
		feed:          feed,
		tokens:        tokens,
		logger:        logger.WithComponent("sync-job"),
		retryInterval: pendingRetryInterval,
		feedRetry:     feedRetryInterval,
	}
}

// Run implements workers.Worker. It stops any previously running job first.
func (j *clientSyncJob) Run() {
	j.Stop()

	j.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.mu.Unlock()

	transitions, unsubscribe := j.connectivity.Subscribe()

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()
		defer unsubscribe()
		j.watchConnectivity(ctx, transitions)
	}()

	if j.feed != nil {
		j.wg.Add(1)
		go func() {
			defer j.wg.Done()
			j.watchFeed(ctx)
		}()
	}
}

// Stop implements workers.Worker. It blocks until the job goroutines and the
// sync cycles they started have returned.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
	j.syncService.Wait()
}

func (j *clientSyncJob) watchConnectivity(ctx context.Context, transitions <-chan bool) {
	t := time.NewTicker(j.retryInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case online, ok := <-transitions:
			if !ok {
				return
			}
			if online {
				j.logger.Info().Msg("back online, starting sync")
				j.syncService.Trigger(ctx)
			}
		case <-t.C:
			if j.connectivity.Online() && j.syncService.Status().Pending > 0 {
				j.syncService.Trigger(ctx)
			}
		}
	}
}

func (j *clientSyncJob) watchFeed(ctx context.Context) {
	sub := models.ChangeSubscription{Tables: refreshTables}

	for {
		if token := j.tokens.Token(); token != "" && j.connectivity.Online() {
			events, err := j.feed.Subscribe(ctx, token, sub)
			if err != nil {
				j.logger.Debug().Err(err).Msg("change feed unavailable")
			} else {
				j.consume(ctx, events)
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(j.feedRetry):
		}
	}
}

func (j *clientSyncJob) consume(ctx context.Context, events <-chan models.ChangeEvent) {
	for event := range events {
		j.logger.Debug().Str("table", string(event.Table)).Str("action", string(event.Action)).
			Str("record_id", event.RecordID).Msg("remote change")
		j.syncService.Trigger(ctx)
	}
}
