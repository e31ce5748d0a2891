package service

import (
	"context"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/workers"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// ClientServices is the composition root of the client core. It owns the
// shared [ClientState].
type ClientServices struct {
	State *ClientState

	AuthService        ClientAuthService
	AccountService     ClientAccountService
	TripService        ClientTripService
	VehicleService     ClientVehicleService
	TripVehicleService ClientTripVehicleService
	SyncService        ClientSyncService

	// SyncJob starts sync cycles on connectivity transitions and remote
	// changes. It implements workers.Worker.
	SyncJob workers.Worker
}

// NewClientServices wires the client services over one shared state. feed may
// be nil, in which case remote changes are only picked up by the next cycle.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, feed adapter.ChangeFeed,
	conn Connectivity, cfg config.ClientWorkers, logger *logger.Logger) *ClientServices {
	state := NewClientState()
	guard := NewLocalDataGuard(storages.Sessions, storages.Queue, storages.Cache, state, logger)
	auth := NewClientAuthService(serverAdapter, storages.Sessions, guard, logger)
	syncService := NewClientSyncService(storages.Queue, storages.Cache, serverAdapter, state, cfg, logger)

	// every session start syncs the queue and pulls the user's data
	auth.OnAuthStateChange(func(event models.AuthEvent, _ models.Session) {
		if event == models.AuthEventSignedIn || event == models.AuthEventRestored {
			syncService.Trigger(context.Background())
		}
	})

	return &ClientServices{
		State:              state,
		AuthService:        auth,
		AccountService:     NewClientAccountService(serverAdapter, auth, storages.Queue, storages.Cache, state, logger),
		TripService:        NewClientTripService(serverAdapter, storages.Queue, storages.Cache, state, conn, logger),
		VehicleService:     NewClientVehicleService(serverAdapter, storages.Queue, storages.Cache, state, conn, logger),
		TripVehicleService: NewClientTripVehicleService(serverAdapter, storages.Queue, storages.Cache, state, conn, logger),
		SyncService:        syncService,
		SyncJob:            NewClientSyncJob(syncService, conn, feed, serverAdapter, logger),
	}
}

// LoadCache fills the state from the local cache and the queue counters. A
// partly unreadable cache is reported but what was readable is loaded.
func LoadCache(ctx context.Context, storages *store.ClientStorages, state *ClientState, logger *logger.Logger) {
	snapshot, err := storages.Cache.Load(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("cache partly unreadable")
	}
	state.SetSnapshot(snapshot)

	ops, err := storages.Queue.ReadAll(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("pending queue unreadable")
		return
	}
	setQueueCounters(state, ops)
}
