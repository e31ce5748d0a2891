package service

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/mock"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/workers"
	"github.com/MKhiriev/go-trip-keeper/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errProbe = errors.New("no route to host")

type stubProber struct{}

func (stubProber) Probe(context.Context) error { return errProbe }

// testClient bundles the client core over a real SQLite store and a mocked
// backend. The observer starts offline; tests flip it with SetOnline.
type testClient struct {
	adapter  *mock.MockServerAdapter
	storages *store.ClientStorages
	state    *ClientState
	conn     *workers.ConnectivityObserver

	trips        *clientTripService
	vehicles     *clientVehicleService
	tripVehicles *clientTripVehicleService
	sync         *clientSyncService
}

func newTestClient(t *testing.T, ctrl *gomock.Controller) *testClient {
	t.Helper()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")
	storages, err := store.NewClientStorages(ctx, config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	adp := mock.NewMockServerAdapter(ctrl)
	adp.EXPECT().Token().Return("jwt").AnyTimes()

	conn := workers.NewConnectivityObserver(ctx, stubProber{}, time.Hour, time.Second, logger.Nop())
	state := NewClientState()
	cfg := config.ClientWorkers{SyncTimeout: 5 * time.Second, MaxRetries: config.DefaultMaxRetries}

	return &testClient{
		adapter:      adp,
		storages:     storages,
		state:        state,
		conn:         conn,
		trips:        NewClientTripService(adp, storages.Queue, storages.Cache, state, conn, logger.Nop()).(*clientTripService),
		vehicles:     NewClientVehicleService(adp, storages.Queue, storages.Cache, state, conn, logger.Nop()).(*clientVehicleService),
		tripVehicles: NewClientTripVehicleService(adp, storages.Queue, storages.Cache, state, conn, logger.Nop()).(*clientTripVehicleService),
		sync:         NewClientSyncService(storages.Queue, storages.Cache, adp, state, cfg, logger.Nop()).(*clientSyncService),
	}
}

func (c *testClient) queued(t *testing.T) []models.PendingOperation {
	t.Helper()
	ops, err := c.storages.Queue.ReadAll(context.Background())
	require.NoError(t, err)
	return ops
}

func (c *testClient) cached(t *testing.T) models.CacheSnapshot {
	t.Helper()
	snapshot, err := c.storages.Cache.Load(context.Background())
	require.NoError(t, err)
	return snapshot
}

func queuedAt(seq int64, op models.PendingOperation) models.PendingOperation {
	op.Seq = seq
	return op
}

func seqs(ops []models.PendingOperation) []int64 {
	out := make([]int64, 0, len(ops))
	for _, op := range ops {
		out = append(out, op.Seq)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

// updateWith serves a mocked PendingQueue.Update over stored and records the
// written list in written.
func updateWith(stored []models.PendingOperation, written *[]models.PendingOperation) func(context.Context, func([]models.PendingOperation) []models.PendingOperation) ([]models.PendingOperation, error) {
	return func(_ context.Context, fn func([]models.PendingOperation) []models.PendingOperation) ([]models.PendingOperation, error) {
		*written = fn(slices.Clone(stored))
		return *written, nil
	}
}
