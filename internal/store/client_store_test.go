package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClientStorages(t *testing.T) (*ClientStorages, string) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "nested", "client.db")
	storages, err := NewClientStorages(context.Background(), config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	return storages, dsn
}

func reopen(t *testing.T, dsn string) *ClientStorages {
	t.Helper()

	storages, err := NewClientStorages(context.Background(), config.ClientStorage{DB: config.ClientDB{DSN: dsn}}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })
	return storages
}

func sampleTrips() []models.Trip {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return []models.Trip{
		{
			ID:          "srv-1",
			Name:        "Beach",
			DepartureAt: "2026-03-01T09:30:00Z",
			Origin:      &models.Location{Lat: -23.55, Lng: -46.63, Label: "São Paulo"},
			Destination: &models.Location{Lat: -23.96, Lng: -46.33},
			Status:      models.TripStatusOngoing,
			VehicleIDs:  []string{"veh-1"},
			CreatedAt:   created,
			UpdatedAt:   created,
		},
		{
			ID:         "local-2b8a",
			Name:       "Mountains",
			Status:     models.TripStatusCompleted,
			VehicleIDs: []string{},
			Notes:      "snow chains",
			CreatedAt:  created.Add(time.Hour),
			UpdatedAt:  created.Add(2 * time.Hour),
		},
	}
}

func sampleVehicles() []models.Vehicle {
	photo := "vehicles/1/photo.jpg"
	created := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	return []models.Vehicle{
		{
			ID:           "veh-1",
			Nickname:     "Blue van",
			LicensePlate: "ABC1D23",
			Make:         "Fiat",
			Model:        "Doblò",
			Year:         2019,
			FuelTypes:    []models.FuelType{models.FuelEthanol, models.FuelGasoline},
			Active:       true,
			PhotoPath:    &photo,
			SyncStatus:   models.SyncStatusSynced,
			CreatedAt:    created,
			UpdatedAt:    created,
		},
	}
}

func TestLocalCache_RoundTripAcrossRestart(t *testing.T) {
	ctx := context.Background()
	storages, dsn := newTestClientStorages(t)

	trips, vehicles := sampleTrips(), sampleVehicles()
	require.NoError(t, storages.Cache.Save(ctx, trips, vehicles))
	require.NoError(t, storages.Close())

	snapshot, err := reopen(t, dsn).Cache.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, trips, snapshot.Trips)
	assert.Equal(t, vehicles, snapshot.Vehicles)
}

func TestLocalCache_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	require.NoError(t, storages.Cache.Save(ctx, sampleTrips(), sampleVehicles()))
	require.NoError(t, storages.Cache.Save(ctx, sampleTrips()[:1], nil))

	snapshot, err := storages.Cache.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot.Trips, 1)
	assert.NotNil(t, snapshot.Vehicles)
	assert.Empty(t, snapshot.Vehicles)
}

func TestLocalCache_LoadMissingKeys(t *testing.T) {
	storages, _ := newTestClientStorages(t)

	snapshot, err := storages.Cache.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snapshot.Trips)
	assert.NotNil(t, snapshot.Vehicles)
	assert.Empty(t, snapshot.Trips)
	assert.Empty(t, snapshot.Vehicles)
}

func TestLocalCache_LoadCorruptedKeys(t *testing.T) {
	tests := []struct {
		name     string
		trips    string
		vehicles string
	}{
		{name: "not json", trips: "{{{", vehicles: "[]"},
		{name: "object instead of array", trips: `{"id":"srv-1"}`, vehicles: "[]"},
		{name: "null", trips: "null", vehicles: "[]"},
		{name: "wrong element type", trips: "[1,2,3]", vehicles: `"van"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			storages, _ := newTestClientStorages(t)

			kv := &kvStore{DB: storages.db}
			require.NoError(t, kv.set(ctx,
				kvPair{key: keyCacheTrips, value: tt.trips},
				kvPair{key: keyCacheVehicles, value: tt.vehicles},
			))

			var snapshot models.CacheSnapshot
			var err error
			require.NotPanics(t, func() { snapshot, err = storages.Cache.Load(ctx) })

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptedValue))
			assert.Equal(t, []models.Trip{}, snapshot.Trips)
			assert.NotNil(t, snapshot.Vehicles)
		})
	}
}

func TestLocalCache_PartiallyCorrupted(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	require.NoError(t, storages.Cache.Save(ctx, sampleTrips(), sampleVehicles()))
	kv := &kvStore{DB: storages.db}
	require.NoError(t, kv.set(ctx, kvPair{key: keyCacheVehicles, value: "garbage"}))

	snapshot, err := storages.Cache.Load(ctx)
	require.ErrorIs(t, err, ErrCorruptedValue)
	assert.Equal(t, sampleTrips(), snapshot.Trips)
	assert.Empty(t, snapshot.Vehicles)
}

func TestPendingQueue_EnqueueAssignsSeqInFIFOOrder(t *testing.T) {
	ctx := context.Background()
	storages, dsn := newTestClientStorages(t)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	storages.Queue.(*pendingQueue).now = func() time.Time { return now }

	name := "Beach"
	ops := []models.PendingOperation{
		models.NewTripInsert(models.Trip{ID: "local-1", Name: name}),
		models.NewVehicleUpdate("veh-1", models.VehicleUpdate{Nickname: &name}),
		models.NewTripUpdate("local-1", models.TripUpdate{Name: &name}),
		models.NewTripUpdate("local-1", models.TripUpdate{Name: &name}),
		models.NewVehicleDelete("veh-2"),
	}
	for i, op := range ops {
		stored, err := storages.Queue.Enqueue(ctx, op)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), stored.Seq)
		assert.Equal(t, models.OperationPending, stored.Status)
		assert.Equal(t, now, stored.EnqueuedAt)
	}
	require.NoError(t, storages.Close())

	got, err := reopen(t, dsn).Queue.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(ops))
	for i := range got {
		assert.Equal(t, int64(i+1), got[i].Seq)
		assert.Equal(t, ops[i].Kind, got[i].Kind)
		assert.Equal(t, ops[i].EntityID, got[i].EntityID)
	}
	// identical updates are kept twice
	assert.Equal(t, got[2].TripUpdate, got[3].TripUpdate)
}

func TestPendingQueue_SeqSurvivesReplace(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	for range 3 {
		_, err := storages.Queue.Enqueue(ctx, models.NewTripDelete("srv-1"))
		require.NoError(t, err)
	}
	require.NoError(t, storages.Queue.Replace(ctx, nil))

	op, err := storages.Queue.Enqueue(ctx, models.NewTripDelete("srv-2"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), op.Seq)

	all, err := storages.Queue.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "srv-2", all[0].EntityID)
}

func TestPendingQueue_ReplaceKeepsGivenOrder(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	var stored []models.PendingOperation
	for _, id := range []string{"a", "b", "c", "d"} {
		op, err := storages.Queue.Enqueue(ctx, models.NewTripDelete(id))
		require.NoError(t, err)
		stored = append(stored, op)
	}

	require.NoError(t, storages.Queue.Replace(ctx, stored[2:]))

	got, err := storages.Queue.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored[2:], got)
}

func TestPendingQueue_UpdateKeepsConcurrentEnqueue(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	_, err := storages.Queue.Enqueue(ctx, models.NewTripDelete("a"))
	require.NoError(t, err)

	enqueued := make(chan struct{})
	written, err := storages.Queue.Update(ctx, func(ops []models.PendingOperation) []models.PendingOperation {
		// blocked on the queue lock until Update has written
		go func() {
			defer close(enqueued)
			_, err := storages.Queue.Enqueue(ctx, models.NewTripDelete("b"))
			assert.NoError(t, err)
		}()
		require.Len(t, ops, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, written)

	<-enqueued
	all, err := storages.Queue.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].EntityID)
	assert.Equal(t, int64(2), all[0].Seq)
}

func TestPendingQueue_UpdateCorruptedList(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	kv := &kvStore{DB: storages.db}
	require.NoError(t, kv.set(ctx, kvPair{key: keyQueuePending, value: "{}"}))

	written, err := storages.Queue.Update(ctx, func(ops []models.PendingOperation) []models.PendingOperation {
		assert.Empty(t, ops)
		return append(ops, models.PendingOperation{Seq: 3, Kind: models.OpTripDelete, EntityID: "t1"})
	})
	require.NoError(t, err)
	require.Len(t, written, 1)

	all, err := storages.Queue.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, written, all)
}

func TestPendingQueue_EnqueueRejectsMalformed(t *testing.T) {
	storages, _ := newTestClientStorages(t)

	_, err := storages.Queue.Enqueue(context.Background(), models.PendingOperation{Kind: models.OpTripInsert, EntityID: "local-1"})
	require.ErrorIs(t, err, models.ErrMalformedOperation)

	all, err := storages.Queue.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPendingQueue_CorruptedList(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	kv := &kvStore{DB: storages.db}
	require.NoError(t, kv.set(ctx,
		kvPair{key: keyQueuePending, value: "[{broken"},
		kvPair{key: keyQueueSeq, value: "7"},
	))

	all, err := storages.Queue.ReadAll(ctx)
	require.ErrorIs(t, err, ErrCorruptedValue)
	assert.Empty(t, all)

	op, err := storages.Queue.Enqueue(ctx, models.NewVehicleDelete("veh-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), op.Seq)

	all, err = storages.Queue.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	_, err := storages.Sessions.LoadSession(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	session := models.Session{
		AccessToken: "token",
		ExpiresAt:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		User:        models.User{UserID: 7, Email: "ana@example.com", Name: "Ana", Password: "secret"},
	}
	require.NoError(t, storages.Sessions.SaveSession(ctx, session))

	got, err := storages.Sessions.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token", got.AccessToken)
	assert.Equal(t, session.ExpiresAt, got.ExpiresAt)
	assert.Equal(t, int64(7), got.User.UserID)
	assert.Empty(t, got.User.Password)

	require.NoError(t, storages.Sessions.ClearSession(ctx))
	_, err = storages.Sessions.LoadSession(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSessionStore_Corrupted(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	kv := &kvStore{DB: storages.db}
	require.NoError(t, kv.set(ctx, kvPair{key: keyAuthSession, value: "nope"}))

	_, err := storages.Sessions.LoadSession(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
	assert.ErrorIs(t, err, ErrCorruptedValue)
}

func TestSessionStore_Owner(t *testing.T) {
	ctx := context.Background()
	storages, dsn := newTestClientStorages(t)

	owner, err := storages.Sessions.LoadOwner(ctx)
	require.NoError(t, err)
	assert.Zero(t, owner)

	require.NoError(t, storages.Sessions.SaveOwner(ctx, 42))
	// the owner outlives the session
	require.NoError(t, storages.Sessions.ClearSession(ctx))
	require.NoError(t, storages.Close())

	owner, err = reopen(t, dsn).Sessions.LoadOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(42), owner)
}

func TestSessionStore_OwnerCorrupted(t *testing.T) {
	ctx := context.Background()
	storages, _ := newTestClientStorages(t)

	kv := &kvStore{DB: storages.db}
	require.NoError(t, kv.set(ctx, kvPair{key: keyAuthOwner, value: "ana"}))

	_, err := storages.Sessions.LoadOwner(ctx)
	assert.ErrorIs(t, err, ErrCorruptedValue)
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: "trip-keeper.db", want: "trip-keeper.db?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"},
		{dsn: "file:trip.db?cache=shared", want: "file:trip.db?cache=shared"},
		{dsn: ":memory:", want: ":memory:"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}
