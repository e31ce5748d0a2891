package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/mock"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/workers"
	"github.com/MKhiriev/go-trip-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClientVehicleService_OfflineLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newTestClient(t, ctrl)
	ctx := context.Background()

	created, err := c.vehicles.Create(ctx, models.Vehicle{
		Nickname:  "Van",
		FuelTypes: []models.FuelType{models.FuelGasoline, models.FuelEthanol, models.FuelGasoline},
	})
	require.NoError(t, err)
	assert.True(t, models.IsLocalID(created.ID))
	assert.Equal(t, models.SyncStatusPending, created.SyncStatus)
	assert.Equal(t, []models.FuelType{models.FuelEthanol, models.FuelGasoline}, created.FuelTypes)

	c.state.UpsertTrip(models.Trip{ID: "t1", VehicleIDs: []string{created.ID}})

	updated, err := c.vehicles.Update(ctx, created.ID, models.VehicleUpdate{Color: ptr("white")})
	require.NoError(t, err)
	assert.Equal(t, "white", updated.Color)

	require.NoError(t, c.vehicles.Delete(ctx, created.ID))
	assert.Empty(t, c.state.Vehicles())

	trip, _ := c.state.Trip("t1")
	assert.Empty(t, trip.VehicleIDs)

	ops := c.queued(t)
	require.Len(t, ops, 3)
	assert.Equal(t, models.OpVehicleInsert, ops[0].Kind)
	assert.Equal(t, models.OpVehicleUpdate, ops[1].Kind)
	assert.Equal(t, models.OpVehicleDelete, ops[2].Kind)
	assert.Empty(t, c.cached(t).Vehicles)
}

func TestClientVehicleService_OfflineUpdateMarksPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newTestClient(t, ctrl)

	c.state.SetVehicles([]models.Vehicle{{ID: "v1", Nickname: "Car", SyncStatus: models.SyncStatusSynced}})

	updated, err := c.vehicles.Update(context.Background(), "v1", models.VehicleUpdate{Active: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Equal(t, models.SyncStatusPending, updated.SyncStatus)

	_, err = c.vehicles.Update(context.Background(), "v2", models.VehicleUpdate{Active: ptr(true)})
	assert.ErrorIs(t, err, store.ErrVehicleNotFound)
}

func TestClientVehicleService_UpdateRacingReconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	adp := mock.NewMockServerAdapter(ctrl)
	adp.EXPECT().Token().Return("").AnyTimes()
	queue := mock.NewMockPendingQueue(ctrl)
	state := NewClientState()
	state.UpsertVehicle(models.Vehicle{ID: "local-v", Nickname: "Van"})

	svc := NewClientVehicleService(adp, queue, mock.NewMockLocalCache(ctrl), state,
		workers.NewConnectivityObserver(context.Background(), stubProber{}, time.Hour, time.Second, logger.Nop()), logger.Nop())

	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, op models.PendingOperation) (models.PendingOperation, error) {
			state.ReplaceVehicleID("local-v", "srv-v")
			return op, nil
		})

	_, err := svc.Update(context.Background(), "local-v", models.VehicleUpdate{Color: ptr("red")})
	require.ErrorIs(t, err, store.ErrVehicleNotFound)

	_, ok := state.Vehicle("local-v")
	assert.False(t, ok)
}

func TestClientVehicleService_OnlineCreateIsSynced(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newTestClient(t, ctrl)
	c.conn.SetOnline(true)

	c.adapter.EXPECT().CreateVehicle(gomock.Any(), gomock.Any()).
		Return(models.Vehicle{ID: "v1", Nickname: "Car"}, nil)

	created, err := c.vehicles.Create(context.Background(), models.Vehicle{Nickname: "Car"})
	require.NoError(t, err)
	assert.Equal(t, models.SyncStatusSynced, created.SyncStatus)
	assert.Equal(t, models.SyncStatusSynced, c.cached(t).Vehicles[0].SyncStatus)
}

func TestClientVehicleService_ListKeepsQueuedStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newTestClient(t, ctrl)
	ctx := context.Background()

	c.state.SetVehicles([]models.Vehicle{{ID: "v1", Nickname: "Car"}})
	_, err := c.vehicles.Update(ctx, "v1", models.VehicleUpdate{Color: ptr("red")})
	require.NoError(t, err)

	c.conn.SetOnline(true)
	c.adapter.EXPECT().ListVehicles(gomock.Any()).
		Return([]models.Vehicle{{ID: "v1", Nickname: "Car"}, {ID: "v2", Nickname: "Bike"}}, nil)

	vehicles, err := c.vehicles.List(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 2)
	assert.Equal(t, models.SyncStatusPending, vehicles[0].SyncStatus)
	assert.Equal(t, models.SyncStatusSynced, vehicles[1].SyncStatus)
}

func TestClientVehicleService_Photos(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newTestClient(t, ctrl)
	ctx := context.Background()

	c.state.SetVehicles([]models.Vehicle{{ID: "v1", Nickname: "Car", Color: "queued-red"}})

	_, err := c.vehicles.UploadPhoto(ctx, "v1", "image/jpeg", bytes.NewReader([]byte("jpeg")))
	assert.ErrorIs(t, err, ErrOffline)
	_, err = c.vehicles.PhotoURL(ctx, "v1")
	assert.ErrorIs(t, err, ErrOffline)

	c.conn.SetOnline(true)

	path := "vehicles/v1/photo.jpg"
	c.adapter.EXPECT().UploadVehiclePhoto(gomock.Any(), "v1", "image/jpeg", gomock.Any()).
		Return(models.Vehicle{ID: "v1", Nickname: "Car", PhotoPath: &path}, nil)
	c.adapter.EXPECT().VehiclePhotoURL(gomock.Any(), "v1").
		Return(models.PhotoURLResponse{Path: path, URL: "https://cdn/photo"}, nil)
	c.adapter.EXPECT().DeleteVehiclePhoto(gomock.Any(), "v1").
		Return(models.Vehicle{ID: "v1", Nickname: "Car"}, nil)

	updated, err := c.vehicles.UploadPhoto(ctx, "v1", "image/jpeg", bytes.NewReader([]byte("jpeg")))
	require.NoError(t, err)
	require.NotNil(t, updated.PhotoPath)
	assert.Equal(t, path, *updated.PhotoPath)
	assert.Equal(t, "queued-red", updated.Color)

	resp, err := c.vehicles.PhotoURL(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/photo", resp.URL)

	updated, err = c.vehicles.DeletePhoto(ctx, "v1")
	require.NoError(t, err)
	assert.Nil(t, updated.PhotoPath)
}

func TestClientVehicleService_UnsupportedPhoto(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := newTestClient(t, ctrl)
	c.conn.SetOnline(true)

	c.adapter.EXPECT().UploadVehiclePhoto(gomock.Any(), "v1", "text/plain", gomock.Any()).
		Return(models.Vehicle{}, fmt.Errorf("%w: %s", adapter.ErrUnsupportedMediaType, "unsupported media type"))

	_, err := c.vehicles.UploadPhoto(context.Background(), "v1", "text/plain", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedMediaType)
}
