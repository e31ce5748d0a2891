package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type clientVehicleService struct {
	*clientEntities
}

func NewClientVehicleService(serverAdapter adapter.ServerAdapter, queue store.PendingQueue, cache store.LocalCache,
	state *ClientState, conn Connectivity, logger *logger.Logger) ClientVehicleService {
	return &clientVehicleService{newClientEntities(serverAdapter, queue, cache, state, conn, logger.WithComponent("vehicles"))}
}

func (v *clientVehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	if !v.online() {
		return v.state.Vehicles(), nil
	}

	vehicles, err := v.adapter.ListVehicles(ctx)
	if err != nil {
		if unreachable(err) {
			v.logger.Warn().Err(err).Msg("serving cached vehicles")
			return v.state.Vehicles(), nil
		}
		return nil, mapAdapterError(err)
	}

	v.state.SetVehicles(mergeVehicles(vehicles, v.state.Vehicles(), v.queuedStatus(ctx)))
	v.persist(ctx)
	return v.state.Vehicles(), nil
}

func (v *clientVehicleService) Create(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	vehicle.FuelTypes = models.NormalizeFuelTypes(vehicle.FuelTypes)
	if vehicle.FuelTypes == nil {
		vehicle.FuelTypes = []models.FuelType{}
	}

	if v.online() {
		created, err := v.adapter.CreateVehicle(ctx, vehicle)
		if err != nil {
			return models.Vehicle{}, mapAdapterError(err)
		}
		created.SyncStatus = models.SyncStatusSynced
		v.state.UpsertVehicle(created)
		v.persist(ctx)
		return created, nil
	}

	now := v.now().UTC()
	vehicle.ID = utils.NewLocalID()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	vehicle.SyncStatus = models.SyncStatusPending

	if err := v.enqueue(ctx, models.NewVehicleInsert(vehicle)); err != nil {
		return models.Vehicle{}, err
	}
	v.state.UpsertVehicle(vehicle)
	v.persist(ctx)
	return vehicle, nil
}

func (v *clientVehicleService) Update(ctx context.Context, id string, update models.VehicleUpdate) (models.Vehicle, error) {
	if update.IsEmpty() {
		return models.Vehicle{}, fmt.Errorf("%w: empty vehicle update", ErrInvalidDataProvided)
	}

	if v.direct(id) {
		updated, err := v.adapter.UpdateVehicle(ctx, id, update)
		if err != nil {
			return models.Vehicle{}, mapAdapterError(err)
		}
		updated.SyncStatus = models.SyncStatusSynced
		v.state.UpsertVehicle(updated)
		v.persist(ctx)
		return updated, nil
	}

	if _, ok := v.state.Vehicle(id); !ok {
		return models.Vehicle{}, store.ErrVehicleNotFound
	}
	if err := v.enqueue(ctx, models.NewVehicleUpdate(id, update)); err != nil {
		return models.Vehicle{}, err
	}
	updated, ok := v.state.UpdateVehicle(id, func(vehicle *models.Vehicle) {
		update.ApplyTo(vehicle)
		vehicle.UpdatedAt = v.now().UTC()
		vehicle.SyncStatus = models.SyncStatusPending
	})
	if !ok {
		return models.Vehicle{}, store.ErrVehicleNotFound
	}
	v.persist(ctx)
	return updated, nil
}

func (v *clientVehicleService) Delete(ctx context.Context, id string) error {
	if v.direct(id) {
		if err := v.adapter.DeleteVehicle(ctx, id); err != nil {
			return mapAdapterError(err)
		}
		v.state.RemoveVehicle(id)
		v.persist(ctx)
		return nil
	}

	if _, ok := v.state.Vehicle(id); !ok {
		return store.ErrVehicleNotFound
	}
	if err := v.enqueue(ctx, models.NewVehicleDelete(id)); err != nil {
		return err
	}
	v.state.RemoveVehicle(id)
	v.persist(ctx)
	return nil
}

func (v *clientVehicleService) UploadPhoto(ctx context.Context, id, contentType string, photo io.Reader) (models.Vehicle, error) {
	if !v.direct(id) {
		return models.Vehicle{}, ErrOffline
	}

	updated, err := v.adapter.UploadVehiclePhoto(ctx, id, contentType, photo)
	if err != nil {
		return models.Vehicle{}, mapAdapterError(err)
	}
	return v.storePhotoPath(ctx, id, updated), nil
}

func (v *clientVehicleService) PhotoURL(ctx context.Context, id string) (models.PhotoURLResponse, error) {
	if !v.direct(id) {
		return models.PhotoURLResponse{}, ErrOffline
	}

	resp, err := v.adapter.VehiclePhotoURL(ctx, id)
	if err != nil {
		return models.PhotoURLResponse{}, mapAdapterError(err)
	}
	return resp, nil
}

func (v *clientVehicleService) DeletePhoto(ctx context.Context, id string) (models.Vehicle, error) {
	if !v.direct(id) {
		return models.Vehicle{}, ErrOffline
	}

	updated, err := v.adapter.DeleteVehiclePhoto(ctx, id)
	if err != nil {
		return models.Vehicle{}, mapAdapterError(err)
	}
	return v.storePhotoPath(ctx, id, updated), nil
}

// storePhotoPath copies the photo path of the server answer into the local
// vehicle. Queued field changes of the local copy are kept.
func (v *clientVehicleService) storePhotoPath(ctx context.Context, id string, server models.Vehicle) models.Vehicle {
	updated, ok := v.state.UpdateVehicle(id, func(vehicle *models.Vehicle) {
		vehicle.PhotoPath = server.PhotoPath
		vehicle.UpdatedAt = server.UpdatedAt
	})
	if !ok {
		server.SyncStatus = models.SyncStatusSynced
		v.state.UpsertVehicle(server)
		updated = server
	}
	v.persist(ctx)
	return updated
}
