package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type clientTripService struct {
	*clientEntities
}

func NewClientTripService(serverAdapter adapter.ServerAdapter, queue store.PendingQueue, cache store.LocalCache,
	state *ClientState, conn Connectivity, logger *logger.Logger) ClientTripService {
	return &clientTripService{newClientEntities(serverAdapter, queue, cache, state, conn, logger.WithComponent("trips"))}
}

func (t *clientTripService) List(ctx context.Context) ([]models.Trip, error) {
	if !t.online() {
		return t.state.Trips(), nil
	}

	trips, err := t.adapter.ListTrips(ctx)
	if err != nil {
		if unreachable(err) {
			t.logger.Warn().Err(err).Msg("serving cached trips")
			return t.state.Trips(), nil
		}
		return nil, mapAdapterError(err)
	}

	t.state.SetTrips(mergeTrips(trips, t.state.Trips()))
	t.persist(ctx)
	return t.state.Trips(), nil
}

func (t *clientTripService) Create(ctx context.Context, trip models.Trip) (models.Trip, error) {
	if trip.VehicleIDs == nil {
		trip.VehicleIDs = []string{}
	}
	if trip.Status == "" {
		trip.Status = models.TripStatusOngoing
	}

	if t.online() {
		created, err := t.adapter.CreateTrip(ctx, trip)
		if err != nil {
			return models.Trip{}, mapAdapterError(err)
		}
		t.state.UpsertTrip(created)
		t.persist(ctx)
		return created, nil
	}

	now := t.now().UTC()
	trip.ID = utils.NewLocalID()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	if err := t.enqueue(ctx, models.NewTripInsert(trip)); err != nil {
		return models.Trip{}, err
	}
	t.state.UpsertTrip(trip)
	t.persist(ctx)
	return trip, nil
}

func (t *clientTripService) Update(ctx context.Context, id string, update models.TripUpdate) (models.Trip, error) {
	if update.IsEmpty() {
		return models.Trip{}, fmt.Errorf("%w: empty trip update", ErrInvalidDataProvided)
	}

	if t.direct(id) {
		updated, err := t.adapter.UpdateTrip(ctx, id, update)
		if err != nil {
			return models.Trip{}, mapAdapterError(err)
		}
		t.state.UpsertTrip(updated)
		t.persist(ctx)
		return updated, nil
	}

	if _, ok := t.state.Trip(id); !ok {
		return models.Trip{}, store.ErrTripNotFound
	}
	if err := t.enqueue(ctx, models.NewTripUpdate(id, update)); err != nil {
		return models.Trip{}, err
	}
	updated, ok := t.state.UpdateTrip(id, func(trip *models.Trip) {
		update.ApplyTo(trip)
		trip.UpdatedAt = t.now().UTC()
	})
	if !ok {
		// reconciled under a server id meanwhile; the queued update follows it
		return models.Trip{}, store.ErrTripNotFound
	}
	t.persist(ctx)
	return updated, nil
}

func (t *clientTripService) Delete(ctx context.Context, id string) error {
	if t.direct(id) {
		if err := t.adapter.DeleteTrip(ctx, id); err != nil {
			return mapAdapterError(err)
		}
		t.state.RemoveTrip(id)
		t.persist(ctx)
		return nil
	}

	if _, ok := t.state.Trip(id); !ok {
		return store.ErrTripNotFound
	}
	if err := t.enqueue(ctx, models.NewTripDelete(id)); err != nil {
		return err
	}
	t.state.RemoveTrip(id)
	t.persist(ctx)
	return nil
}
