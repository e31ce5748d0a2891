package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type clientTripVehicleService struct {
	*clientEntities
}

func NewClientTripVehicleService(serverAdapter adapter.ServerAdapter, queue store.PendingQueue, cache store.LocalCache,
	state *ClientState, conn Connectivity, logger *logger.Logger) ClientTripVehicleService {
	return &clientTripVehicleService{newClientEntities(serverAdapter, queue, cache, state, conn, logger.WithComponent("trip-vehicles"))}
}

func (s *clientTripVehicleService) Link(ctx context.Context, tripID, vehicleID string) (models.Trip, error) {
	if err := s.ensureLocal(tripID, vehicleID); err != nil {
		return models.Trip{}, err
	}

	if s.direct(tripID) && !models.IsLocalID(vehicleID) {
		if _, err := s.adapter.LinkVehicle(ctx, tripID, vehicleID); err != nil {
			return models.Trip{}, mapAdapterError(err)
		}
	} else {
		// no join row is queued: the link lives on the trip's list only
		s.logger.Warn().Str("trip_id", tripID).Str("vehicle_id", vehicleID).Msg("vehicle linked locally only")
	}

	return s.setVehicleIDs(ctx, tripID, func(ids []string) []string {
		if slices.Contains(ids, vehicleID) {
			return ids
		}
		return append(ids, vehicleID)
	}), nil
}

func (s *clientTripVehicleService) Unlink(ctx context.Context, tripID, vehicleID string) (models.Trip, error) {
	if err := s.ensureLocal(tripID, vehicleID); err != nil {
		return models.Trip{}, err
	}

	if s.direct(tripID) && !models.IsLocalID(vehicleID) {
		if _, err := s.adapter.UnlinkVehicle(ctx, tripID, vehicleID); err != nil {
			return models.Trip{}, mapAdapterError(err)
		}
	} else {
		s.logger.Warn().Str("trip_id", tripID).Str("vehicle_id", vehicleID).Msg("vehicle unlinked locally only")
	}

	return s.setVehicleIDs(ctx, tripID, func(ids []string) []string {
		return slices.DeleteFunc(ids, func(id string) bool { return id == vehicleID })
	}), nil
}

func (s *clientTripVehicleService) UnlinkAll(ctx context.Context, tripID string) (models.Trip, error) {
	if _, ok := s.state.Trip(tripID); !ok {
		return models.Trip{}, store.ErrTripNotFound
	}

	if s.direct(tripID) {
		deleted, err := s.adapter.UnlinkVehicle(ctx, tripID, "")
		if err != nil {
			return models.Trip{}, mapAdapterError(err)
		}
		s.logger.Debug().Str("trip_id", tripID).Int64("deleted", deleted).Msg("vehicles unlinked")
	} else {
		s.logger.Warn().Str("trip_id", tripID).Msg("vehicles unlinked locally only")
	}

	return s.setVehicleIDs(ctx, tripID, func([]string) []string { return []string{} }), nil
}

// Vehicles refreshes the trip's links from the backend when possible and
// resolves them against the local vehicles. Unknown ids are skipped.
func (s *clientTripVehicleService) Vehicles(ctx context.Context, tripID string) ([]models.Vehicle, error) {
	trip, ok := s.state.Trip(tripID)
	if !ok {
		return nil, store.ErrTripNotFound
	}

	if s.direct(tripID) {
		links, err := s.adapter.ListTripVehicles(ctx, tripID)
		if err != nil {
			s.logger.Warn().Err(err).Str("trip_id", tripID).Msg("using local vehicle links")
		} else {
			ids := make([]string, 0, len(links))
			for _, l := range links {
				ids = append(ids, l.VehicleID)
			}
			trip = s.setVehicleIDs(ctx, tripID, func([]string) []string { return uniqueIDs(ids) })
		}
	}

	vehicles := make([]models.Vehicle, 0, len(trip.VehicleIDs))
	for _, id := range trip.VehicleIDs {
		if v, found := s.state.Vehicle(id); found {
			vehicles = append(vehicles, v)
		}
	}
	return vehicles, nil
}

// Segments lists the odometer segments of a trip. Segments are not cached:
// offline, and on any backend failure, the list is empty.
func (s *clientTripVehicleService) Segments(ctx context.Context, tripID string) ([]models.OdometerSegment, error) {
	if !s.direct(tripID) {
		return []models.OdometerSegment{}, nil
	}

	segments, err := s.adapter.ListSegments(ctx, tripID)
	if err != nil {
		s.logger.Warn().Err(err).Str("trip_id", tripID).Msg("segments unavailable")
		return []models.OdometerSegment{}, nil
	}
	return segments, nil
}

func (s *clientTripVehicleService) StartSegment(ctx context.Context, segment models.OdometerSegment) (models.OdometerSegment, error) {
	if !s.direct(segment.TripID) || models.IsLocalID(segment.VehicleID) {
		return models.OdometerSegment{}, ErrOffline
	}

	started, err := s.adapter.StartSegment(ctx, segment)
	if err != nil {
		return models.OdometerSegment{}, mapAdapterError(err)
	}
	return started, nil
}

func (s *clientTripVehicleService) FinishSegment(ctx context.Context, segmentID string, finish models.SegmentFinish) (models.OdometerSegment, error) {
	if !s.online() {
		return models.OdometerSegment{}, ErrOffline
	}

	finished, err := s.adapter.FinishSegment(ctx, segmentID, finish)
	if err != nil {
		return models.OdometerSegment{}, mapAdapterError(err)
	}
	return finished, nil
}

func (s *clientTripVehicleService) DeleteSegment(ctx context.Context, segmentID string) error {
	if !s.online() {
		return ErrOffline
	}
	return mapAdapterError(s.adapter.DeleteSegment(ctx, segmentID))
}

func (s *clientTripVehicleService) ensureLocal(tripID, vehicleID string) error {
	if _, ok := s.state.Trip(tripID); !ok {
		return store.ErrTripNotFound
	}
	if _, ok := s.state.Vehicle(vehicleID); !ok {
		return store.ErrVehicleNotFound
	}
	return nil
}

func (s *clientTripVehicleService) setVehicleIDs(ctx context.Context, tripID string, fn func([]string) []string) models.Trip {
	trip, _ := s.state.UpdateTrip(tripID, func(t *models.Trip) {
		t.VehicleIDs = fn(slices.Clone(t.VehicleIDs))
		if t.VehicleIDs == nil {
			t.VehicleIDs = []string{}
		}
	})
	s.persist(ctx)
	return trip
}
