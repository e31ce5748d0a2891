package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type tripService struct {
	trips  store.TripRepository
	ids    utils.IDGenerator
	broker ChangeBroker

	logger *logger.Logger
}

// NewTripService returns the TripService backed by trips. Every successful
// mutation is published to broker.
func NewTripService(trips store.TripRepository, ids utils.IDGenerator, broker ChangeBroker, logger *logger.Logger) TripService {
	return &tripService{
		trips:  trips,
		ids:    ids,
		broker: broker,
		logger: logger,
	}
}

func (s *tripService) ListTrips(ctx context.Context, userID int64) ([]models.Trip, error) {
	trips, err := s.trips.ListTrips(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing trips: %w", err)
	}
	return trips, nil
}

// CreateTrip stores trip under a fresh server id. A client placeholder id is
// never persisted; a missing status defaults to ongoing.
func (s *tripService) CreateTrip(ctx context.Context, userID int64, trip models.Trip) (models.Trip, error) {
	trip.ID = s.ids.Generate()
	trip.UserID = userID
	if trip.Status == "" {
		trip.Status = models.TripStatusOngoing
	}
	if trip.VehicleIDs == nil {
		trip.VehicleIDs = []string{}
	}

	created, err := s.trips.CreateTrip(ctx, trip)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("error creating trip")
		return models.Trip{}, fmt.Errorf("error creating trip: %w", err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeTrips, models.ChangeInsert, created.ID)
	return created, nil
}

func (s *tripService) UpdateTrip(ctx context.Context, userID int64, tripID string, update models.TripUpdate) (models.Trip, error) {
	if tripID == "" {
		return models.Trip{}, ErrInvalidDataProvided
	}

	updated, err := s.trips.UpdateTrip(ctx, userID, tripID, update)
	if err != nil {
		return models.Trip{}, fmt.Errorf("error updating trip %s: %w", tripID, err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeTrips, models.ChangeUpdate, tripID)
	return updated, nil
}

func (s *tripService) DeleteTrip(ctx context.Context, userID int64, tripID string) error {
	if tripID == "" {
		return ErrInvalidDataProvided
	}

	if err := s.trips.DeleteTrip(ctx, userID, tripID); err != nil {
		return fmt.Errorf("error deleting trip %s: %w", tripID, err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeTrips, models.ChangeDelete, tripID)
	return nil
}
