package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/internal/validators"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type tripVehicleService struct {
	trips     store.TripRepository
	links     store.TripVehicleRepository
	segments  store.SegmentRepository
	ids       utils.IDGenerator
	broker    ChangeBroker
	validator validators.Validator
	now       func() time.Time

	logger *logger.Logger
}

// NewTripVehicleService returns the TripVehicleService managing the links
// between trips and vehicles and the odometer segments driven on a trip.
func NewTripVehicleService(
	trips store.TripRepository,
	links store.TripVehicleRepository,
	segments store.SegmentRepository,
	ids utils.IDGenerator,
	broker ChangeBroker,
	validator validators.Validator,
	logger *logger.Logger,
) TripVehicleService {
	return &tripVehicleService{
		trips:     trips,
		links:     links,
		segments:  segments,
		ids:       ids,
		broker:    broker,
		validator: validator,
		now:       time.Now,
		logger:    logger,
	}
}

// ListTripVehicles returns store.ErrTripNotFound for trips of other users
// instead of an empty list.
func (s *tripVehicleService) ListTripVehicles(ctx context.Context, userID int64, tripID string) ([]models.TripVehicle, error) {
	if _, err := s.trips.GetTrip(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("error listing vehicles of trip %s: %w", tripID, err)
	}

	links, err := s.links.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles of trip %s: %w", tripID, err)
	}
	return links, nil
}

func (s *tripVehicleService) LinkVehicle(ctx context.Context, userID int64, link models.TripVehicle) (models.TripVehicle, error) {
	if err := s.validator.Validate(ctx, link); err != nil {
		return models.TripVehicle{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	link.ID = s.ids.Generate()
	link.UserID = userID

	linked, err := s.links.Link(ctx, link)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("trip_id", link.TripID).
			Str("vehicle_id", link.VehicleID).
			Msg("error linking vehicle")
		return models.TripVehicle{}, fmt.Errorf("error linking vehicle: %w", err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeTripVehicles, models.ChangeInsert, linked.ID)
	return linked, nil
}

func (s *tripVehicleService) UnlinkVehicle(ctx context.Context, userID int64, tripID, vehicleID string) (int64, error) {
	if tripID == "" {
		return 0, ErrInvalidDataProvided
	}

	var (
		deleted int64
		err     error
	)
	if vehicleID == "" {
		deleted, err = s.links.UnlinkAll(ctx, userID, tripID)
	} else {
		deleted, err = s.links.Unlink(ctx, userID, tripID, vehicleID)
	}
	if err != nil {
		return 0, fmt.Errorf("error unlinking vehicles of trip %s: %w", tripID, err)
	}

	if deleted > 0 {
		publishChange(ctx, s.broker, userID, models.ChangeTripVehicles, models.ChangeDelete, tripID)
	}
	return deleted, nil
}

func (s *tripVehicleService) ListSegments(ctx context.Context, userID int64, tripID string) ([]models.OdometerSegment, error) {
	if _, err := s.trips.GetTrip(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("error listing segments of trip %s: %w", tripID, err)
	}

	segments, err := s.segments.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("error listing segments of trip %s: %w", tripID, err)
	}
	return segments, nil
}

// StartSegment opens a segment. An end reading sent along is kept, so a
// finished span can be recorded in one call.
func (s *tripVehicleService) StartSegment(ctx context.Context, userID int64, segment models.OdometerSegment) (models.OdometerSegment, error) {
	if err := s.validator.Validate(ctx, segment); err != nil {
		return models.OdometerSegment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	segment.ID = s.ids.Generate()
	segment.UserID = userID

	created, err := s.segments.CreateSegment(ctx, segment)
	if err != nil {
		return models.OdometerSegment{}, fmt.Errorf("error starting segment: %w", err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeSegments, models.ChangeInsert, created.ID)
	return created, nil
}

func (s *tripVehicleService) FinishSegment(ctx context.Context, userID int64, segmentID string, finish models.SegmentFinish) (models.OdometerSegment, error) {
	if segmentID == "" {
		return models.OdometerSegment{}, ErrInvalidDataProvided
	}
	if err := s.validator.Validate(ctx, finish); err != nil {
		return models.OdometerSegment{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if finish.EndedAt == nil {
		now := s.now().UTC()
		finish.EndedAt = &now
	}

	finished, err := s.segments.FinishSegment(ctx, userID, segmentID, finish)
	if err != nil {
		return models.OdometerSegment{}, fmt.Errorf("error finishing segment %s: %w", segmentID, err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeSegments, models.ChangeUpdate, segmentID)
	return finished, nil
}

func (s *tripVehicleService) DeleteSegment(ctx context.Context, userID int64, segmentID string) error {
	if segmentID == "" {
		return ErrInvalidDataProvided
	}

	if err := s.segments.DeleteSegment(ctx, userID, segmentID); err != nil {
		return fmt.Errorf("error deleting segment %s: %w", segmentID, err)
	}

	publishChange(ctx, s.broker, userID, models.ChangeSegments, models.ChangeDelete, segmentID)
	return nil
}
