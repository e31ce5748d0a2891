package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-trip-keeper/internal/validators"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// TripValidationService checks trips and trip updates before they reach
// the wrapped TripService.
type TripValidationService struct {
	inner     TripService
	validator validators.Validator
}

func NewTripValidationService(validator validators.Validator) TripServiceWrapper {
	return &TripValidationService{validator: validator}
}

func (v *TripValidationService) ListTrips(ctx context.Context, userID int64) ([]models.Trip, error) {
	if userID <= 0 {
		return nil, ErrValidationNoUserID
	}
	return v.inner.ListTrips(ctx, userID)
}

func (v *TripValidationService) CreateTrip(ctx context.Context, userID int64, trip models.Trip) (models.Trip, error) {
	if userID <= 0 {
		return models.Trip{}, ErrValidationNoUserID
	}
	if err := v.validator.Validate(ctx, trip); err != nil {
		return models.Trip{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.CreateTrip(ctx, userID, trip)
}

func (v *TripValidationService) UpdateTrip(ctx context.Context, userID int64, tripID string, update models.TripUpdate) (models.Trip, error) {
	if userID <= 0 {
		return models.Trip{}, ErrValidationNoUserID
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Trip{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.UpdateTrip(ctx, userID, tripID, update)
}

func (v *TripValidationService) DeleteTrip(ctx context.Context, userID int64, tripID string) error {
	if userID <= 0 {
		return ErrValidationNoUserID
	}
	return v.inner.DeleteTrip(ctx, userID, tripID)
}

func (v *TripValidationService) Wrap(wrapped TripService) TripService {
	v.inner = wrapped
	return v
}
