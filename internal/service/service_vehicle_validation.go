package service

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-trip-keeper/internal/validators"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// VehicleValidationService checks vehicles and vehicle updates before they
// reach the wrapped VehicleService.
type VehicleValidationService struct {
	inner     VehicleService
	validator validators.Validator
}

func NewVehicleValidationService(validator validators.Validator) VehicleServiceWrapper {
	return &VehicleValidationService{validator: validator}
}

func (v *VehicleValidationService) ListVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	if userID <= 0 {
		return nil, ErrValidationNoUserID
	}
	return v.inner.ListVehicles(ctx, userID)
}

func (v *VehicleValidationService) CreateVehicle(ctx context.Context, userID int64, vehicle models.Vehicle) (models.Vehicle, error) {
	if userID <= 0 {
		return models.Vehicle{}, ErrValidationNoUserID
	}
	if err := v.validator.Validate(ctx, vehicle); err != nil {
		return models.Vehicle{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return v.inner.CreateVehicle(ctx, userID, vehicle)
}

func (v *VehicleValidationService) UpdateVehicle(ctx context.Context, userID int64, vehicleID string, update models.VehicleUpdate) (models.Vehicle, error) {
	if userID <= 0 {
		return models.Vehicle{}, ErrValidationNoUserID
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Vehicle{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if update.FuelTypes != nil {
		if err := v.validator.Validate(ctx, models.Vehicle{Nickname: "-", FuelTypes: *update.FuelTypes}); err != nil {
			return models.Vehicle{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}
	return v.inner.UpdateVehicle(ctx, userID, vehicleID, update)
}

func (v *VehicleValidationService) DeleteVehicle(ctx context.Context, userID int64, vehicleID string) error {
	if userID <= 0 {
		return ErrValidationNoUserID
	}
	return v.inner.DeleteVehicle(ctx, userID, vehicleID)
}

func (v *VehicleValidationService) UploadPhoto(ctx context.Context, userID int64, vehicleID, contentType string, body io.Reader, size int64) (models.Vehicle, error) {
	if userID <= 0 {
		return models.Vehicle{}, ErrValidationNoUserID
	}
	return v.inner.UploadPhoto(ctx, userID, vehicleID, contentType, body, size)
}

func (v *VehicleValidationService) PhotoURL(ctx context.Context, userID int64, vehicleID string) (models.PhotoURLResponse, error) {
	if userID <= 0 {
		return models.PhotoURLResponse{}, ErrValidationNoUserID
	}
	return v.inner.PhotoURL(ctx, userID, vehicleID)
}

func (v *VehicleValidationService) DeletePhoto(ctx context.Context, userID int64, vehicleID string) (models.Vehicle, error) {
	if userID <= 0 {
		return models.Vehicle{}, ErrValidationNoUserID
	}
	return v.inner.DeletePhoto(ctx, userID, vehicleID)
}

func (v *VehicleValidationService) Wrap(wrapped VehicleService) VehicleService {
	v.inner = wrapped
	return v
}
