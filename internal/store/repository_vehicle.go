package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// vehicleRepository is the PostgreSQL-backed implementation of
// [VehicleRepository].
type vehicleRepository struct {
	*DB
	logger *logger.Logger
}

func NewVehicleRepository(db *DB, logger *logger.Logger) VehicleRepository {
	return &vehicleRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *vehicleRepository) ListVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	query, args, err := buildSelectVehiclesQuery(userID, "")
	if err != nil {
		return nil, err
	}

	return queryAll(ctx, r.DB, "vehicleRepository.ListVehicles", query, args, scanVehicle)
}

func (r *vehicleRepository) GetVehicle(ctx context.Context, userID int64, vehicleID string) (models.Vehicle, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectVehiclesQuery(userID, vehicleID)
	if err != nil {
		return models.Vehicle{}, err
	}

	vehicle, err := scanVehicle(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Vehicle{}, ErrVehicleNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "vehicleRepository.GetVehicle").
			Int64("user_id", userID).
			Str("vehicle_id", vehicleID).
			Msg("failed to get vehicle")
		return models.Vehicle{}, r.wrapError(ErrExecutingQuery, err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	log := logger.FromContext(ctx)

	vehicle.FuelTypes = nonNil(models.NormalizeFuelTypes(vehicle.FuelTypes))
	vehicle.SyncStatus = ""

	query, args, err := buildInsertVehicleQuery(vehicle)
	if err != nil {
		return models.Vehicle{}, err
	}

	if err = r.DB.QueryRowContext(ctx, query, args...).Scan(&vehicle.CreatedAt, &vehicle.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "vehicleRepository.CreateVehicle").
			Int64("user_id", vehicle.UserID).
			Str("vehicle_id", vehicle.ID).
			Msg("failed to insert vehicle")
		return models.Vehicle{}, r.wrapError(ErrExecutingStatement, err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) UpdateVehicle(ctx context.Context, userID int64, vehicleID string, update models.VehicleUpdate) (models.Vehicle, error) {
	if update.IsEmpty() {
		return r.GetVehicle(ctx, userID, vehicleID)
	}

	query, args, err := buildUpdateVehicleQuery(userID, vehicleID, update)
	if err != nil {
		return models.Vehicle{}, err
	}

	if err = r.execOwned(ctx, "vehicleRepository.UpdateVehicle", query, args, ErrVehicleNotFound); err != nil {
		return models.Vehicle{}, err
	}

	return r.GetVehicle(ctx, userID, vehicleID)
}

func (r *vehicleRepository) SetPhotoPath(ctx context.Context, userID int64, vehicleID string, path *string) error {
	query, args, err := buildUpdateQuery("vehicles", map[string]any{"photo_path": path}, userID, vehicleID)
	if err != nil {
		return err
	}

	return r.execOwned(ctx, "vehicleRepository.SetPhotoPath", query, args, ErrVehicleNotFound)
}

func (r *vehicleRepository) DeleteVehicle(ctx context.Context, userID int64, vehicleID string) error {
	query, args, err := buildDeleteOwnedQuery("vehicles", userID, sq.Eq{"id": vehicleID})
	if err != nil {
		return err
	}

	return r.execOwned(ctx, "vehicleRepository.DeleteVehicle", query, args, ErrVehicleNotFound)
}

func scanVehicle(row rowScanner) (models.Vehicle, error) {
	var (
		vehicle   models.Vehicle
		fuelTypes []byte
		photoPath sql.NullString
	)

	err := row.Scan(
		&vehicle.ID,
		&vehicle.UserID,
		&vehicle.Nickname,
		&vehicle.LicensePlate,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Color,
		&fuelTypes,
		&vehicle.Active,
		&photoPath,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return models.Vehicle{}, err
	}

	vehicle.FuelTypes = []models.FuelType{}
	if len(fuelTypes) > 0 {
		if err = json.Unmarshal(fuelTypes, &vehicle.FuelTypes); err != nil {
			return models.Vehicle{}, fmt.Errorf("decoding fuel_types: %w", err)
		}
		vehicle.FuelTypes = nonNil(vehicle.FuelTypes)
	}
	if photoPath.Valid {
		vehicle.PhotoPath = &photoPath.String
	}

	return vehicle, nil
}
