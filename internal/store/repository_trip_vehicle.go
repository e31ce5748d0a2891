package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

// tripVehicleRepository is the PostgreSQL-backed implementation of
// [TripVehicleRepository].
type tripVehicleRepository struct {
	*DB
	logger *logger.Logger
}

func NewTripVehicleRepository(db *DB, logger *logger.Logger) TripVehicleRepository {
	return &tripVehicleRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *tripVehicleRepository) ListByTrip(ctx context.Context, userID int64, tripID string) ([]models.TripVehicle, error) {
	query, args, err := buildSelectOwnedQuery("trip_vehicles", tripVehicleColumns, userID, sq.Eq{"trip_id": tripID}, "created_at")
	if err != nil {
		return nil, err
	}

	return queryAll(ctx, r.DB, "tripVehicleRepository.ListByTrip", query, args, scanTripVehicle)
}

func (r *tripVehicleRepository) ListByUser(ctx context.Context, userID int64) ([]models.TripVehicle, error) {
	query, args, err := buildSelectOwnedQuery("trip_vehicles", tripVehicleColumns, userID, nil, "created_at")
	if err != nil {
		return nil, err
	}

	return queryAll(ctx, r.DB, "tripVehicleRepository.ListByUser", query, args, scanTripVehicle)
}

// Link returns [ErrInvalidReference] when the trip or the vehicle is not
// owned by link.UserID.
func (r *tripVehicleRepository) Link(ctx context.Context, link models.TripVehicle) (models.TripVehicle, error) {
	log := logger.FromContext(ctx)

	err := r.DB.QueryRowContext(ctx, linkTripVehicle, link.ID, link.TripID, link.VehicleID, link.UserID).
		Scan(&link.ID, &link.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TripVehicle{}, ErrInvalidReference
	}
	if err != nil {
		log.Err(err).
			Str("func", "tripVehicleRepository.Link").
			Str("trip_id", link.TripID).
			Str("vehicle_id", link.VehicleID).
			Msg("failed to link vehicle to trip")
		return models.TripVehicle{}, r.wrapError(ErrExecutingStatement, err)
	}

	return link, nil
}

func (r *tripVehicleRepository) Unlink(ctx context.Context, userID int64, tripID, vehicleID string) (int64, error) {
	query, args, err := buildDeleteOwnedQuery("trip_vehicles", userID, sq.Eq{"trip_id": tripID, "vehicle_id": vehicleID})
	if err != nil {
		return 0, err
	}

	return r.deleteRows(ctx, "tripVehicleRepository.Unlink", query, args)
}

func (r *tripVehicleRepository) UnlinkAll(ctx context.Context, userID int64, tripID string) (int64, error) {
	query, args, err := buildDeleteOwnedQuery("trip_vehicles", userID, sq.Eq{"trip_id": tripID})
	if err != nil {
		return 0, err
	}

	return r.deleteRows(ctx, "tripVehicleRepository.UnlinkAll", query, args)
}

func (r *tripVehicleRepository) deleteRows(ctx context.Context, funcName, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to delete links")
		return 0, r.wrapError(ErrExecutingStatement, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, r.wrapError(ErrExecutingStatement, err)
	}
	return deleted, nil
}

func scanTripVehicle(row rowScanner) (models.TripVehicle, error) {
	var link models.TripVehicle
	err := row.Scan(&link.ID, &link.TripID, &link.VehicleID, &link.UserID, &link.CreatedAt)
	return link, err
}
