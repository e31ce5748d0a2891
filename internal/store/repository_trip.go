package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
	"github.com/jackc/pgerrcode"
)

// tripRepository is the PostgreSQL-backed implementation of [TripRepository].
type tripRepository struct {
	*DB
	logger *logger.Logger
	ids    utils.IDGenerator
}

// NewTripRepository constructs a [TripRepository]. Link rows created with a
// trip get ids from ids.
func NewTripRepository(db *DB, ids utils.IDGenerator, logger *logger.Logger) TripRepository {
	return &tripRepository{
		DB:     db,
		logger: logger,
		ids:    ids,
	}
}

func (r *tripRepository) ListTrips(ctx context.Context, userID int64) ([]models.Trip, error) {
	query, args, err := buildSelectTripsQuery(userID, "")
	if err != nil {
		return nil, err
	}

	return queryAll(ctx, r.DB, "tripRepository.ListTrips", query, args, scanTrip)
}

func (r *tripRepository) GetTrip(ctx context.Context, userID int64, tripID string) (models.Trip, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectTripsQuery(userID, tripID)
	if err != nil {
		return models.Trip{}, err
	}

	trip, err := scanTrip(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, ErrTripNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "tripRepository.GetTrip").
			Int64("user_id", userID).
			Str("trip_id", tripID).
			Msg("failed to get trip")
		return models.Trip{}, r.wrapError(ErrExecutingQuery, err)
	}

	return trip, nil
}

// CreateTrip inserts the trip and one trip_vehicles row per linked vehicle in
// a single transaction.
func (r *tripRepository) CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertTripQuery(trip)
	if err != nil {
		return models.Trip{}, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "tripRepository.CreateTrip").Msg("failed to begin transaction")
		return models.Trip{}, r.wrapError(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = tx.QueryRowContext(ctx, query, args...).Scan(&trip.CreatedAt, &trip.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "tripRepository.CreateTrip").
			Int64("user_id", trip.UserID).
			Str("trip_id", trip.ID).
			Msg("failed to insert trip")
		return models.Trip{}, r.wrapError(ErrExecutingStatement, err)
	}

	linked := make([]string, 0, len(trip.VehicleIDs))
	for _, vehicleID := range trip.VehicleIDs {
		var id string
		linkErr := tx.QueryRowContext(ctx, linkTripVehicle, r.ids.Generate(), trip.ID, vehicleID, trip.UserID).Scan(&id, new(any))
		if errors.Is(linkErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "tripRepository.CreateTrip").
				Str("trip_id", trip.ID).
				Str("vehicle_id", vehicleID).
				Msg("skipping link to unknown vehicle")
			continue
		}
		if linkErr != nil {
			log.Err(linkErr).
				Str("func", "tripRepository.CreateTrip").
				Str("vehicle_id", vehicleID).
				Msg("failed to link vehicle")
			return models.Trip{}, r.wrapError(ErrExecutingStatement, linkErr)
		}
		linked = append(linked, vehicleID)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "tripRepository.CreateTrip").Msg("failed to commit transaction")
		return models.Trip{}, r.wrapError(ErrCommitingTransaction, err)
	}

	trip.VehicleIDs = linked
	return trip, nil
}

// UpdateTrip applies update and returns the stored trip. An empty update
// only reads the trip.
func (r *tripRepository) UpdateTrip(ctx context.Context, userID int64, tripID string, update models.TripUpdate) (models.Trip, error) {
	if update.IsEmpty() {
		return r.GetTrip(ctx, userID, tripID)
	}

	query, args, err := buildUpdateTripQuery(userID, tripID, update)
	if err != nil {
		return models.Trip{}, err
	}

	if err = r.execOwned(ctx, "tripRepository.UpdateTrip", query, args, ErrTripNotFound); err != nil {
		return models.Trip{}, err
	}

	return r.GetTrip(ctx, userID, tripID)
}

func (r *tripRepository) DeleteTrip(ctx context.Context, userID int64, tripID string) error {
	query, args, err := buildDeleteOwnedQuery("trips", userID, sq.Eq{"id": tripID})
	if err != nil {
		return err
	}

	return r.execOwned(ctx, "tripRepository.DeleteTrip", query, args, ErrTripNotFound)
}

// execOwned executes a statement targeting one owned row and returns
// notFound when no row was affected.
func (db *DB) execOwned(ctx context.Context, funcName, query string, args []any, notFound error) error {
	log := logger.FromContext(ctx)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute statement")
		switch postgresError(err) {
		case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		return db.wrapError(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return db.wrapError(ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func scanTrip(row rowScanner) (models.Trip, error) {
	var (
		trip                            models.Trip
		status                          string
		origin, destination, vehicleIDs []byte
	)

	err := row.Scan(
		&trip.ID,
		&trip.UserID,
		&trip.Name,
		&trip.DepartureAt,
		&trip.ArrivalAt,
		&origin,
		&destination,
		&status,
		&trip.Notes,
		&trip.CreatedAt,
		&trip.UpdatedAt,
		&vehicleIDs,
	)
	if err != nil {
		return models.Trip{}, err
	}
	trip.Status = models.TripStatus(status)

	if trip.Origin, err = decodeLocation(origin); err != nil {
		return models.Trip{}, err
	}
	if trip.Destination, err = decodeLocation(destination); err != nil {
		return models.Trip{}, err
	}

	trip.VehicleIDs = []string{}
	if len(vehicleIDs) > 0 {
		if err = json.Unmarshal(vehicleIDs, &trip.VehicleIDs); err != nil {
			return models.Trip{}, fmt.Errorf("decoding vehicle_ids: %w", err)
		}
	}

	return trip, nil
}

func decodeLocation(raw []byte) (*models.Location, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var loc models.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, fmt.Errorf("decoding location: %w", err)
	}
	return &loc, nil
}
