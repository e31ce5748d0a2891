package store

import (
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-trip-keeper/models"
)

// psql builds PostgreSQL statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	createUser = `INSERT INTO users (email, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING id, created_at;`

	findUserByEmail = `SELECT id, email, name, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, email, name, password_hash, created_at
    FROM users
    WHERE id = $1;`

	updateUser = `UPDATE users
    SET email = $1, name = $2, password_hash = $3
    WHERE id = $4
    RETURNING created_at;`

	deleteUser = `DELETE FROM users WHERE id = $1;`

	// linkTripVehicle inserts the pair only when both the trip and the
	// vehicle belong to the user. A repeated link returns the existing row.
	linkTripVehicle = `INSERT INTO trip_vehicles (id, trip_id, vehicle_id, user_id)
    SELECT $1, $2, $3, $4
    WHERE EXISTS (SELECT 1 FROM trips WHERE id = $2 AND user_id = $4)
      AND EXISTS (SELECT 1 FROM vehicles WHERE id = $3 AND user_id = $4)
    ON CONFLICT (trip_id, vehicle_id) DO UPDATE SET trip_id = EXCLUDED.trip_id
    RETURNING id, created_at;`

	segmentState = `SELECT end_km IS NOT NULL FROM odometer_segments WHERE id = $1 AND user_id = $2;`
)

const vehicleIDsAggregate = `COALESCE(json_agg(tv.vehicle_id ORDER BY tv.created_at) FILTER (WHERE tv.vehicle_id IS NOT NULL), '[]') AS vehicle_ids`

var tripColumns = []string{
	"t.id", "t.user_id", "t.name", "t.departure_at", "t.arrival_at",
	"t.origin", "t.destination", "t.status", "t.notes",
	"t.created_at", "t.updated_at", vehicleIDsAggregate,
}

var vehicleColumns = []string{
	"id", "user_id", "nickname", "license_plate", "make", "model", "year",
	"color", "fuel_types", "active", "photo_path", "created_at", "updated_at",
}

var tripVehicleColumns = []string{"id", "trip_id", "vehicle_id", "user_id", "created_at"}

var segmentColumns = []string{
	"id", "trip_id", "vehicle_id", "user_id", "start_km", "end_km", "started_at", "ended_at",
}

// buildSelectTripsQuery selects the user's trips, or one trip when tripID
// is not empty.
func buildSelectTripsQuery(userID int64, tripID string) (string, []any, error) {
	builder := psql.Select(tripColumns...).
		From("trips t").
		LeftJoin("trip_vehicles tv ON tv.trip_id = t.id").
		Where(sq.Eq{"t.user_id": userID})

	if tripID != "" {
		builder = builder.Where(sq.Eq{"t.id": tripID})
	}

	query, args, err := builder.GroupBy("t.id").OrderBy("t.created_at DESC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertTripQuery(trip models.Trip) (string, []any, error) {
	origin, err := jsonOrNull(trip.Origin)
	if err != nil {
		return "", nil, err
	}
	destination, err := jsonOrNull(trip.Destination)
	if err != nil {
		return "", nil, err
	}

	query, args, err := psql.Insert("trips").
		Columns("id", "user_id", "name", "departure_at", "arrival_at", "origin", "destination", "status", "notes").
		Values(trip.ID, trip.UserID, trip.Name, trip.DepartureAt, trip.ArrivalAt, origin, destination, string(trip.Status), trip.Notes).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateTripQuery sets only the fields present in update.
func buildUpdateTripQuery(userID int64, tripID string, update models.TripUpdate) (string, []any, error) {
	set := map[string]any{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.DepartureAt != nil {
		set["departure_at"] = *update.DepartureAt
	}
	if update.ArrivalAt != nil {
		set["arrival_at"] = *update.ArrivalAt
	}
	if update.Origin != nil {
		v, err := jsonOrNull(update.Origin)
		if err != nil {
			return "", nil, err
		}
		set["origin"] = v
	}
	if update.Destination != nil {
		v, err := jsonOrNull(update.Destination)
		if err != nil {
			return "", nil, err
		}
		set["destination"] = v
	}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Notes != nil {
		set["notes"] = *update.Notes
	}

	return buildUpdateQuery("trips", set, userID, tripID)
}

func buildSelectVehiclesQuery(userID int64, vehicleID string) (string, []any, error) {
	builder := psql.Select(vehicleColumns...).
		From("vehicles").
		Where(sq.Eq{"user_id": userID})

	if vehicleID != "" {
		builder = builder.Where(sq.Eq{"id": vehicleID})
	}

	query, args, err := builder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertVehicleQuery(vehicle models.Vehicle) (string, []any, error) {
	fuels, err := json.Marshal(nonNil(models.NormalizeFuelTypes(vehicle.FuelTypes)))
	if err != nil {
		return "", nil, fmt.Errorf("%w: fuel types: %w", ErrEncodingValue, err)
	}

	query, args, err := psql.Insert("vehicles").
		Columns("id", "user_id", "nickname", "license_plate", "make", "model", "year", "color", "fuel_types", "active", "photo_path").
		Values(vehicle.ID, vehicle.UserID, vehicle.Nickname, vehicle.LicensePlate, vehicle.Make, vehicle.Model,
			vehicle.Year, vehicle.Color, fuels, vehicle.Active, vehicle.PhotoPath).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateVehicleQuery(userID int64, vehicleID string, update models.VehicleUpdate) (string, []any, error) {
	set := map[string]any{}
	if update.Nickname != nil {
		set["nickname"] = *update.Nickname
	}
	if update.LicensePlate != nil {
		set["license_plate"] = *update.LicensePlate
	}
	if update.Make != nil {
		set["make"] = *update.Make
	}
	if update.Model != nil {
		set["model"] = *update.Model
	}
	if update.Year != nil {
		set["year"] = *update.Year
	}
	if update.Color != nil {
		set["color"] = *update.Color
	}
	if update.FuelTypes != nil {
		fuels, err := json.Marshal(nonNil(models.NormalizeFuelTypes(*update.FuelTypes)))
		if err != nil {
			return "", nil, fmt.Errorf("%w: fuel types: %w", ErrEncodingValue, err)
		}
		set["fuel_types"] = fuels
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}
	if update.PhotoPath != nil {
		set["photo_path"] = *update.PhotoPath
	}

	return buildUpdateQuery("vehicles", set, userID, vehicleID)
}

// buildUpdateQuery updates one owned row and bumps updated_at. Columns are
// emitted in alphabetical order.
func buildUpdateQuery(table string, set map[string]any, userID int64, id string) (string, []any, error) {
	if len(set) == 0 {
		return "", nil, fmt.Errorf("%w: nothing to update", ErrBuildingSQLQuery)
	}

	query, args, err := psql.Update(table).
		SetMap(set).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildDeleteOwnedQuery deletes rows of table owned by userID matching eq.
func buildDeleteOwnedQuery(table string, userID int64, eq sq.Eq) (string, []any, error) {
	query, args, err := psql.Delete(table).
		Where(sq.Eq{"user_id": userID}).
		Where(eq).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSelectOwnedQuery selects columns of table owned by userID, optionally
// filtered by eq.
func buildSelectOwnedQuery(table string, columns []string, userID int64, eq sq.Eq, orderBy string) (string, []any, error) {
	builder := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID})

	if len(eq) > 0 {
		builder = builder.Where(eq)
	}

	query, args, err := builder.OrderBy(orderBy).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertSegmentQuery(segment models.OdometerSegment) (string, []any, error) {
	query, args, err := psql.Insert("odometer_segments").
		Columns("id", "trip_id", "vehicle_id", "user_id", "start_km", "end_km", "started_at", "ended_at").
		Values(segment.ID, segment.TripID, segment.VehicleID, segment.UserID, segment.StartKm, segment.EndKm, segment.StartedAt, segment.EndedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFinishSegmentQuery(userID int64, segmentID string, endKm float64, endedAt any) (string, []any, error) {
	query, args, err := psql.Update("odometer_segments").
		Set("end_km", endKm).
		Set("ended_at", endedAt).
		Where(sq.Eq{"id": segmentID}).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.Eq{"end_km": nil}).
		Suffix("RETURNING " + strings.Join(segmentColumns, ", ")).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// jsonOrNull encodes v as JSON; nil pointers become SQL NULL.
func jsonOrNull[T any](v *T) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingValue, err)
	}
	return b, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
