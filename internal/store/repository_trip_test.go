package store

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type sequenceIDs struct {
	ids []string
}

func (s *sequenceIDs) Generate() string {
	id := s.ids[0]
	s.ids = s.ids[1:]
	return id
}

var tripRowColumns = []string{
	"id", "user_id", "name", "departure_at", "arrival_at", "origin", "destination",
	"status", "notes", "created_at", "updated_at", "vehicle_ids",
}

const selectTripsSQL = "FROM trips t LEFT JOIN trip_vehicles tv ON tv.trip_id = t.id WHERE t.user_id = $1"

func TestListTrips(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(selectTripsSQL + " GROUP BY t.id ORDER BY t.created_at DESC")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(tripRowColumns).
			AddRow("srv-2", 7, "Mountains", "2026-03-01T09:00:00Z", "", nil, nil, "ongoing", "", now, now, []byte(`[]`)).
			AddRow("srv-1", 7, "Beach", "", "2026-02-02T18:00:00Z", []byte(`{"lat":-23.5,"lng":-46.6,"label":"Home"}`), nil, "completed", "sunny", now, now, []byte(`["veh-1","veh-2"]`)))

	trips, err := repo.ListTrips(testContext(), 7)
	require.NoError(t, err)
	require.Len(t, trips, 2)

	assert.Equal(t, "srv-2", trips[0].ID)
	assert.Nil(t, trips[0].Origin)
	assert.Equal(t, []string{}, trips[0].VehicleIDs)

	assert.Equal(t, models.TripStatusCompleted, trips[1].Status)
	assert.Equal(t, &models.Location{Lat: -23.5, Lng: -46.6, Label: "Home"}, trips[1].Origin)
	assert.Equal(t, []string{"veh-1", "veh-2"}, trips[1].VehicleIDs)
	assert.Equal(t, int64(7), trips[1].UserID)
}

func TestListTrips_TemporaryFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

	mock.ExpectQuery("FROM trips t").WillReturnError(pgError(pgerrcode.SerializationFailure))

	_, err := repo.ListTrips(testContext(), 7)
	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, ErrTemporary)
}

func TestGetTrip_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

	mock.ExpectQuery(regexp.QuoteMeta(selectTripsSQL+" AND t.id = $2")).
		WithArgs(int64(7), "srv-9").
		WillReturnRows(sqlmock.NewRows(tripRowColumns))

	_, err := repo.GetTrip(testContext(), 7, "srv-9")
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestCreateTrip_LinksKnownVehicles(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTripRepository(db, &sequenceIDs{ids: []string{"link-1", "link-2"}}, logger.Nop())

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	trip := models.Trip{
		ID:         "srv-1",
		UserID:     7,
		Name:       "Beach",
		Origin:     &models.Location{Lat: 1, Lng: 2},
		Status:     models.TripStatusOngoing,
		VehicleIDs: []string{"veh-1", "veh-gone"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO trips").
		WithArgs("srv-1", int64(7), "Beach", "", "", []byte(`{"lat":1,"lng":2}`), nil, "ongoing", "").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery("INSERT INTO trip_vehicles").
		WithArgs("link-1", "srv-1", "veh-1", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("link-1", now))
	mock.ExpectQuery("INSERT INTO trip_vehicles").
		WithArgs("link-2", "srv-1", "veh-gone", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))
	mock.ExpectCommit()

	created, err := repo.CreateTrip(testContext(), trip)
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, []string{"veh-1"}, created.VehicleIDs)
}

func TestCreateTrip_InsertFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO trips").WillReturnError(pgError(pgerrcode.CheckViolation))
	mock.ExpectRollback()

	_, err := repo.CreateTrip(testContext(), models.Trip{ID: "srv-1", UserID: 7, Name: "Beach", Status: "flying"})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestUpdateTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	name := "Beach"
	status := models.TripStatusCompleted

	t.Run("partial update then read", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta("UPDATE trips SET name = $1, status = $2, updated_at = now() WHERE id = $3 AND user_id = $4")).
			WithArgs("Beach", "completed", "srv-1", int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("FROM trips t").
			WithArgs(int64(7), "srv-1").
			WillReturnRows(sqlmock.NewRows(tripRowColumns).
				AddRow("srv-1", 7, "Beach", "", "", nil, nil, "completed", "", now, now, []byte(`["veh-1"]`)))

		trip, err := repo.UpdateTrip(testContext(), 7, "srv-1", models.TripUpdate{Name: &name, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "Beach", trip.Name)
		assert.Equal(t, models.TripStatusCompleted, trip.Status)
		assert.Equal(t, []string{"veh-1"}, trip.VehicleIDs)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

		mock.ExpectExec("UPDATE trips").WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.UpdateTrip(testContext(), 7, "srv-1", models.TripUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrTripNotFound)
	})

	t.Run("empty update only reads", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

		mock.ExpectQuery("FROM trips t").
			WithArgs(int64(7), "srv-1").
			WillReturnRows(sqlmock.NewRows(tripRowColumns).
				AddRow("srv-1", 7, "Beach", "", "", nil, nil, "ongoing", "", now, now, []byte(`[]`)))

		trip, err := repo.UpdateTrip(testContext(), 7, "srv-1", models.TripUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "srv-1", trip.ID)
	})
}

func TestDeleteTrip(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trips WHERE user_id = $1 AND id = $2")).
			WithArgs(int64(7), "srv-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteTrip(testContext(), 7, "srv-1"))
	})

	t.Run("other user's trip", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

		mock.ExpectExec("DELETE FROM trips").
			WithArgs(int64(8), "srv-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteTrip(testContext(), 8, "srv-1"), ErrTripNotFound)
	})

	t.Run("driver error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewTripRepository(db, &sequenceIDs{}, logger.Nop())

		mock.ExpectExec("DELETE FROM trips").WillReturnError(sql.ErrConnDone)

		assert.ErrorIs(t, repo.DeleteTrip(testContext(), 8, "srv-1"), ErrExecutingStatement)
	})
}
