package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func TestListTripVehicles(t *testing.T) {
	f := newFixture(t)
	f.signedIn(3)
	f.tripVehicles.EXPECT().ListTripVehicles(gomock.Any(), int64(3), "t1").Return(nil, nil)
	f.tripVehicles.EXPECT().ListTripVehicles(gomock.Any(), int64(3), "t2").Return(nil, store.ErrTripNotFound)

	rec := f.do(newRequest(t, http.MethodGet, "/api/trips/t1/vehicles", nil, 3))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = f.do(newRequest(t, http.MethodGet, "/api/trips/t2/vehicles", nil, 3))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLinkVehicle_TripFromPath(t *testing.T) {
	f := newFixture(t)
	f.signedIn(3)
	f.tripVehicles.EXPECT().LinkVehicle(gomock.Any(), int64(3), models.TripVehicle{TripID: "t1", VehicleID: "v1"}).
		Return(models.TripVehicle{ID: "l1", TripID: "t1", VehicleID: "v1"}, nil)

	rec := f.do(newRequest(t, http.MethodPost, "/api/trips/t1/vehicles", models.TripVehicle{TripID: "other", VehicleID: "v1"}, 3))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "l1", decodeBody[models.TripVehicle](t, rec).ID)
}

func TestLinkVehicle_UnknownVehicle(t *testing.T) {
	f := newFixture(t)
	f.signedIn(3)
	f.tripVehicles.EXPECT().LinkVehicle(gomock.Any(), int64(3), gomock.Any()).Return(models.TripVehicle{}, store.ErrInvalidReference)

	rec := f.do(newRequest(t, http.MethodPost, "/api/trips/t1/vehicles", models.TripVehicle{VehicleID: "ghost"}, 3))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTripVehiclesDeleteFunction(t *testing.T) {
	f := newFixture(t)
	f.signedIn(3)
	f.tripVehicles.EXPECT().UnlinkVehicle(gomock.Any(), int64(3), "t1", "").Return(int64(2), nil)

	rec := f.do(newRequest(t, http.MethodPost, "/trip-vehicles-delete", models.TripVehiclesDeleteRequest{TripID: "t1"}, 3))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.TripVehiclesDeleteResponse](t, rec)
	assert.True(t, resp.OK)
	assert.Equal(t, int64(2), resp.Deleted)
}

func TestTripVehiclesDeleteFunction_Unauthorized(t *testing.T) {
	f := newFixture(t)

	rec := f.do(newRequest(t, http.MethodPost, "/trip-vehicles-delete", models.TripVehiclesDeleteRequest{TripID: "t1"}, 0))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeBody[models.FunctionResponse](t, rec)
	assert.False(t, resp.OK)
	assert.Equal(t, ErrEmptyAuthorizationHeader.Error(), resp.Error)
}

func TestSegments(t *testing.T) {
	f := newFixture(t)
	f.signedIn(3)

	f.tripVehicles.EXPECT().ListSegments(gomock.Any(), int64(3), "t1").Return([]models.OdometerSegment{{ID: "s1"}}, nil)
	rec := f.do(newRequest(t, http.MethodGet, "/api/trips/t1/segments", nil, 3))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.OdometerSegment](t, rec), 1)

	f.tripVehicles.EXPECT().StartSegment(gomock.Any(), int64(3), models.OdometerSegment{TripID: "t1", VehicleID: "v1", StartKm: 10}).
		Return(models.OdometerSegment{ID: "s2", TripID: "t1"}, nil)
	rec = f.do(newRequest(t, http.MethodPost, "/api/trips/t1/segments", models.OdometerSegment{VehicleID: "v1", StartKm: 10}, 3))
	require.Equal(t, http.StatusCreated, rec.Code)

	f.tripVehicles.EXPECT().FinishSegment(gomock.Any(), int64(3), "s2", models.SegmentFinish{EndKm: 20}).Return(models.OdometerSegment{}, store.ErrSegmentClosed)
	rec = f.do(newRequest(t, http.MethodPatch, "/api/segments/s2", models.SegmentFinish{EndKm: 20}, 3))
	assert.Equal(t, http.StatusConflict, rec.Code)

	f.tripVehicles.EXPECT().DeleteSegment(gomock.Any(), int64(3), "s2").Return(nil)
	rec = f.do(newRequest(t, http.MethodDelete, "/api/segments/s2", nil, 3))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
