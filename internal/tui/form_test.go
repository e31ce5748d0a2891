package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/models"
)

func TestTripForm(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		wantErr  error
		wantTrip func(t *testing.T, trip models.Trip)
	}{
		{
			name:    "name is required",
			values:  []string{"  ", "", "", ""},
			wantErr: errNameRequired,
		},
		{
			name:    "bad departure",
			values:  []string{"Coast", "tomorrow", "", ""},
			wantErr: errBadDate,
		},
		{
			name:   "times become RFC 3339",
			values: []string{"Coast", "2026-05-03 09:30", "", "by the sea"},
			wantTrip: func(t *testing.T, trip models.Trip) {
				want := time.Date(2026, 5, 3, 9, 30, 0, 0, time.Local).Format(time.RFC3339)
				assert.Equal(t, "Coast", trip.Name)
				assert.Equal(t, want, trip.DepartureAt)
				assert.Empty(t, trip.ArrivalAt)
				assert.Equal(t, "by the sea", trip.Notes)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTripForm(nil)
			for i, v := range tt.values {
				f.inputs[i].SetValue(v)
			}

			trip, err := f.trip()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.wantTrip(t, trip)
		})
	}
}

func TestTripForm_Edit(t *testing.T) {
	departure := time.Date(2026, 5, 3, 9, 30, 0, 0, time.Local).Format(time.RFC3339)
	f := newTripForm(&models.Trip{ID: "trip-1", Name: "Coast", DepartureAt: departure, Notes: "n"})

	assert.Equal(t, "trip-1", f.editID)
	assert.Equal(t, "2026-05-03 09:30", f.inputs[1].Value())

	f.inputs[0].SetValue("Mountains")
	update, err := f.tripUpdate()
	require.NoError(t, err)
	require.NotNil(t, update.Name)
	assert.Equal(t, "Mountains", *update.Name)
	assert.Equal(t, departure, *update.DepartureAt)
}

func TestVehicleForm(t *testing.T) {
	f := newVehicleForm(nil)
	f.inputs[0].SetValue("Daily")
	f.inputs[1].SetValue("abc1d23")
	f.inputs[4].SetValue("2019")
	f.inputs[5].SetValue("Diesel, gasoline,,")

	vehicle, err := f.vehicle()
	require.NoError(t, err)
	assert.Equal(t, "Daily", vehicle.Nickname)
	assert.Equal(t, "ABC1D23", vehicle.LicensePlate)
	assert.Equal(t, 2019, vehicle.Year)
	assert.True(t, vehicle.Active)
	assert.Equal(t, []models.FuelType{models.FuelDiesel, models.FuelGasoline}, vehicle.FuelTypes)

	f.inputs[4].SetValue("new")
	_, err = f.vehicle()
	assert.ErrorIs(t, err, errBadYear)
}

func TestVehicleForm_Edit(t *testing.T) {
	f := newVehicleForm(&models.Vehicle{ID: "v1", Nickname: "Daily", Year: 2019, FuelTypes: []models.FuelType{models.FuelCNG, models.FuelGasoline}})

	assert.Equal(t, "v1", f.editID)
	assert.Equal(t, "2019", f.inputs[4].Value())
	assert.Equal(t, "cng,gasoline", f.inputs[5].Value())
}

func TestSegmentForm_Km(t *testing.T) {
	f := newSegmentStartForm("trip-1", models.Vehicle{ID: "v1", Nickname: "Daily"})

	f.inputs[0].SetValue("12345,6")
	km, err := f.km()
	require.NoError(t, err)
	assert.InDelta(t, 12345.6, km, 1e-9)

	for _, bad := range []string{"", "far", "-1"} {
		f.inputs[0].SetValue(bad)
		_, err = f.km()
		assert.ErrorIs(t, err, errBadKm, bad)
	}
}
