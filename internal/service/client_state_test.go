package service

import (
	"testing"

	"github.com/MKhiriev/go-trip-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientState_GettersReturnCopies(t *testing.T) {
	s := NewClientState()
	s.SetTrips([]models.Trip{{ID: "t1", VehicleIDs: []string{"v1"}}})

	trips := s.Trips()
	trips[0].VehicleIDs[0] = "changed"
	trips[0].Name = "changed"

	got, ok := s.Trip("t1")
	require.True(t, ok)
	assert.Equal(t, []string{"v1"}, got.VehicleIDs)
	assert.Empty(t, got.Name)
}

func TestClientState_UpsertPrependsNew(t *testing.T) {
	s := NewClientState()
	s.UpsertTrip(models.Trip{ID: "t1", Name: "old"})
	s.UpsertTrip(models.Trip{ID: "t2"})
	s.UpsertTrip(models.Trip{ID: "t1", Name: "new"})

	trips := s.Trips()
	require.Len(t, trips, 2)
	assert.Equal(t, "t2", trips[0].ID)
	assert.Equal(t, "new", trips[1].Name)
}

func TestClientState_ReplaceTripID(t *testing.T) {
	tests := []struct {
		name  string
		trips []models.Trip
		want  []string
	}{
		{
			name:  "placeholder rewritten",
			trips: []models.Trip{{ID: "local-1"}, {ID: "t2"}},
			want:  []string{"srv-1", "t2"},
		},
		{
			name:  "server id already loaded",
			trips: []models.Trip{{ID: "local-1"}, {ID: "srv-1"}},
			want:  []string{"srv-1"},
		},
		{
			name:  "placeholder gone",
			trips: []models.Trip{{ID: "t2"}},
			want:  []string{"t2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewClientState()
			s.SetTrips(tt.trips)
			s.ReplaceTripID("local-1", "srv-1")

			ids := make([]string, 0)
			for _, trip := range s.Trips() {
				ids = append(ids, trip.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestClientState_ReplaceVehicleID(t *testing.T) {
	s := NewClientState()
	s.SetSnapshot(models.CacheSnapshot{
		Trips: []models.Trip{
			{ID: "t1", VehicleIDs: []string{"local-v", "v2"}},
			{ID: "t2", VehicleIDs: []string{"srv-v", "local-v"}},
		},
		Vehicles: []models.Vehicle{{ID: "local-v", SyncStatus: models.SyncStatusPending}},
	})

	s.ReplaceVehicleID("local-v", "srv-v")

	v, ok := s.Vehicle("srv-v")
	require.True(t, ok)
	assert.Equal(t, models.SyncStatusSynced, v.SyncStatus)

	trips := s.Trips()
	assert.Equal(t, []string{"srv-v", "v2"}, trips[0].VehicleIDs)
	assert.Equal(t, []string{"srv-v"}, trips[1].VehicleIDs)
}

func TestClientState_RemoveVehicleStripsTrips(t *testing.T) {
	s := NewClientState()
	s.SetSnapshot(models.CacheSnapshot{
		Trips:    []models.Trip{{ID: "t1", VehicleIDs: []string{"v1", "v2"}}},
		Vehicles: []models.Vehicle{{ID: "v1"}, {ID: "v2"}},
	})

	assert.True(t, s.RemoveVehicle("v1"))
	assert.False(t, s.RemoveVehicle("v9"))

	trip, _ := s.Trip("t1")
	assert.Equal(t, []string{"v2"}, trip.VehicleIDs)
	assert.Len(t, s.Vehicles(), 1)
}

func TestClientState_SubscribeCoalesces(t *testing.T) {
	s := NewClientState()
	ch, unsubscribe := s.Subscribe()

	s.UpsertTrip(models.Trip{ID: "t1"})
	s.UpsertTrip(models.Trip{ID: "t2"})
	s.UpdateSyncStatus(func(st *models.SyncStatus) { st.Pending = 2 })

	_, open := <-ch
	assert.True(t, open)
	select {
	case <-ch:
		t.Fatal("signals must coalesce")
	default:
	}

	unsubscribe()
	unsubscribe()
	_, open = <-ch
	assert.False(t, open)

	s.Reset()
	assert.Empty(t, s.Trips())
	assert.True(t, s.SyncStatus().Idle())
	assert.Zero(t, s.SyncStatus().Pending)
}
