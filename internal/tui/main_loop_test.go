package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-trip-keeper/internal/mock"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/models"
)

type loopMocks struct {
	trips        *mock.MockClientTripService
	vehicles     *mock.MockClientVehicleService
	tripVehicles *mock.MockClientTripVehicleService
	sync         *mock.MockClientSyncService
	auth         *mock.MockClientAuthService
	state        *service.ClientState
}

func newTestLoop(t *testing.T) (mainLoopModel, *loopMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := &loopMocks{
		trips:        mock.NewMockClientTripService(ctrl),
		vehicles:     mock.NewMockClientVehicleService(ctrl),
		tripVehicles: mock.NewMockClientTripVehicleService(ctrl),
		sync:         mock.NewMockClientSyncService(ctrl),
		auth:         mock.NewMockClientAuthService(ctrl),
		state:        service.NewClientState(),
	}
	conn := mock.NewMockConnectivity(ctrl)
	conn.EXPECT().Online().Return(true).AnyTimes()
	m.sync.EXPECT().Status().Return(models.SyncStatus{Pending: 2}).AnyTimes()

	m.state.SetTrips([]models.Trip{{ID: "trip-1", Name: "Coast", VehicleIDs: []string{"v1"}}})
	m.state.SetVehicles([]models.Vehicle{{ID: "v1", Nickname: "Daily"}, {ID: "v2", Nickname: "Van"}})

	services := &service.ClientServices{
		State:              m.state,
		AuthService:        m.auth,
		TripService:        m.trips,
		VehicleService:     m.vehicles,
		TripVehicleService: m.tripVehicles,
		SyncService:        m.sync,
	}
	loop := newMainLoopModel(context.Background(), services, conn)
	t.Cleanup(loop.stop)
	return loop, m
}

func press(t *testing.T, m mainLoopModel, k string) (mainLoopModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyPress(k))
	return next.(mainLoopModel), cmd
}

func deliver(t *testing.T, m mainLoopModel, msg tea.Msg) (mainLoopModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(mainLoopModel), cmd
}

func TestMainLoop_StartsFromState(t *testing.T) {
	m, _ := newTestLoop(t)

	assert.Len(t, m.trips, 1)
	assert.Len(t, m.vehicles, 2)
	assert.True(t, m.online)
	assert.Contains(t, m.View(), "Coast")
	assert.Contains(t, m.View(), "В очереди: 2")
}

func TestMainLoop_ListLoaded(t *testing.T) {
	m, _ := newTestLoop(t)

	m, _ = deliver(t, m, listLoadedMsg{
		trips: []models.Trip{{ID: "local-1", Name: "Offline trip"}},
		err:   service.ErrOffline,
	})

	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "Offline trip")
	assert.Contains(t, m.status, "локальные данные")
}

func TestMainLoop_Navigation(t *testing.T) {
	m, _ := newTestLoop(t)

	m, _ = press(t, m, "tab")
	assert.Equal(t, tabVehicles, m.tab)

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "j")
	assert.Equal(t, 1, m.idx, "cursor stops at the last row")

	m, _ = press(t, m, "k")
	assert.Equal(t, 0, m.idx)

	m, cmd := press(t, m, "q")
	assert.True(t, isQuit(cmd))
}

func TestMainLoop_CreateTrip(t *testing.T) {
	m, mocks := newTestLoop(t)

	m, _ = press(t, m, "n")
	require.Equal(t, screenForm, m.screen)
	require.Equal(t, formTrip, m.form.kind)

	// invalid input stays on the form
	m.form.inputs[0].SetValue("")
	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, errNameRequired.Error(), m.form.errMsg)

	m.form.inputs[0].SetValue("Mountains")
	m.form.inputs[1].SetValue("")
	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)

	mocks.trips.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, trip models.Trip) (models.Trip, error) {
			assert.Equal(t, "Mountains", trip.Name)
			trip.ID = "local-2"
			return trip, nil
		})
	msg := cmd()
	require.IsType(t, savedMsg{}, msg)

	m, cmd = deliver(t, m, msg)
	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, "Поездка создана", m.status)
	assert.NotNil(t, cmd, "list is reloaded")
}

func TestMainLoop_SaveErrorStaysOnForm(t *testing.T) {
	m, _ := newTestLoop(t)
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "e")
	require.Equal(t, formVehicle, m.form.kind)
	assert.Equal(t, "v1", m.form.editID)

	m, _ = deliver(t, m, savedMsg{err: service.ErrOffline})

	assert.Equal(t, screenForm, m.screen)
	assert.Equal(t, humanizeError(service.ErrOffline), m.form.errMsg)

	m, _ = press(t, m, "esc")
	assert.Equal(t, screenList, m.screen)
}

func TestMainLoop_DeleteTrip(t *testing.T) {
	m, mocks := newTestLoop(t)

	m, _ = press(t, m, "d")
	require.Equal(t, screenConfirm, m.screen)
	assert.Contains(t, m.View(), "Coast")

	m, _ = press(t, m, "n")
	assert.Equal(t, screenList, m.screen, "n cancels")

	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "y")
	require.NotNil(t, cmd)

	mocks.trips.EXPECT().Delete(gomock.Any(), "trip-1").Return(nil)
	m, _ = deliver(t, m, cmd())
	assert.Equal(t, screenList, m.screen)
	assert.Equal(t, "Поездка удалена", m.status)
}

func TestMainLoop_TripDetail(t *testing.T) {
	m, mocks := newTestLoop(t)

	m, cmd := press(t, m, "enter")
	require.Equal(t, screenDetail, m.screen)
	require.NotNil(t, cmd)

	end := 120.0
	mocks.tripVehicles.EXPECT().Vehicles(gomock.Any(), "trip-1").Return([]models.Vehicle{{ID: "v1", Nickname: "Daily"}}, nil)
	mocks.tripVehicles.EXPECT().Segments(gomock.Any(), "trip-1").Return([]models.OdometerSegment{
		{ID: "s1", TripID: "trip-1", VehicleID: "v1", StartKm: 100, EndKm: &end},
		{ID: "s2", TripID: "trip-1", VehicleID: "v1", StartKm: 120},
	}, nil)
	m, _ = deliver(t, m, cmd())

	view := m.View()
	assert.Contains(t, view, "Daily: 100.0 км → 120.0 км (20.0 км)")
	assert.Contains(t, view, "в пути")
	assert.Contains(t, view, "Итого: 20.0 км")

	// finishing picks the open segment of the selected vehicle
	m, _ = press(t, m, "f")
	require.Equal(t, formSegmentFinish, m.form.kind)
	assert.Equal(t, "s2", m.form.editID)

	m.form.inputs[0].SetValue("150")
	m, cmd = press(t, m, "enter")
	mocks.tripVehicles.EXPECT().FinishSegment(gomock.Any(), "s2", models.SegmentFinish{EndKm: 150}).Return(models.OdometerSegment{}, nil)
	m, cmd = deliver(t, m, cmd())
	assert.Equal(t, screenDetail, m.screen)
	assert.NotNil(t, cmd)
}

func TestMainLoop_LinkVehicle(t *testing.T) {
	m, mocks := newTestLoop(t)
	m, _ = press(t, m, "enter")
	m, _ = deliver(t, m, detailLoadedMsg{tripID: "trip-1", vehicles: []models.Vehicle{{ID: "v1", Nickname: "Daily"}}})

	m, _ = press(t, m, "a")
	require.Equal(t, screenPicker, m.screen)
	assert.Contains(t, m.View(), "Van")
	assert.NotContains(t, m.View(), "Daily", "linked vehicles are not offered")

	m, cmd := press(t, m, "enter")
	mocks.tripVehicles.EXPECT().Link(gomock.Any(), "trip-1", "v2").Return(models.Trip{}, nil)
	m, _ = deliver(t, m, cmd())

	assert.Equal(t, screenDetail, m.screen)
	assert.Equal(t, "Автомобиль добавлен", m.status)
}

func TestMainLoop_CompleteTrip(t *testing.T) {
	m, mocks := newTestLoop(t)
	m, _ = press(t, m, "enter")

	m, cmd := press(t, m, "C")
	require.NotNil(t, cmd)

	completed := models.TripStatusCompleted
	mocks.trips.EXPECT().Update(gomock.Any(), "trip-1", models.TripUpdate{Status: &completed}).Return(models.Trip{}, nil)
	m, _ = deliver(t, m, cmd())
	assert.Equal(t, "Поездка завершена", m.status)
}

func TestMainLoop_Sync(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus string
		wantErr    bool
	}{
		{name: "done", wantStatus: "Синхронизировано"},
		{name: "already running", err: service.ErrSyncInProgress, wantStatus: "Синхронизация уже идёт"},
		{name: "failed", err: errors.New("boom"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mocks := newTestLoop(t)

			m, cmd := press(t, m, "s")
			require.True(t, m.syncing)

			mocks.sync.EXPECT().RunCycle(gomock.Any()).Return(tt.err)
			m, _ = deliver(t, m, cmd())

			assert.False(t, m.syncing)
			assert.Equal(t, tt.wantStatus, m.status)
			assert.Equal(t, tt.wantErr, m.errMsg != "")
			if tt.wantErr {
				assert.Contains(t, m.View(), "Ошибка")
				m, _ = press(t, m, "enter")
				assert.Empty(t, m.errMsg)
			}
		})
	}
}

func TestMainLoop_RetryFailed(t *testing.T) {
	m, mocks := newTestLoop(t)

	m, cmd := press(t, m, "r")
	mocks.sync.EXPECT().RetryFailed(gomock.Any()).Return(3, nil)
	mocks.sync.EXPECT().Trigger(gomock.Any())
	m, _ = deliver(t, m, cmd())

	assert.Equal(t, "Возвращено в очередь: 3", m.status)
}

func TestMainLoop_Logout(t *testing.T) {
	m, mocks := newTestLoop(t)

	m, cmd := press(t, m, "L")
	mocks.auth.EXPECT().SignOut(gomock.Any()).Return(nil)
	m, cmd = deliver(t, m, cmd())

	assert.True(t, m.logout)
	assert.True(t, isQuit(cmd))
}

func TestMainLoop_StateChange(t *testing.T) {
	m, mocks := newTestLoop(t)

	mocks.state.UpsertTrip(models.Trip{ID: "trip-9", Name: "Pushed"})
	m, cmd := deliver(t, m, stateChangedMsg{})

	assert.Len(t, m.trips, 2)
	assert.NotNil(t, cmd, "keeps listening")
}
