package tui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/models"
)

const statusRefreshInterval = time.Second

type tab int

const (
	tabTrips tab = iota
	tabVehicles
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
	screenConfirm
	screenPicker
)

type tripDetail struct {
	trip     models.Trip
	vehicles []models.Vehicle
	segments []models.OdometerSegment
	idx      int
	loading  bool
}

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	conn     service.Connectivity

	changes     <-chan struct{}
	unsubscribe func()

	tab      tab
	trips    []models.Trip
	vehicles []models.Vehicle
	idx      int
	loading  bool

	screen     screen
	detail     tripDetail
	form       formModel
	formReturn screen
	confirm    confirmModel
	pickIdx    int

	spinner spinner.Model
	syncing bool
	sync    models.SyncStatus
	online  bool
	status  string
	errMsg  string

	logout    bool
	logoutErr error
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, conn service.Connectivity) mainLoopModel {
	changes, unsubscribe := services.State.Subscribe()

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	return mainLoopModel{
		ctx:         ctx,
		services:    services,
		conn:        conn,
		changes:     changes,
		unsubscribe: unsubscribe,
		trips:       services.State.Trips(),
		vehicles:    services.State.Vehicles(),
		loading:     true,
		spinner:     s,
		sync:        services.SyncService.Status(),
		online:      conn.Online(),
	}
}

// stop releases the state subscription.
func (m mainLoopModel) stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoad(), waitForChange(m.changes), tickStatus(), m.spinner.Tick)
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "Показаны локальные данные: " + humanizeError(msg.err)
		}
		m.trips, m.vehicles = msg.trips, msg.vehicles
		m.idx = clamp(m.idx, m.listLen())
		return m, nil

	case stateChangedMsg:
		m.trips = m.services.State.Trips()
		m.vehicles = m.services.State.Vehicles()
		m.idx = clamp(m.idx, m.listLen())
		if m.screen == screenDetail {
			if trip, ok := m.services.State.Trip(m.detail.trip.ID); ok {
				m.detail.trip = trip
			}
		}
		return m, waitForChange(m.changes)

	case statusTickMsg:
		m.sync = m.services.SyncService.Status()
		m.online = m.conn.Online()
		return m, tickStatus()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case syncDoneMsg:
		m.syncing = false
		switch {
		case errors.Is(msg.err, service.ErrSyncInProgress):
			m.status = humanizeError(msg.err)
		case msg.err != nil:
			m.errMsg = humanizeError(msg.err)
		default:
			m.status = "Синхронизировано"
		}
		return m, m.cmdLoad()

	case retryDoneMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "Возвращено в очередь: " + strconv.Itoa(msg.count)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			if m.screen == screenForm {
				m.form.errMsg = humanizeError(msg.err)
				return m, nil
			}
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = msg.status
		if m.screen == screenForm || m.screen == screenConfirm || m.screen == screenPicker {
			m.screen = m.formReturn
		}
		if m.screen == screenDetail {
			return m, tea.Batch(m.cmdLoad(), m.cmdDetail(m.detail.trip.ID))
		}
		return m, m.cmdLoad()

	case detailLoadedMsg:
		if msg.tripID != m.detail.trip.ID {
			return m, nil
		}
		m.detail.loading = false
		if msg.err != nil {
			m.status = humanizeError(msg.err)
		}
		m.detail.vehicles, m.detail.segments = msg.vehicles, msg.segments
		m.detail.idx = clamp(m.detail.idx, len(m.detail.vehicles))
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.status = "Ссылка на фото скопирована"
		return m, nil

	case logoutDoneMsg:
		m.logout = true
		m.logoutErr = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == screenForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m mainLoopModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.errMsg != "" {
		if key.Matches(msg, keys.enter, keys.esc) {
			m.errMsg = ""
		}
		return m, nil
	}

	switch m.screen {
	case screenForm:
		return m.handleFormKey(msg)
	case screenConfirm:
		switch {
		case key.Matches(msg, keys.yes):
			return m, m.confirm.action
		case key.Matches(msg, keys.no):
			m.screen = m.confirm.back
		}
		return m, nil
	case screenPicker:
		return m.handlePickerKey(msg)
	case screenDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m mainLoopModel) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, keys.quit):
		return m, tea.Quit
	case key.Matches(msg, keys.tab):
		m.tab = (m.tab + 1) % 2
		m.idx = 0
	case key.Matches(msg, keys.up):
		m.idx = clamp(m.idx-1, m.listLen())
	case key.Matches(msg, keys.down):
		m.idx = clamp(m.idx+1, m.listLen())
	case key.Matches(msg, keys.newItem):
		if m.tab == tabTrips {
			return m.openForm(newTripForm(nil), screenList)
		}
		return m.openForm(newVehicleForm(nil), screenList)
	case key.Matches(msg, keys.edit):
		if trip, ok := m.currentTrip(); ok {
			return m.openForm(newTripForm(&trip), screenList)
		}
		if vehicle, ok := m.currentVehicle(); ok {
			return m.openForm(newVehicleForm(&vehicle), screenList)
		}
	case key.Matches(msg, keys.delete):
		if trip, ok := m.currentTrip(); ok {
			m.confirm = confirmModel{message: trip.Name, action: m.cmdDeleteTrip(trip.ID), back: screenList}
			m.screen, m.formReturn = screenConfirm, screenList
		}
		if vehicle, ok := m.currentVehicle(); ok {
			m.confirm = confirmModel{message: vehicle.Nickname, action: m.cmdDeleteVehicle(vehicle.ID), back: screenList}
			m.screen, m.formReturn = screenConfirm, screenList
		}
	case key.Matches(msg, keys.enter):
		if trip, ok := m.currentTrip(); ok {
			m.screen = screenDetail
			m.detail = tripDetail{trip: trip, loading: true}
			return m, m.cmdDetail(trip.ID)
		}
	case key.Matches(msg, keys.copy):
		if vehicle, ok := m.currentVehicle(); ok {
			return m, m.cmdCopyPhotoURL(vehicle.ID)
		}
	case key.Matches(msg, keys.sync):
		if !m.syncing {
			m.syncing = true
			return m, m.cmdSync()
		}
	case key.Matches(msg, keys.retry):
		return m, m.cmdRetry()
	case key.Matches(msg, keys.logout):
		return m, m.cmdLogout()
	}
	return m, nil
}

func (m mainLoopModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	tripID := m.detail.trip.ID

	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenList
	case key.Matches(msg, keys.up):
		m.detail.idx = clamp(m.detail.idx-1, len(m.detail.vehicles))
	case key.Matches(msg, keys.down):
		m.detail.idx = clamp(m.detail.idx+1, len(m.detail.vehicles))
	case key.Matches(msg, keys.edit):
		trip := m.detail.trip
		return m.openForm(newTripForm(&trip), screenDetail)
	case key.Matches(msg, keys.link):
		if len(m.linkable()) > 0 {
			m.screen, m.formReturn, m.pickIdx = screenPicker, screenDetail, 0
		} else {
			m.status = "Нет автомобилей для добавления"
		}
	case key.Matches(msg, keys.unlink):
		if vehicle, ok := m.detailVehicle(); ok {
			m.formReturn = screenDetail
			return m, m.cmdSave("Автомобиль отвязан", func(ctx context.Context) error {
				_, err := m.services.TripVehicleService.Unlink(ctx, tripID, vehicle.ID)
				return err
			})
		}
	case key.Matches(msg, keys.start):
		if vehicle, ok := m.detailVehicle(); ok {
			return m.openForm(newSegmentStartForm(tripID, vehicle), screenDetail)
		}
	case key.Matches(msg, keys.finish):
		vehicle, ok := m.detailVehicle()
		if !ok {
			return m, nil
		}
		if segment, open := openSegment(m.detail.segments, vehicle.ID); open {
			return m.openForm(newSegmentFinishForm(segment, vehicle), screenDetail)
		}
		m.status = "Нет открытого отрезка"
	case key.Matches(msg, keys.complete):
		status := models.TripStatusCompleted
		m.formReturn = screenDetail
		return m, m.cmdSave("Поездка завершена", func(ctx context.Context) error {
			_, err := m.services.TripService.Update(ctx, tripID, models.TripUpdate{Status: &status})
			return err
		})
	}
	return m, nil
}

func (m mainLoopModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	candidates := m.linkable()

	switch {
	case key.Matches(msg, keys.esc):
		m.screen = screenDetail
	case key.Matches(msg, keys.up):
		m.pickIdx = clamp(m.pickIdx-1, len(candidates))
	case key.Matches(msg, keys.down):
		m.pickIdx = clamp(m.pickIdx+1, len(candidates))
	case key.Matches(msg, keys.enter):
		if m.pickIdx >= len(candidates) {
			return m, nil
		}
		tripID, vehicleID := m.detail.trip.ID, candidates[m.pickIdx].ID
		return m, m.cmdSave("Автомобиль добавлен", func(ctx context.Context) error {
			_, err := m.services.TripVehicleService.Link(ctx, tripID, vehicleID)
			return err
		})
	}
	return m, nil
}

func (m mainLoopModel) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.esc):
		m.screen = m.formReturn
		return m, nil
	case key.Matches(msg, keys.enter):
		cmd, err := m.submitForm()
		if err != nil {
			m.form.errMsg = err.Error()
			return m, nil
		}
		m.form.errMsg = ""
		return m, cmd
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m mainLoopModel) openForm(f formModel, back screen) (tea.Model, tea.Cmd) {
	m.form = f
	m.screen = screenForm
	m.formReturn = back
	return m, f.inputs[0].Focus()
}

// submitForm validates the form and returns the command saving it.
func (m mainLoopModel) submitForm() (tea.Cmd, error) {
	f := m.form
	s := m.services

	switch f.kind {
	case formTrip:
		if f.editID == "" {
			trip, err := f.trip()
			if err != nil {
				return nil, err
			}
			return m.cmdSave("Поездка создана", func(ctx context.Context) error {
				_, err := s.TripService.Create(ctx, trip)
				return err
			}), nil
		}
		update, err := f.tripUpdate()
		if err != nil {
			return nil, err
		}
		return m.cmdSave("Поездка сохранена", func(ctx context.Context) error {
			_, err := s.TripService.Update(ctx, f.editID, update)
			return err
		}), nil

	case formVehicle:
		if f.editID == "" {
			vehicle, err := f.vehicle()
			if err != nil {
				return nil, err
			}
			return m.cmdSave("Автомобиль создан", func(ctx context.Context) error {
				_, err := s.VehicleService.Create(ctx, vehicle)
				return err
			}), nil
		}
		update, err := f.vehicleUpdate()
		if err != nil {
			return nil, err
		}
		return m.cmdSave("Автомобиль сохранён", func(ctx context.Context) error {
			_, err := s.VehicleService.Update(ctx, f.editID, update)
			return err
		}), nil

	case formSegmentStart:
		km, err := f.km()
		if err != nil {
			return nil, err
		}
		segment := models.OdometerSegment{TripID: f.tripID, VehicleID: f.vehicleID, StartKm: km}
		return m.cmdSave("Отрезок начат", func(ctx context.Context) error {
			_, err := s.TripVehicleService.StartSegment(ctx, segment)
			return err
		}), nil

	default:
		km, err := f.km()
		if err != nil {
			return nil, err
		}
		return m.cmdSave("Отрезок завершён", func(ctx context.Context) error {
			_, err := s.TripVehicleService.FinishSegment(ctx, f.editID, models.SegmentFinish{EndKm: km})
			return err
		}), nil
	}
}

func (m mainLoopModel) listLen() int {
	if m.tab == tabTrips {
		return len(m.trips)
	}
	return len(m.vehicles)
}

func (m mainLoopModel) currentTrip() (models.Trip, bool) {
	if m.tab != tabTrips || m.idx >= len(m.trips) {
		return models.Trip{}, false
	}
	return m.trips[m.idx], true
}

func (m mainLoopModel) currentVehicle() (models.Vehicle, bool) {
	if m.tab != tabVehicles || m.idx >= len(m.vehicles) {
		return models.Vehicle{}, false
	}
	return m.vehicles[m.idx], true
}

func (m mainLoopModel) detailVehicle() (models.Vehicle, bool) {
	if m.detail.idx >= len(m.detail.vehicles) {
		return models.Vehicle{}, false
	}
	return m.detail.vehicles[m.detail.idx], true
}

// linkable lists the vehicles not yet linked to the detail trip.
func (m mainLoopModel) linkable() []models.Vehicle {
	var out []models.Vehicle
	for _, v := range m.vehicles {
		if !m.detail.trip.HasVehicle(v.ID) {
			out = append(out, v)
		}
	}
	return out
}

func openSegment(segments []models.OdometerSegment, vehicleID string) (models.OdometerSegment, bool) {
	for _, s := range segments {
		if s.VehicleID == vehicleID && s.Open() {
			return s, true
		}
	}
	return models.OdometerSegment{}, false
}

// clamp keeps a cursor inside [0, n).
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

func tickStatus() tea.Cmd {
	return tea.Tick(statusRefreshInterval, func(time.Time) tea.Msg { return statusTickMsg{} })
}

func (m mainLoopModel) cmdLoad() tea.Cmd {
	ctx, s := m.ctx, m.services
	return func() tea.Msg {
		trips, err := s.TripService.List(ctx)
		vehicles, vErr := s.VehicleService.List(ctx)
		return listLoadedMsg{trips: trips, vehicles: vehicles, err: errors.Join(err, vErr)}
	}
}

func (m mainLoopModel) cmdDetail(tripID string) tea.Cmd {
	ctx, s := m.ctx, m.services
	return func() tea.Msg {
		vehicles, err := s.TripVehicleService.Vehicles(ctx, tripID)
		segments, sErr := s.TripVehicleService.Segments(ctx, tripID)
		return detailLoadedMsg{tripID: tripID, vehicles: vehicles, segments: segments, err: errors.Join(err, sErr)}
	}
}

func (m mainLoopModel) cmdSave(status string, save func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return savedMsg{status: status, err: save(ctx)}
	}
}

func (m mainLoopModel) cmdDeleteTrip(id string) tea.Cmd {
	return m.cmdSave("Поездка удалена", func(ctx context.Context) error {
		return m.services.TripService.Delete(ctx, id)
	})
}

func (m mainLoopModel) cmdDeleteVehicle(id string) tea.Cmd {
	return m.cmdSave("Автомобиль удалён", func(ctx context.Context) error {
		return m.services.VehicleService.Delete(ctx, id)
	})
}

func (m mainLoopModel) cmdSync() tea.Cmd {
	ctx, s := m.ctx, m.services
	return func() tea.Msg {
		return syncDoneMsg{err: s.SyncService.RunCycle(ctx)}
	}
}

func (m mainLoopModel) cmdRetry() tea.Cmd {
	ctx, s := m.ctx, m.services
	return func() tea.Msg {
		n, err := s.SyncService.RetryFailed(ctx)
		if err == nil && n > 0 {
			s.SyncService.Trigger(ctx)
		}
		return retryDoneMsg{count: n, err: err}
	}
}

func (m mainLoopModel) cmdCopyPhotoURL(vehicleID string) tea.Cmd {
	ctx, s := m.ctx, m.services
	return func() tea.Msg {
		resp, err := s.VehicleService.PhotoURL(ctx, vehicleID)
		if err != nil {
			return copiedMsg{err: err}
		}
		return copiedMsg{err: clipboard.WriteAll(resp.URL)}
	}
}

func (m mainLoopModel) cmdLogout() tea.Cmd {
	ctx, s := m.ctx, m.services
	return func() tea.Msg {
		return logoutDoneMsg{err: s.AuthService.SignOut(ctx)}
	}
}
