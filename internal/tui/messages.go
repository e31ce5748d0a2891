package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-trip-keeper/models"
)

// NavigateTo switches the active page of [RootModel]. Payload, when set, is
// delivered to the new page instead of its Init command.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult finishes the login flow when Err is nil.
type LoginResult struct {
	Session models.Session
	Err     error
}

// quitRequested leaves the login flow like ctrl+c.
type quitRequested struct{}

type listLoadedMsg struct {
	trips    []models.Trip
	vehicles []models.Vehicle
	err      error
}

type stateChangedMsg struct{}

type detailLoadedMsg struct {
	tripID   string
	vehicles []models.Vehicle
	segments []models.OdometerSegment
	err      error
}

type savedMsg struct {
	status string
	err    error
}

type syncDoneMsg struct {
	err error
}

type retryDoneMsg struct {
	count int
	err   error
}

type copiedMsg struct {
	err error
}

type statusTickMsg struct{}

type logoutDoneMsg struct {
	err error
}
