package models

import "time"

// CacheSnapshot is the last-known state of both collections kept on disk for
// offline reads. Trips and Vehicles are never nil after a load.
type CacheSnapshot struct {
	Trips    []Trip    `json:"trips"`
	Vehicles []Vehicle `json:"vehicles"`
}

// SyncStatus exposes the two observable phases of a sync cycle.
// Both flags are false when the orchestrator is idle and never both true.
type SyncStatus struct {
	Foreground bool `json:"foreground"`
	Background bool `json:"background"`

	LastRunAt   time.Time `json:"last_run_at,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	Pending     int       `json:"pending"`
	FailedItems int       `json:"failed_items"`
}

// Idle reports whether no cycle is running.
func (s SyncStatus) Idle() bool {
	return !s.Foreground && !s.Background
}
