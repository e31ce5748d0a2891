package models

import "time"

// ChangeTable names the tables whose changes are published to clients.
type ChangeTable string

const (
	ChangeTrips        ChangeTable = "trips"
	ChangeVehicles     ChangeTable = "vehicles"
	ChangeTripVehicles ChangeTable = "trip_vehicles"
	ChangeSegments     ChangeTable = "odometer_segments"
)

// ChangeAction is the kind of row change.
type ChangeAction string

const (
	ChangeInsert ChangeAction = "INSERT"
	ChangeUpdate ChangeAction = "UPDATE"
	ChangeDelete ChangeAction = "DELETE"
)

// ChangeEvent is one row change streamed to a user's subscribed clients.
type ChangeEvent struct {
	Table    ChangeTable  `json:"table"`
	Action   ChangeAction `json:"action"`
	RecordID string       `json:"record_id"`
	UserID   int64        `json:"-"`
	At       time.Time    `json:"at"`
}

// ChangeSubscription is the request message of the change feed stream.
// Empty Tables means every table.
type ChangeSubscription struct {
	Tables []ChangeTable `json:"tables,omitempty"`
}

// Wants reports whether the subscription covers table.
func (s ChangeSubscription) Wants(table ChangeTable) bool {
	if len(s.Tables) == 0 {
		return true
	}
	for _, t := range s.Tables {
		if t == table {
			return true
		}
	}
	return false
}
