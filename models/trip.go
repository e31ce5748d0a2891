package models

import (
	"slices"
	"strings"
	"time"
)

// LocalIDPrefix marks identifiers fabricated by the client while offline.
// A placeholder is replaced by the server-issued id once the queued insert
// has been applied.
const LocalIDPrefix = "local-"

// IsLocalID reports whether id is a client-side placeholder.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// TripStatus is the lifecycle flag of a trip.
type TripStatus string

const (
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
)

// Location is a geographic point with an optional human-readable label.
type Location struct {
	Lat   float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng   float64 `json:"lng" validate:"gte=-180,lte=180"`
	Label string  `json:"label,omitempty"`
}

// Trip represents one journey owned by a user.
type Trip struct {
	// ID is either a server-issued opaque string or a placeholder that
	// starts with [LocalIDPrefix].
	ID     string `json:"id"`
	UserID int64  `json:"-"`

	Name string `json:"name" validate:"required,max=200"`

	// DepartureAt and ArrivalAt are RFC3339 date-time strings as entered by
	// the user. ArrivalAt is empty while the trip is ongoing.
	DepartureAt string `json:"departure_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ArrivalAt   string `json:"arrival_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`

	Origin      *Location `json:"origin,omitempty"`
	Destination *Location `json:"destination,omitempty"`

	Status TripStatus `json:"status" validate:"omitempty,oneof=ongoing completed"`

	// VehicleIDs lists vehicles linked to this trip. The server derives it
	// from trip_vehicles rows; offline links only touch this list.
	VehicleIDs []string `json:"vehicle_ids"`

	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasVehicle reports whether vehicleID is linked to the trip.
func (t Trip) HasVehicle(vehicleID string) bool {
	return slices.Contains(t.VehicleIDs, vehicleID)
}

// Clone returns a deep copy of t so callers can mutate slices freely.
func (t Trip) Clone() Trip {
	c := t
	c.VehicleIDs = slices.Clone(t.VehicleIDs)
	if t.Origin != nil {
		o := *t.Origin
		c.Origin = &o
	}
	if t.Destination != nil {
		d := *t.Destination
		c.Destination = &d
	}
	return c
}

// TripUpdate is a partial update of a trip. Only non-nil fields are applied.
type TripUpdate struct {
	Name        *string     `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	DepartureAt *string     `json:"departure_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	ArrivalAt   *string     `json:"arrival_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Origin      *Location   `json:"origin,omitempty"`
	Destination *Location   `json:"destination,omitempty"`
	Status      *TripStatus `json:"status,omitempty" validate:"omitempty,oneof=ongoing completed"`
	Notes       *string     `json:"notes,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u TripUpdate) IsEmpty() bool {
	return u.Name == nil && u.DepartureAt == nil && u.ArrivalAt == nil &&
		u.Origin == nil && u.Destination == nil && u.Status == nil && u.Notes == nil
}

// ApplyTo copies every set field of u into t.
func (u TripUpdate) ApplyTo(t *Trip) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.DepartureAt != nil {
		t.DepartureAt = *u.DepartureAt
	}
	if u.ArrivalAt != nil {
		t.ArrivalAt = *u.ArrivalAt
	}
	if u.Origin != nil {
		o := *u.Origin
		t.Origin = &o
	}
	if u.Destination != nil {
		d := *u.Destination
		t.Destination = &d
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Notes != nil {
		t.Notes = *u.Notes
	}
}
