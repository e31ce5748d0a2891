package models

import (
	"fmt"
	"time"
)

// OperationKind discriminates queued mutations.
type OperationKind string

const (
	OpTripInsert    OperationKind = "trip_insert"
	OpTripUpdate    OperationKind = "trip_update"
	OpTripDelete    OperationKind = "trip_delete"
	OpVehicleInsert OperationKind = "vehicle_insert"
	OpVehicleUpdate OperationKind = "vehicle_update"
	OpVehicleDelete OperationKind = "vehicle_delete"
)

// OperationStatus is the replay state of a queued mutation.
type OperationStatus string

const (
	// OperationPending items are replayed on every sync cycle.
	OperationPending OperationStatus = "pending"
	// OperationFailed items reached the retry cap. They stay in the queue
	// for inspection and are no longer replayed.
	OperationFailed OperationStatus = "failed"
)

// PendingOperation is one mutation that could not reach the backend.
//
// Exactly one payload field is set and it must match Kind: Trip for
// trip_insert, TripUpdate for trip_update, Vehicle for vehicle_insert,
// VehicleUpdate for vehicle_update. Deletes carry no payload.
type PendingOperation struct {
	// Seq is assigned by the queue on enqueue and grows monotonically.
	Seq  int64         `json:"seq"`
	Kind OperationKind `json:"kind"`

	// EntityID is the local placeholder for inserts and the target id otherwise.
	EntityID string `json:"entity_id"`

	Trip          *Trip          `json:"trip,omitempty"`
	TripUpdate    *TripUpdate    `json:"trip_update,omitempty"`
	Vehicle       *Vehicle       `json:"vehicle,omitempty"`
	VehicleUpdate *VehicleUpdate `json:"vehicle_update,omitempty"`

	Retries    int             `json:"retries"`
	Status     OperationStatus `json:"status"`
	LastError  string          `json:"last_error,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

func NewTripInsert(trip Trip) PendingOperation {
	t := trip.Clone()
	return PendingOperation{Kind: OpTripInsert, EntityID: trip.ID, Trip: &t, Status: OperationPending}
}

func NewTripUpdate(id string, upd TripUpdate) PendingOperation {
	return PendingOperation{Kind: OpTripUpdate, EntityID: id, TripUpdate: &upd, Status: OperationPending}
}

func NewTripDelete(id string) PendingOperation {
	return PendingOperation{Kind: OpTripDelete, EntityID: id, Status: OperationPending}
}

func NewVehicleInsert(vehicle Vehicle) PendingOperation {
	v := vehicle.Clone()
	return PendingOperation{Kind: OpVehicleInsert, EntityID: vehicle.ID, Vehicle: &v, Status: OperationPending}
}

func NewVehicleUpdate(id string, upd VehicleUpdate) PendingOperation {
	return PendingOperation{Kind: OpVehicleUpdate, EntityID: id, VehicleUpdate: &upd, Status: OperationPending}
}

func NewVehicleDelete(id string) PendingOperation {
	return PendingOperation{Kind: OpVehicleDelete, EntityID: id, Status: OperationPending}
}

// IsInsert reports whether the operation creates an entity.
func (o PendingOperation) IsInsert() bool {
	return o.Kind == OpTripInsert || o.Kind == OpVehicleInsert
}

// IsTrip reports whether the operation targets a trip.
func (o PendingOperation) IsTrip() bool {
	switch o.Kind {
	case OpTripInsert, OpTripUpdate, OpTripDelete:
		return true
	}
	return false
}

// Failed reports whether the operation reached the retry cap.
func (o PendingOperation) Failed() bool {
	return o.Status == OperationFailed
}

// Validate checks that the payload matches the kind.
func (o PendingOperation) Validate() error {
	if o.EntityID == "" {
		return fmt.Errorf("%w: empty entity id", ErrMalformedOperation)
	}

	want := map[OperationKind]bool{
		OpTripInsert:    o.Trip != nil,
		OpTripUpdate:    o.TripUpdate != nil,
		OpVehicleInsert: o.Vehicle != nil,
		OpVehicleUpdate: o.VehicleUpdate != nil,
		OpTripDelete:    true,
		OpVehicleDelete: true,
	}
	ok, known := want[o.Kind]
	if !known {
		return fmt.Errorf("%w: unknown kind %q", ErrMalformedOperation, o.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: %s without payload", ErrMalformedOperation, o.Kind)
	}

	payloads := 0
	for _, set := range []bool{o.Trip != nil, o.TripUpdate != nil, o.Vehicle != nil, o.VehicleUpdate != nil} {
		if set {
			payloads++
		}
	}
	if (o.Kind == OpTripDelete || o.Kind == OpVehicleDelete) && payloads != 0 {
		return fmt.Errorf("%w: %s with payload", ErrMalformedOperation, o.Kind)
	}
	if payloads > 1 {
		return fmt.Errorf("%w: %s with %d payloads", ErrMalformedOperation, o.Kind, payloads)
	}
	return nil
}

// RewriteID replaces a reconciled placeholder with the server id. It reports
// whether anything changed. Only operations of the same entity type are
// touched; a trip's vehicle list is rewritten for vehicle placeholders.
func (o *PendingOperation) RewriteID(trip bool, oldID, newID string) bool {
	changed := false
	if o.IsTrip() == trip && o.EntityID == oldID {
		o.EntityID = newID
		changed = true
	}
	if trip && o.Trip != nil && o.Trip.ID == oldID {
		o.Trip.ID = newID
		changed = true
	}
	if !trip && o.Vehicle != nil && o.Vehicle.ID == oldID {
		o.Vehicle.ID = newID
		changed = true
	}
	if !trip && o.Trip != nil {
		for i, id := range o.Trip.VehicleIDs {
			if id == oldID {
				o.Trip.VehicleIDs[i] = newID
				changed = true
			}
		}
	}
	return changed
}
