package models

import "time"

// TripVehicle links a vehicle to a trip. The pair (TripID, VehicleID) is unique.
type TripVehicle struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id" validate:"required"`
	VehicleID string    `json:"vehicle_id" validate:"required"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// OdometerSegment is a span of distance driven by one vehicle during a trip.
// EndKm and EndedAt stay nil while the segment is open.
type OdometerSegment struct {
	ID        string     `json:"id"`
	TripID    string     `json:"trip_id" validate:"required"`
	VehicleID string     `json:"vehicle_id" validate:"required"`
	UserID    int64      `json:"-"`
	StartKm   float64    `json:"start_km" validate:"gte=0"`
	EndKm     *float64   `json:"end_km,omitempty" validate:"omitempty,gtefield=StartKm"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Open reports whether the segment has not been finished yet.
func (s OdometerSegment) Open() bool {
	return s.EndKm == nil
}

// SegmentFinish closes an open segment.
type SegmentFinish struct {
	EndKm   float64    `json:"end_km" validate:"gte=0"`
	EndedAt *time.Time `json:"ended_at,omitempty"`
}
