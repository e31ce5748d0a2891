package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-trip-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a database error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// UpdateUser overwrites email, name and password hash of the user.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	// DeleteUser removes the user; owned rows go with it.
	DeleteUser(ctx context.Context, userID int64) error
}

type TripRepository interface {
	// ListTrips returns the user's trips, newest first, with VehicleIDs
	// aggregated from trip_vehicles.
	ListTrips(ctx context.Context, userID int64) ([]models.Trip, error)
	GetTrip(ctx context.Context, userID int64, tripID string) (models.Trip, error)
	// CreateTrip inserts the trip and links every vehicle in VehicleIDs.
	CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error)
	UpdateTrip(ctx context.Context, userID int64, tripID string, update models.TripUpdate) (models.Trip, error)
	DeleteTrip(ctx context.Context, userID int64, tripID string) error
}

type VehicleRepository interface {
	ListVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error)
	GetVehicle(ctx context.Context, userID int64, vehicleID string) (models.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error)
	UpdateVehicle(ctx context.Context, userID int64, vehicleID string, update models.VehicleUpdate) (models.Vehicle, error)
	// SetPhotoPath stores path as the vehicle photo; nil clears it.
	SetPhotoPath(ctx context.Context, userID int64, vehicleID string, path *string) error
	DeleteVehicle(ctx context.Context, userID int64, vehicleID string) error
}

type TripVehicleRepository interface {
	ListByTrip(ctx context.Context, userID int64, tripID string) ([]models.TripVehicle, error)
	ListByUser(ctx context.Context, userID int64) ([]models.TripVehicle, error)
	// Link is idempotent: linking an already linked pair returns the
	// existing row.
	Link(ctx context.Context, link models.TripVehicle) (models.TripVehicle, error)
	// Unlink removes the pair and reports how many rows were deleted.
	Unlink(ctx context.Context, userID int64, tripID, vehicleID string) (int64, error)
	UnlinkAll(ctx context.Context, userID int64, tripID string) (int64, error)
}

type SegmentRepository interface {
	ListByTrip(ctx context.Context, userID int64, tripID string) ([]models.OdometerSegment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.OdometerSegment, error)
	CreateSegment(ctx context.Context, segment models.OdometerSegment) (models.OdometerSegment, error)
	FinishSegment(ctx context.Context, userID int64, segmentID string, finish models.SegmentFinish) (models.OdometerSegment, error)
	DeleteSegment(ctx context.Context, userID int64, segmentID string) error
}

// PhotoStorage keeps vehicle photos as objects addressed by key.
type PhotoStorage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// SignedURL returns a download url valid for ttl and its expiry.
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, time.Time, error)
	Delete(ctx context.Context, key string) error
}
