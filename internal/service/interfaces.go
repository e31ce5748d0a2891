package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-trip-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AppInfoService reports the build of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) models.VersionResponse
}

type AuthService interface {
	// SignUp creates the account and returns its first access token.
	SignUp(ctx context.Context, user models.User) (models.AuthResponse, error)
	SignIn(ctx context.Context, user models.User) (models.AuthResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	GetUser(ctx context.Context, userID int64) (models.User, error)
	// UpdateUser applies update; a new password is re-hashed.
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
}

type TripService interface {
	ListTrips(ctx context.Context, userID int64) ([]models.Trip, error)
	CreateTrip(ctx context.Context, userID int64, trip models.Trip) (models.Trip, error)
	UpdateTrip(ctx context.Context, userID int64, tripID string, update models.TripUpdate) (models.Trip, error)
	DeleteTrip(ctx context.Context, userID int64, tripID string) error
}

type VehicleService interface {
	ListVehicles(ctx context.Context, userID int64) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, userID int64, vehicle models.Vehicle) (models.Vehicle, error)
	UpdateVehicle(ctx context.Context, userID int64, vehicleID string, update models.VehicleUpdate) (models.Vehicle, error)
	DeleteVehicle(ctx context.Context, userID int64, vehicleID string) error

	// UploadPhoto stores body as the vehicle photo, replacing the previous one.
	UploadPhoto(ctx context.Context, userID int64, vehicleID, contentType string, body io.Reader, size int64) (models.Vehicle, error)
	PhotoURL(ctx context.Context, userID int64, vehicleID string) (models.PhotoURLResponse, error)
	DeletePhoto(ctx context.Context, userID int64, vehicleID string) (models.Vehicle, error)
}

type TripVehicleService interface {
	ListTripVehicles(ctx context.Context, userID int64, tripID string) ([]models.TripVehicle, error)
	LinkVehicle(ctx context.Context, userID int64, link models.TripVehicle) (models.TripVehicle, error)
	// UnlinkVehicle detaches vehicleID from the trip, or every vehicle when
	// vehicleID is empty.
	UnlinkVehicle(ctx context.Context, userID int64, tripID, vehicleID string) (int64, error)

	ListSegments(ctx context.Context, userID int64, tripID string) ([]models.OdometerSegment, error)
	StartSegment(ctx context.Context, userID int64, segment models.OdometerSegment) (models.OdometerSegment, error)
	FinishSegment(ctx context.Context, userID int64, segmentID string, finish models.SegmentFinish) (models.OdometerSegment, error)
	DeleteSegment(ctx context.Context, userID int64, segmentID string) error
}

type AccountService interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	// DeleteAccount removes the user, their rows and their photos at once.
	DeleteAccount(ctx context.Context, userID int64) error
	ExportData(ctx context.Context, userID int64, format models.ExportFormat) (models.ExportResponse, error)

	SendWelcome(ctx context.Context, req models.NotificationRequest) error
	SendPasswordChanged(ctx context.Context, req models.NotificationRequest) error
}

// ChangeBroker fans row changes out to the subscribed clients of their owner.
type ChangeBroker interface {
	// Publish never blocks; slow subscribers lose events.
	Publish(ctx context.Context, event models.ChangeEvent)
	// Subscribe returns the event channel and a cancel func that closes it.
	Subscribe(userID int64, sub models.ChangeSubscription) (<-chan models.ChangeEvent, func())
}

// Mailer delivers transactional mail.
type Mailer interface {
	Send(ctx context.Context, mail models.Mail) error
}

// TripServiceWrapper defines middleware composition for TripService.
// Implementations wrap an existing TripService to add behavior such as
// validating.
type TripServiceWrapper interface {
	Wrap(TripService) TripService // returns a decorated TripService applying additional behavior
}

// VehicleServiceWrapper is the VehicleService counterpart of TripServiceWrapper.
type VehicleServiceWrapper interface {
	Wrap(VehicleService) VehicleService
}
