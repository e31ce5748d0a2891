package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-trip-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// Connectivity is the online hint the client services act on. It is
// implemented by workers.ConnectivityObserver.
type Connectivity interface {
	Online() bool
	Subscribe() (<-chan bool, func())
}

// ClientSyncService drains the pending queue against the backend and
// refreshes the local state.
type ClientSyncService interface {
	// RunCycle runs one sync cycle: flush the queue in FIFO order, persist
	// the remainder once, then refresh trips and vehicles. It returns when
	// the cycle settles or when the foreground timeout fires, whichever
	// comes first; in the latter case the cycle continues in the background
	// and its errors are only logged. A call made while a cycle is running
	// returns [ErrSyncInProgress] and schedules one rerun.
	RunCycle(ctx context.Context) error

	// Trigger starts RunCycle without waiting for it.
	Trigger(ctx context.Context)

	// Status returns the observable phases of the current cycle.
	Status() models.SyncStatus

	// FailedOperations lists queued operations that reached the retry cap.
	FailedOperations(ctx context.Context) ([]models.PendingOperation, error)

	// RetryFailed moves failed operations back to pending and returns how
	// many were reset.
	RetryFailed(ctx context.Context) (int, error)

	// Wait blocks until triggered cycles and background continuations
	// have settled.
	Wait()
}

// ClientTripService is the trip part of the CRUD façade. Mutations go to the
// backend when a session exists and the client is online; otherwise they are
// applied to the local state, queued and cached.
type ClientTripService interface {
	List(ctx context.Context) ([]models.Trip, error)
	Create(ctx context.Context, trip models.Trip) (models.Trip, error)
	Update(ctx context.Context, id string, update models.TripUpdate) (models.Trip, error)
	Delete(ctx context.Context, id string) error
}

// ClientVehicleService is the vehicle part of the CRUD façade. Photo
// operations need the backend and return [ErrOffline] otherwise.
type ClientVehicleService interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Create(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error)
	Update(ctx context.Context, id string, update models.VehicleUpdate) (models.Vehicle, error)
	Delete(ctx context.Context, id string) error

	UploadPhoto(ctx context.Context, id, contentType string, photo io.Reader) (models.Vehicle, error)
	PhotoURL(ctx context.Context, id string) (models.PhotoURLResponse, error)
	DeletePhoto(ctx context.Context, id string) (models.Vehicle, error)
}

// ClientTripVehicleService links vehicles to trips and manages odometer
// segments. Offline links only change the trip's vehicle list; segments
// read empty and cannot be written offline.
type ClientTripVehicleService interface {
	Link(ctx context.Context, tripID, vehicleID string) (models.Trip, error)
	Unlink(ctx context.Context, tripID, vehicleID string) (models.Trip, error)
	UnlinkAll(ctx context.Context, tripID string) (models.Trip, error)

	// Vehicles resolves the linked vehicles of a trip from the local state.
	Vehicles(ctx context.Context, tripID string) ([]models.Vehicle, error)

	Segments(ctx context.Context, tripID string) ([]models.OdometerSegment, error)
	StartSegment(ctx context.Context, segment models.OdometerSegment) (models.OdometerSegment, error)
	FinishSegment(ctx context.Context, segmentID string, finish models.SegmentFinish) (models.OdometerSegment, error)
	DeleteSegment(ctx context.Context, segmentID string) error
}

// ClientAuthService manages the session of the client.
type ClientAuthService interface {
	SignUp(ctx context.Context, user models.User) (models.Session, error)
	SignIn(ctx context.Context, user models.User) (models.Session, error)
	SignOut(ctx context.Context) error

	// Session returns the current session, if any.
	Session() (models.Session, bool)

	// RestoreSession loads the persisted session without a network round
	// trip. It returns [ErrNoSession] or [ErrSessionExpired] when there is
	// nothing usable.
	RestoreSession(ctx context.Context) (models.Session, error)

	User(ctx context.Context) (models.User, error)
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)

	// OnAuthStateChange registers fn for auth events and returns a function
	// removing it.
	OnAuthStateChange(fn func(event models.AuthEvent, session models.Session)) func()
}

// ClientAccountService wraps the account endpoints.
type ClientAccountService interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)

	// DeleteAccount removes the account on the backend, then wipes the local
	// cache, queue and session.
	DeleteAccount(ctx context.Context) error

	ExportData(ctx context.Context, format models.ExportFormat) (models.ExportResponse, error)
}
