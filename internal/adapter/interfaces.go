// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the trip keeper backend.
//
// [ServerAdapter] decouples the client services from the REST protocol and
// [ChangeFeed] from the gRPC change stream. Error values defined in errors.go
// are mapped from HTTP status codes by mapHTTPError so that callers can use
// [errors.Is] for transport-agnostic error handling (e.g. [ErrNotFound] for
// 404, [ErrUnauthorized] for 401). Requests that never got a response wrap
// [ErrTransport].
package adapter

import (
	"context"
	"io"

	"github.com/MKhiriev/go-trip-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the backend. Implementations are
// responsible for serialisation, authentication header management, and
// mapping transport-level errors to the sentinel values of this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. An empty token signs the adapter out.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter.
	Token() string

	// Ping checks that the backend answers.
	Ping(ctx context.Context) error

	// SignUp creates an account and returns its first session. The token is
	// stored via SetToken.
	SignUp(ctx context.Context, user models.User) (models.AuthResponse, error)

	// SignIn exchanges credentials for a session. The token is stored via
	// SetToken.
	SignIn(ctx context.Context, user models.User) (models.AuthResponse, error)

	// GetUser returns the user owning the current token.
	GetUser(ctx context.Context) (models.User, error)

	// UpdateUser applies a partial update to the signed-in user.
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)

	ListTrips(ctx context.Context) ([]models.Trip, error)
	CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error)
	UpdateTrip(ctx context.Context, id string, update models.TripUpdate) (models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error

	ListVehicles(ctx context.Context) ([]models.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, update models.VehicleUpdate) (models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	// UploadVehiclePhoto replaces the photo of a vehicle and returns the
	// vehicle with its new photo path.
	UploadVehiclePhoto(ctx context.Context, vehicleID, contentType string, photo io.Reader) (models.Vehicle, error)

	// VehiclePhotoURL returns a time-limited download url of the photo.
	VehiclePhotoURL(ctx context.Context, vehicleID string) (models.PhotoURLResponse, error)

	DeleteVehiclePhoto(ctx context.Context, vehicleID string) (models.Vehicle, error)

	ListTripVehicles(ctx context.Context, tripID string) ([]models.TripVehicle, error)
	LinkVehicle(ctx context.Context, tripID, vehicleID string) (models.TripVehicle, error)

	// UnlinkVehicle detaches one vehicle, or every vehicle of the trip when
	// vehicleID is empty, and returns the number of removed links.
	UnlinkVehicle(ctx context.Context, tripID, vehicleID string) (int64, error)

	ListSegments(ctx context.Context, tripID string) ([]models.OdometerSegment, error)
	StartSegment(ctx context.Context, segment models.OdometerSegment) (models.OdometerSegment, error)
	FinishSegment(ctx context.Context, segmentID string, finish models.SegmentFinish) (models.OdometerSegment, error)
	DeleteSegment(ctx context.Context, segmentID string) error

	// CheckEmailExists reports whether an account uses email.
	CheckEmailExists(ctx context.Context, email string) (bool, error)

	// DeleteAccount removes the signed-in account and all of its data.
	DeleteAccount(ctx context.Context) error

	// ExportData returns everything stored for the signed-in account.
	ExportData(ctx context.Context, format models.ExportFormat) (models.ExportResponse, error)

	SendWelcome(ctx context.Context, req models.NotificationRequest) error
	SendPasswordChanged(ctx context.Context, req models.NotificationRequest) error
}

// ChangeFeed streams row changes of the signed-in user.
type ChangeFeed interface {
	// Subscribe opens a stream authenticated with token. The channel is
	// closed when the stream ends or ctx is cancelled.
	Subscribe(ctx context.Context, token string, sub models.ChangeSubscription) (<-chan models.ChangeEvent, error)

	Close() error
}
