package models

import "time"

// FunctionResponse is the envelope every account/function endpoint answers
// with. Error is set when OK is false.
type FunctionResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckEmailResponse struct {
	FunctionResponse
	Exists bool `json:"exists"`
}

// NotificationRequest is the body of the welcome and password-changed mails.
type NotificationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

// ExportFormat selects the encoding of an account export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportXLSX ExportFormat = "xlsx"
)

type ExportRequest struct {
	Format ExportFormat `json:"format,omitempty" validate:"omitempty,oneof=json xlsx"`
}

// UserExport is everything the backend stores about one user.
type UserExport struct {
	User         User              `json:"user"`
	Trips        []Trip            `json:"trips"`
	Vehicles     []Vehicle         `json:"vehicles"`
	TripVehicles []TripVehicle     `json:"trip_vehicles"`
	Segments     []OdometerSegment `json:"segments"`
	ExportedAt   time.Time         `json:"exported_at"`
}

type ExportResponse struct {
	FunctionResponse
	Data *UserExport `json:"data,omitempty"`

	// File holds the base64 encoded workbook for the xlsx format.
	File     string `json:"file,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// TripVehiclesDeleteRequest detaches one vehicle from a trip, or every
// vehicle when VehicleID is empty.
type TripVehiclesDeleteRequest struct {
	TripID    string `json:"trip_id" validate:"required"`
	VehicleID string `json:"vehicle_id,omitempty"`
}

type TripVehiclesDeleteResponse struct {
	FunctionResponse
	Deleted int64 `json:"deleted"`
}

type TripsUpdateRequest struct {
	ID     string     `json:"id" validate:"required"`
	Update TripUpdate `json:"update"`
}

type TripResponse struct {
	FunctionResponse
	Trip *Trip `json:"trip,omitempty"`
}

// VehiclesSaveRequest creates a vehicle when ID is empty and applies Update
// to an existing one otherwise.
type VehiclesSaveRequest struct {
	ID      string         `json:"id,omitempty"`
	Vehicle *Vehicle       `json:"vehicle,omitempty"`
	Update  *VehicleUpdate `json:"update,omitempty"`
}

type VehicleResponse struct {
	FunctionResponse
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// AuthResponse is returned by sign-up and sign-in.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// PhotoURLResponse carries a time-limited download url of a vehicle photo.
type PhotoURLResponse struct {
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
