package models

import (
	"slices"
	"time"
)

// VehicleSyncStatus tags a vehicle with its reconciliation state on the client.
// Trips carry no equivalent field.
type VehicleSyncStatus string

const (
	SyncStatusSynced  VehicleSyncStatus = "synced"
	SyncStatusPending VehicleSyncStatus = "pending"
	SyncStatusError   VehicleSyncStatus = "error"
)

// FuelType is one of the fuels a vehicle accepts.
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelEthanol  FuelType = "ethanol"
	FuelDiesel   FuelType = "diesel"
	FuelCNG      FuelType = "cng"
	FuelElectric FuelType = "electric"
)

// Vehicle is a user's vehicle.
type Vehicle struct {
	ID     string `json:"id"`
	UserID int64  `json:"-"`

	Nickname     string `json:"nickname" validate:"required,max=100"`
	LicensePlate string `json:"license_plate" validate:"max=16"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	Year         int    `json:"year,omitempty" validate:"omitempty,gte=1886,lte=2100"`
	Color        string `json:"color,omitempty"`

	// FuelTypes is a set; [NormalizeFuelTypes] keeps it sorted and unique.
	FuelTypes []FuelType `json:"fuel_types" validate:"dive,oneof=gasoline ethanol diesel cng electric"`

	Active bool `json:"active"`

	// PhotoPath is the object key of the vehicle photo, if any.
	PhotoPath *string `json:"photo_path,omitempty"`

	// SyncStatus is maintained by the client only; the server never stores it.
	SyncStatus VehicleSyncStatus `json:"sync_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of v.
func (v Vehicle) Clone() Vehicle {
	c := v
	c.FuelTypes = slices.Clone(v.FuelTypes)
	if v.PhotoPath != nil {
		p := *v.PhotoPath
		c.PhotoPath = &p
	}
	return c
}

// NormalizeFuelTypes sorts fuel types and removes duplicates.
func NormalizeFuelTypes(fuels []FuelType) []FuelType {
	out := slices.Clone(fuels)
	slices.Sort(out)
	return slices.Compact(out)
}

// VehicleUpdate is a partial update of a vehicle.
type VehicleUpdate struct {
	Nickname     *string     `json:"nickname,omitempty" validate:"omitempty,min=1,max=100"`
	LicensePlate *string     `json:"license_plate,omitempty" validate:"omitempty,max=16"`
	Make         *string     `json:"make,omitempty"`
	Model        *string     `json:"model,omitempty"`
	Year         *int        `json:"year,omitempty" validate:"omitempty,gte=1886,lte=2100"`
	Color        *string     `json:"color,omitempty"`
	FuelTypes    *[]FuelType `json:"fuel_types,omitempty"`
	Active       *bool       `json:"active,omitempty"`
	PhotoPath    *string     `json:"photo_path,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u VehicleUpdate) IsEmpty() bool {
	return u.Nickname == nil && u.LicensePlate == nil && u.Make == nil && u.Model == nil &&
		u.Year == nil && u.Color == nil && u.FuelTypes == nil && u.Active == nil && u.PhotoPath == nil
}

// ApplyTo copies every set field of u into v.
func (u VehicleUpdate) ApplyTo(v *Vehicle) {
	if u.Nickname != nil {
		v.Nickname = *u.Nickname
	}
	if u.LicensePlate != nil {
		v.LicensePlate = *u.LicensePlate
	}
	if u.Make != nil {
		v.Make = *u.Make
	}
	if u.Model != nil {
		v.Model = *u.Model
	}
	if u.Year != nil {
		v.Year = *u.Year
	}
	if u.Color != nil {
		v.Color = *u.Color
	}
	if u.FuelTypes != nil {
		v.FuelTypes = NormalizeFuelTypes(*u.FuelTypes)
	}
	if u.Active != nil {
		v.Active = *u.Active
	}
	if u.PhotoPath != nil {
		p := *u.PhotoPath
		v.PhotoPath = &p
	}
}
