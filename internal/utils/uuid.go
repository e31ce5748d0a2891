package utils

import (
	"github.com/MKhiriev/go-trip-keeper/models"
	"github.com/google/uuid"
)

// IDGenerator issues identifiers for new rows.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator issues time-ordered (v7) identifiers for server rows.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewLocalID returns a client placeholder id for an entity created offline.
func NewLocalID() string {
	return models.LocalIDPrefix + uuid.NewString()
}

// NewTraceID returns a random request trace id.
func NewTraceID() string {
	return uuid.NewString()
}
