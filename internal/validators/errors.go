package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidInput wraps every rule violation; the message lists the
	// offending fields.
	ErrInvalidInput = errors.New("invalid input")

	ErrArrivalBeforeDeparture = errors.New("arrival_at is before departure_at")
	ErrSegmentEndBeforeStart  = errors.New("end_km is less than start_km")
)
