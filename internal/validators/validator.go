package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-trip-keeper/models"
)

// Field names accepted by Validate. They match the JSON names of the models.
const (
	FieldEmail    = "email"
	FieldName     = "name"
	FieldPassword = "password"
)

type structValidator struct {
	validate *validator.Validate
}

// NewValidator returns a [Validator] for the request and entity models.
// Pointers are dereferenced; any other non-struct value is rejected with
// ErrUnsupportedType.
func NewValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(tripDates, models.Trip{})
	v.RegisterStructValidation(updateDates, models.TripUpdate{})

	return &structValidator{validate: v}
}

func (s *structValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ErrUnsupportedType
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return ErrUnsupportedType
	}

	var err error
	if len(fields) == 0 {
		err = s.validate.StructCtx(ctx, value.Interface())
	} else {
		if err = knownFields(value.Type(), fields); err != nil {
			return err
		}
		err = s.validate.StructPartialCtx(ctx, value.Interface(), structFields(value.Type(), fields)...)
	}
	return formatError(err)
}

// knownFields checks that every JSON field name exists on t.
func knownFields(t reflect.Type, fields []string) error {
	for _, f := range fields {
		if _, ok := fieldByJSONName(t, f); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}
	return nil
}

// structFields maps JSON names to the Go field names StructPartial expects.
func structFields(t reflect.Type, fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		sf, _ := fieldByJSONName(t, f)
		out = append(out, sf.Name)
	}
	return out
}

func fieldByJSONName(t reflect.Type, name string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if strings.SplitN(sf.Tag.Get("json"), ",", 2)[0] == name {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

func formatError(err error) error {
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(out, ", "))
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "email":
		return fmt.Sprintf("field '%s' must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of [%s]", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("field '%s' must be an RFC3339 date-time", fe.Field())
	case "arrival":
		return ErrArrivalBeforeDeparture.Error()
	case "gtefield":
		return ErrSegmentEndBeforeStart.Error()
	}
	return fmt.Sprintf("field '%s' failed validation for '%s'", fe.Field(), fe.Tag())
}

// tripDates rejects trips that arrive before they depart.
func tripDates(sl validator.StructLevel) {
	trip := sl.Current().Interface().(models.Trip)
	if arrivesBeforeDeparture(trip.DepartureAt, trip.ArrivalAt) {
		sl.ReportError(trip.ArrivalAt, "arrival_at", "ArrivalAt", "arrival", "")
	}
}

func updateDates(sl validator.StructLevel) {
	upd := sl.Current().Interface().(models.TripUpdate)
	if upd.DepartureAt == nil || upd.ArrivalAt == nil {
		return
	}
	if arrivesBeforeDeparture(*upd.DepartureAt, *upd.ArrivalAt) {
		sl.ReportError(upd.ArrivalAt, "arrival_at", "ArrivalAt", "arrival", "")
	}
}

func arrivesBeforeDeparture(departure, arrival string) bool {
	if departure == "" || arrival == "" {
		return false
	}
	d, err := time.Parse(time.RFC3339, departure)
	if err != nil {
		return false
	}
	a, err := time.Parse(time.RFC3339, arrival)
	if err != nil {
		return false
	}
	return a.Before(d)
}
