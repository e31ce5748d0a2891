package tui

import (
	"errors"
	"time"

	"github.com/MKhiriev/go-trip-keeper/models"
)

// inputTimeLayout is how dates are typed in forms.
const inputTimeLayout = "2006-01-02 15:04"

var (
	errNameRequired = errors.New("название обязательно")
	errBadDate      = errors.New("дата в формате ГГГГ-ММ-ДД ЧЧ:ММ")
)

func newTripForm(trip *models.Trip) formModel {
	f := newFormModel(formTrip, "НОВАЯ ПОЕЗДКА", []string{"Название", "Отправление", "Прибытие", "Заметки"})
	f.inputs[1].Placeholder = inputTimeLayout
	f.inputs[2].Placeholder = inputTimeLayout
	if trip == nil {
		f.inputs[1].SetValue(time.Now().Format(inputTimeLayout))
		return f
	}

	f.title = "ПОЕЗДКА: " + trip.Name
	f.editID = trip.ID
	f.inputs[0].SetValue(trip.Name)
	f.inputs[1].SetValue(displayTime(trip.DepartureAt))
	f.inputs[2].SetValue(displayTime(trip.ArrivalAt))
	f.inputs[3].SetValue(trip.Notes)
	return f
}

// trip reads a new trip from the form.
func (f formModel) trip() (models.Trip, error) {
	u, err := f.tripUpdate()
	if err != nil {
		return models.Trip{}, err
	}
	var trip models.Trip
	u.ApplyTo(&trip)
	return trip, nil
}

// tripUpdate reads every field of the form as an update.
func (f formModel) tripUpdate() (models.TripUpdate, error) {
	name := f.value(0)
	if name == "" {
		return models.TripUpdate{}, errNameRequired
	}
	departure, err := parseInputTime(f.value(1))
	if err != nil {
		return models.TripUpdate{}, err
	}
	arrival, err := parseInputTime(f.value(2))
	if err != nil {
		return models.TripUpdate{}, err
	}
	notes := f.value(3)

	return models.TripUpdate{Name: &name, DepartureAt: &departure, ArrivalAt: &arrival, Notes: &notes}, nil
}

// parseInputTime turns a typed local time into RFC 3339. Empty stays empty.
func parseInputTime(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	t, err := time.ParseInLocation(inputTimeLayout, v, time.Local)
	if err != nil {
		return "", errBadDate
	}
	return t.Format(time.RFC3339), nil
}

func displayTime(v string) string {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return v
	}
	return t.Local().Format(inputTimeLayout)
}
