package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-trip-keeper/models"
)

var (
	errBadYear = errors.New("год числом, например 2019")
	errBadKm   = errors.New("пробег числом, например 12345.6")
)

func newVehicleForm(vehicle *models.Vehicle) formModel {
	f := newFormModel(formVehicle, "НОВЫЙ АВТОМОБИЛЬ", []string{"Название", "Госномер", "Марка", "Модель", "Год", "Топливо"})
	f.inputs[5].Placeholder = "gasoline,diesel"
	if vehicle == nil {
		return f
	}

	f.title = "АВТОМОБИЛЬ: " + vehicle.Nickname
	f.editID = vehicle.ID
	f.inputs[0].SetValue(vehicle.Nickname)
	f.inputs[1].SetValue(vehicle.LicensePlate)
	f.inputs[2].SetValue(vehicle.Make)
	f.inputs[3].SetValue(vehicle.Model)
	if vehicle.Year != 0 {
		f.inputs[4].SetValue(strconv.Itoa(vehicle.Year))
	}
	f.inputs[5].SetValue(joinFuels(vehicle.FuelTypes))
	return f
}

func (f formModel) vehicle() (models.Vehicle, error) {
	u, err := f.vehicleUpdate()
	if err != nil {
		return models.Vehicle{}, err
	}
	vehicle := models.Vehicle{Active: true}
	u.ApplyTo(&vehicle)
	return vehicle, nil
}

func (f formModel) vehicleUpdate() (models.VehicleUpdate, error) {
	nickname := f.value(0)
	if nickname == "" {
		return models.VehicleUpdate{}, errNameRequired
	}
	plate := strings.ToUpper(f.value(1))
	mk, model := f.value(2), f.value(3)

	var year int
	if v := f.value(4); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return models.VehicleUpdate{}, errBadYear
		}
		year = y
	}
	fuels := splitFuels(f.value(5))

	return models.VehicleUpdate{
		Nickname:     &nickname,
		LicensePlate: &plate,
		Make:         &mk,
		Model:        &model,
		Year:         &year,
		FuelTypes:    &fuels,
	}, nil
}

func splitFuels(v string) []models.FuelType {
	fuels := []models.FuelType{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			fuels = append(fuels, models.FuelType(part))
		}
	}
	return fuels
}

func joinFuels(fuels []models.FuelType) string {
	parts := make([]string, len(fuels))
	for i, f := range fuels {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}

func newSegmentStartForm(tripID string, vehicle models.Vehicle) formModel {
	f := newFormModel(formSegmentStart, "СТАРТ ОТРЕЗКА: "+vehicle.Nickname, []string{"Одометр, км"})
	f.tripID = tripID
	f.vehicleID = vehicle.ID
	return f
}

func newSegmentFinishForm(segment models.OdometerSegment, vehicle models.Vehicle) formModel {
	f := newFormModel(formSegmentFinish, "ФИНИШ ОТРЕЗКА: "+vehicle.Nickname, []string{"Одометр, км"})
	f.editID = segment.ID
	f.tripID = segment.TripID
	f.vehicleID = segment.VehicleID
	return f
}

func (f formModel) km() (float64, error) {
	km, err := strconv.ParseFloat(strings.ReplaceAll(f.value(0), ",", "."), 64)
	if err != nil || km < 0 {
		return 0, errBadKm
	}
	return km, nil
}
