package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MKhiriev/go-trip-keeper/models"
)

// Sheet names of the export workbook, in order.
const (
	sheetTrips        = "Trips"
	sheetVehicles     = "Vehicles"
	sheetTripVehicles = "TripVehicles"
	sheetSegments     = "Segments"
)

// exportWorkbook renders export as an xlsx workbook with one sheet per
// table. The first row of every sheet is the header.
func exportWorkbook(export models.UserExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{
			name:   sheetTrips,
			header: []any{"id", "name", "departure_at", "arrival_at", "origin", "destination", "status", "vehicle_ids", "notes", "created_at", "updated_at"},
			rows:   tripRows(export.Trips),
		},
		{
			name:   sheetVehicles,
			header: []any{"id", "nickname", "license_plate", "make", "model", "year", "color", "fuel_types", "active", "photo_path", "created_at", "updated_at"},
			rows:   vehicleRows(export.Vehicles),
		},
		{
			name:   sheetTripVehicles,
			header: []any{"id", "trip_id", "vehicle_id", "created_at"},
			rows:   tripVehicleRows(export.TripVehicles),
		},
		{
			name:   sheetSegments,
			header: []any{"id", "trip_id", "vehicle_id", "start_km", "end_km", "started_at", "ended_at"},
			rows:   segmentRows(export.Segments),
		},
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				return nil, fmt.Errorf("error renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("error creating sheet %s: %w", sheet.name, err)
		}

		if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
			return nil, fmt.Errorf("error writing %s header: %w", sheet.name, err)
		}
		for r, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			if err = f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return nil, fmt.Errorf("error writing %s row %d: %w", sheet.name, r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func tripRows(trips []models.Trip) [][]any {
	rows := make([][]any, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, []any{
			t.ID, t.Name, t.DepartureAt, t.ArrivalAt, locationLabel(t.Origin), locationLabel(t.Destination),
			string(t.Status), strings.Join(t.VehicleIDs, ","), t.Notes, formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
		})
	}
	return rows
}

func vehicleRows(vehicles []models.Vehicle) [][]any {
	rows := make([][]any, 0, len(vehicles))
	for _, v := range vehicles {
		fuels := make([]string, 0, len(v.FuelTypes))
		for _, f := range v.FuelTypes {
			fuels = append(fuels, string(f))
		}
		photo := ""
		if v.PhotoPath != nil {
			photo = *v.PhotoPath
		}
		rows = append(rows, []any{
			v.ID, v.Nickname, v.LicensePlate, v.Make, v.Model, v.Year, v.Color,
			strings.Join(fuels, ","), v.Active, photo, formatTime(v.CreatedAt), formatTime(v.UpdatedAt),
		})
	}
	return rows
}

func tripVehicleRows(links []models.TripVehicle) [][]any {
	rows := make([][]any, 0, len(links))
	for _, l := range links {
		rows = append(rows, []any{l.ID, l.TripID, l.VehicleID, formatTime(l.CreatedAt)})
	}
	return rows
}

func segmentRows(segments []models.OdometerSegment) [][]any {
	rows := make([][]any, 0, len(segments))
	for _, s := range segments {
		var endKm any = ""
		if s.EndKm != nil {
			endKm = *s.EndKm
		}
		endedAt := ""
		if s.EndedAt != nil {
			endedAt = formatTime(*s.EndedAt)
		}
		rows = append(rows, []any{s.ID, s.TripID, s.VehicleID, s.StartKm, endKm, formatTime(s.StartedAt), endedAt})
	}
	return rows
}

func locationLabel(l *models.Location) string {
	if l == nil {
		return ""
	}
	if l.Label != "" {
		return l.Label
	}
	return fmt.Sprintf("%.6f,%.6f", l.Lat, l.Lng)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
