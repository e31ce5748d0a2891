package adapter

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-trip-keeper/models"
)

func (h *httpServerAdapter) ListTrips(ctx context.Context) ([]models.Trip, error) {
	return call[[]models.Trip](ctx, h, http.MethodGet, "/api/trips", nil)
}

func (h *httpServerAdapter) CreateTrip(ctx context.Context, trip models.Trip) (models.Trip, error) {
	return call[models.Trip](ctx, h, http.MethodPost, "/api/trips", trip)
}

func (h *httpServerAdapter) UpdateTrip(ctx context.Context, id string, update models.TripUpdate) (models.Trip, error) {
	return call[models.Trip](ctx, h, http.MethodPatch, "/api/trips/"+url.PathEscape(id), update)
}

func (h *httpServerAdapter) DeleteTrip(ctx context.Context, id string) error {
	_, err := call[struct{}](ctx, h, http.MethodDelete, "/api/trips/"+url.PathEscape(id), nil)
	return err
}

func (h *httpServerAdapter) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return call[[]models.Vehicle](ctx, h, http.MethodGet, "/api/vehicles", nil)
}

func (h *httpServerAdapter) CreateVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	// sync status is client bookkeeping
	vehicle.SyncStatus = ""
	return call[models.Vehicle](ctx, h, http.MethodPost, "/api/vehicles", vehicle)
}

func (h *httpServerAdapter) UpdateVehicle(ctx context.Context, id string, update models.VehicleUpdate) (models.Vehicle, error) {
	return call[models.Vehicle](ctx, h, http.MethodPatch, "/api/vehicles/"+url.PathEscape(id), update)
}

func (h *httpServerAdapter) DeleteVehicle(ctx context.Context, id string) error {
	_, err := call[struct{}](ctx, h, http.MethodDelete, "/api/vehicles/"+url.PathEscape(id), nil)
	return err
}

// UploadVehiclePhoto sends the raw image as the request body. Photos are not
// covered by the body hash.
func (h *httpServerAdapter) UploadVehiclePhoto(ctx context.Context, vehicleID, contentType string, photo io.Reader) (models.Vehicle, error) {
	path := vehiclePhotoPath(vehicleID)

	req, err := h.request(ctx, nil)
	if err != nil {
		return models.Vehicle{}, err
	}
	resp, err := req.
		SetHeader("Content-Type", contentType).
		SetBody(photo).
		Post(path)
	return decode[models.Vehicle](h, http.MethodPost, path, resp, err)
}

func (h *httpServerAdapter) VehiclePhotoURL(ctx context.Context, vehicleID string) (models.PhotoURLResponse, error) {
	return call[models.PhotoURLResponse](ctx, h, http.MethodGet, vehiclePhotoPath(vehicleID), nil)
}

func (h *httpServerAdapter) DeleteVehiclePhoto(ctx context.Context, vehicleID string) (models.Vehicle, error) {
	return call[models.Vehicle](ctx, h, http.MethodDelete, vehiclePhotoPath(vehicleID), nil)
}

func (h *httpServerAdapter) ListTripVehicles(ctx context.Context, tripID string) ([]models.TripVehicle, error) {
	return call[[]models.TripVehicle](ctx, h, http.MethodGet, tripVehiclesPath(tripID), nil)
}

func (h *httpServerAdapter) LinkVehicle(ctx context.Context, tripID, vehicleID string) (models.TripVehicle, error) {
	body := models.TripVehicle{TripID: tripID, VehicleID: vehicleID}
	return call[models.TripVehicle](ctx, h, http.MethodPost, tripVehiclesPath(tripID), body)
}

func (h *httpServerAdapter) UnlinkVehicle(ctx context.Context, tripID, vehicleID string) (int64, error) {
	body := models.TripVehiclesDeleteRequest{TripID: tripID, VehicleID: vehicleID}
	resp, err := call[models.TripVehiclesDeleteResponse](ctx, h, http.MethodPost, "/trip-vehicles-delete", body)
	if err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

func (h *httpServerAdapter) ListSegments(ctx context.Context, tripID string) ([]models.OdometerSegment, error) {
	return call[[]models.OdometerSegment](ctx, h, http.MethodGet, tripSegmentsPath(tripID), nil)
}

func (h *httpServerAdapter) StartSegment(ctx context.Context, segment models.OdometerSegment) (models.OdometerSegment, error) {
	return call[models.OdometerSegment](ctx, h, http.MethodPost, tripSegmentsPath(segment.TripID), segment)
}

func (h *httpServerAdapter) FinishSegment(ctx context.Context, segmentID string, finish models.SegmentFinish) (models.OdometerSegment, error) {
	return call[models.OdometerSegment](ctx, h, http.MethodPatch, "/api/segments/"+url.PathEscape(segmentID), finish)
}

func (h *httpServerAdapter) DeleteSegment(ctx context.Context, segmentID string) error {
	_, err := call[struct{}](ctx, h, http.MethodDelete, "/api/segments/"+url.PathEscape(segmentID), nil)
	return err
}

func vehiclePhotoPath(vehicleID string) string {
	return "/api/vehicles/" + url.PathEscape(vehicleID) + "/photo"
}

func tripVehiclesPath(tripID string) string {
	return "/api/trips/" + url.PathEscape(tripID) + "/vehicles"
}

func tripSegmentsPath(tripID string) string {
	return "/api/trips/" + url.PathEscape(tripID) + "/segments"
}
