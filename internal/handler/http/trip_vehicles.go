package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func (h *Handler) listTripVehicles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	links, err := h.services.TripVehicleService.ListTripVehicles(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error listing trip vehicles")
		return
	}
	if links == nil {
		links = []models.TripVehicle{}
	}
	utils.WriteJSON(w, links, http.StatusOK)
}

// linkVehicle attaches a vehicle to the trip of the path; a trip id in the
// body is ignored.
func (h *Handler) linkVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var link models.TripVehicle
	if err := utils.ReadJSON(r, &link); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}
	link.TripID = chi.URLParam(r, "id")

	linked, err := h.services.TripVehicleService.LinkVehicle(r.Context(), userID, link)
	if err != nil {
		writeError(w, r, err, "error linking vehicle")
		return
	}
	utils.WriteJSON(w, linked, http.StatusCreated)
}

// tripVehiclesDelete detaches one vehicle, or all of them when no vehicle
// id is given.
func (h *Handler) tripVehiclesDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := functionUserID(w, r)
	if !ok {
		return
	}

	var req models.TripVehiclesDeleteRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeFunctionError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	deleted, err := h.services.TripVehicleService.UnlinkVehicle(r.Context(), userID, req.TripID, req.VehicleID)
	if err != nil {
		writeFunctionError(w, r, err, "error unlinking vehicles")
		return
	}
	utils.WriteJSON(w, models.TripVehiclesDeleteResponse{FunctionResponse: functionOK, Deleted: deleted}, http.StatusOK)
}

func (h *Handler) listSegments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	segments, err := h.services.TripVehicleService.ListSegments(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error listing segments")
		return
	}
	if segments == nil {
		segments = []models.OdometerSegment{}
	}
	utils.WriteJSON(w, segments, http.StatusOK)
}

func (h *Handler) startSegment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var segment models.OdometerSegment
	if err := utils.ReadJSON(r, &segment); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}
	segment.TripID = chi.URLParam(r, "id")

	started, err := h.services.TripVehicleService.StartSegment(r.Context(), userID, segment)
	if err != nil {
		writeError(w, r, err, "error starting segment")
		return
	}
	utils.WriteJSON(w, started, http.StatusCreated)
}

func (h *Handler) finishSegment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var finish models.SegmentFinish
	if err := utils.ReadJSON(r, &finish); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	finished, err := h.services.TripVehicleService.FinishSegment(r.Context(), userID, chi.URLParam(r, "id"), finish)
	if err != nil {
		writeError(w, r, err, "error finishing segment")
		return
	}
	utils.WriteJSON(w, finished, http.StatusOK)
}

func (h *Handler) deleteSegment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.TripVehicleService.DeleteSegment(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "error deleting segment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
