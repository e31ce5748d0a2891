package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func (h *Handler) listTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	trips, err := h.services.TripService.ListTrips(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "error listing trips")
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	utils.WriteJSON(w, trips, http.StatusOK)
}

func (h *Handler) createTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var trip models.Trip
	if err := utils.ReadJSON(r, &trip); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	created, err := h.services.TripService.CreateTrip(r.Context(), userID, trip)
	if err != nil {
		writeError(w, r, err, "error creating trip")
		return
	}
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var update models.TripUpdate
	if err := utils.ReadJSON(r, &update); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	updated, err := h.services.TripService.UpdateTrip(r.Context(), userID, chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, r, err, "error updating trip")
		return
	}
	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.TripService.DeleteTrip(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "error deleting trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// tripsUpdate is the function form of PATCH /api/trips/{id}.
func (h *Handler) tripsUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := functionUserID(w, r)
	if !ok {
		return
	}

	var req models.TripsUpdateRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeFunctionError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	trip, err := h.services.TripService.UpdateTrip(r.Context(), userID, req.ID, req.Update)
	if err != nil {
		writeFunctionError(w, r, err, "error updating trip")
		return
	}
	utils.WriteJSON(w, models.TripResponse{FunctionResponse: functionOK, Trip: &trip}, http.StatusOK)
}
