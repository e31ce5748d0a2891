package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	vehicles, err := h.services.VehicleService.ListVehicles(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "error listing vehicles")
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	utils.WriteJSON(w, vehicles, http.StatusOK)
}

func (h *Handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var vehicle models.Vehicle
	if err := utils.ReadJSON(r, &vehicle); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	created, err := h.services.VehicleService.CreateVehicle(r.Context(), userID, vehicle)
	if err != nil {
		writeError(w, r, err, "error creating vehicle")
		return
	}
	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var update models.VehicleUpdate
	if err := utils.ReadJSON(r, &update); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	updated, err := h.services.VehicleService.UpdateVehicle(r.Context(), userID, chi.URLParam(r, "id"), update)
	if err != nil {
		writeError(w, r, err, "error updating vehicle")
		return
	}
	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.VehicleService.DeleteVehicle(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err, "error deleting vehicle")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// vehiclesSave creates the vehicle when the request has no id and updates
// it otherwise.
func (h *Handler) vehiclesSave(w http.ResponseWriter, r *http.Request) {
	userID, ok := functionUserID(w, r)
	if !ok {
		return
	}

	var req models.VehiclesSaveRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeFunctionError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	var (
		vehicle models.Vehicle
		err     error
	)
	switch {
	case req.ID == "" && req.Vehicle != nil:
		vehicle, err = h.services.VehicleService.CreateVehicle(r.Context(), userID, *req.Vehicle)
	case req.ID != "" && req.Update != nil:
		vehicle, err = h.services.VehicleService.UpdateVehicle(r.Context(), userID, req.ID, *req.Update)
	default:
		writeFunctionError(w, r, ErrInvalidJSON, "vehicles-save needs a vehicle or an id with an update")
		return
	}
	if err != nil {
		writeFunctionError(w, r, err, "error saving vehicle")
		return
	}
	utils.WriteJSON(w, models.VehicleResponse{FunctionResponse: functionOK, Vehicle: &vehicle}, http.StatusOK)
}
