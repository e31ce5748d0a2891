package http

import (
	"net/http"

	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

var functionOK = models.FunctionResponse{OK: true}

// functionUserID is requestUserID for function endpoints.
func functionUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeFunctionError(w, r, service.ErrValidationNoUserID, "no user ID was given")
	}
	return userID, ok
}

func (h *Handler) checkEmailExists(w http.ResponseWriter, r *http.Request) {
	var req models.CheckEmailRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeFunctionError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	exists, err := h.services.AccountService.CheckEmailExists(r.Context(), req.Email)
	if err != nil {
		writeFunctionError(w, r, err, "error checking email")
		return
	}
	utils.WriteJSON(w, models.CheckEmailResponse{FunctionResponse: functionOK, Exists: exists}, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := functionUserID(w, r)
	if !ok {
		return
	}

	if err := h.services.AccountService.DeleteAccount(r.Context(), userID); err != nil {
		writeFunctionError(w, r, err, "error deleting account")
		return
	}
	utils.WriteJSON(w, functionOK, http.StatusOK)
}

func (h *Handler) exportUserData(w http.ResponseWriter, r *http.Request) {
	userID, ok := functionUserID(w, r)
	if !ok {
		return
	}

	var req models.ExportRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeFunctionError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	resp, err := h.services.AccountService.ExportData(r.Context(), userID, req.Format)
	if err != nil {
		writeFunctionError(w, r, err, "error exporting user data")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) sendWelcome(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeFunctionError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	if err := h.services.AccountService.SendWelcome(r.Context(), req); err != nil {
		writeFunctionError(w, r, err, "error sending welcome mail")
		return
	}
	utils.WriteJSON(w, functionOK, http.StatusOK)
}

func (h *Handler) sendPasswordChanged(w http.ResponseWriter, r *http.Request) {
	var req models.NotificationRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeFunctionError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	if err := h.services.AccountService.SendPasswordChanged(r.Context(), req); err != nil {
		writeFunctionError(w, r, err, "error sending password changed mail")
		return
	}
	utils.WriteJSON(w, functionOK, http.StatusOK)
}
