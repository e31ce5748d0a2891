package http

import (
	"net/http"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.ReadJSON(r, &user); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	auth, err := h.services.AuthService.SignUp(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "sign up failed")
		return
	}

	logger.FromRequest(r).Info().Int64("user_id", auth.User.UserID).Msg("user signed up")
	utils.WriteJSON(w, auth, http.StatusOK)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := utils.ReadJSON(r, &user); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	auth, err := h.services.AuthService.SignIn(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "sign in failed")
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", auth.User.UserID).Msg("user signed in")
	utils.WriteJSON(w, auth, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	user, err := h.services.AuthService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "error getting user")
		return
	}
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var update models.UserUpdate
	if err := utils.ReadJSON(r, &update); err != nil {
		writeError(w, r, ErrInvalidJSON, "invalid JSON was passed")
		return
	}

	user, err := h.services.AuthService.UpdateUser(r.Context(), userID, update)
	if err != nil {
		writeError(w, r, err, "error updating user")
		return
	}
	utils.WriteJSON(w, user, http.StatusOK)
}
