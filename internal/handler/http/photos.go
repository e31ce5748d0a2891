package http

import (
	"io"
	"mime"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

// uploadPhoto takes the raw image as the request body; its Content-Type
// selects the format.
func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	contentType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, r, service.ErrUnsupportedMediaType, "photo without content type")
		return
	}

	vehicle, err := h.services.VehicleService.UploadPhoto(r.Context(), userID, chi.URLParam(r, "id"), contentType, r.Body, r.ContentLength)
	if err != nil {
		writeError(w, r, err, "error uploading photo")
		return
	}
	utils.WriteJSON(w, vehicle, http.StatusOK)
}

func (h *Handler) getPhotoURL(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	resp, err := h.services.VehicleService.PhotoURL(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error getting photo url")
		return
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) deletePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	vehicle, err := h.services.VehicleService.DeletePhoto(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, "error deleting photo")
		return
	}
	utils.WriteJSON(w, vehicle, http.StatusOK)
}

// servePhoto streams a photo addressed by a url signed with the hash key.
// The url itself is the credential; no bearer token is needed.
func (h *Handler) servePhoto(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	query := r.URL.Query()

	if h.photos == nil || !utils.VerifyPathSignature(key, query.Get("exp"), query.Get("sig"), h.hashKey, time.Now()) {
		writeError(w, r, ErrInvalidPhotoSignature, "photo url rejected")
		return
	}

	photo, err := h.photos.Open(r.Context(), key)
	if err != nil {
		writeError(w, r, err, "error opening photo")
		return
	}
	defer photo.Close()

	if contentType := mime.TypeByExtension(path.Ext(key)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "private, max-age=300")
	if _, err = io.Copy(w, photo); err != nil {
		logger.FromRequest(r).Warn().Err(err).Str("key", key).Msg("photo download interrupted")
	}
}
