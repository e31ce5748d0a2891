package http

import (
	"net/http"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

type Handler struct {
	services *service.Services
	photos   store.PhotoStorage

	// hashKey verifies the HashSHA256 body header and signed photo urls.
	hashKey string

	logger *logger.Logger
}

// NewHandler creates the REST handler. photos serves signed local photo
// downloads; it may be nil when photos live in S3.
func NewHandler(services *service.Services, photos store.PhotoStorage, hashKey string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		photos:   photos,
		hashKey:  hashKey,
		logger:   logger,
	}
}

// requestUserID returns the user id stored by the auth middleware and
// answers 400 when it is missing.
func requestUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrValidationNoUserID, "no user ID was given")
	}
	return userID, ok
}
