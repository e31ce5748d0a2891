package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                http.StatusBadRequest,
	ErrIntegrityCheckFailed:       http.StatusBadRequest,
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	ErrInvalidPhotoSignature:      http.StatusForbidden,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrValidationNoUserID:      http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrUnsupportedMediaType:    http.StatusUnsupportedMediaType,
	service.ErrPhotoTooLarge:           http.StatusRequestEntityTooLarge,
	service.ErrNoPhoto:                 http.StatusNotFound,
	service.ErrUnsupportedExportFormat: http.StatusBadRequest,
	service.ErrMailNotSent:             http.StatusBadGateway,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrTripNotFound:       http.StatusNotFound,
	store.ErrVehicleNotFound:    http.StatusNotFound,
	store.ErrSegmentNotFound:    http.StatusNotFound,
	store.ErrPhotoNotFound:      http.StatusNotFound,
	store.ErrSegmentClosed:      http.StatusConflict,
	store.ErrInvalidReference:   http.StatusConflict,
	store.ErrInvalidValue:       http.StatusBadRequest,
	store.ErrTemporary:          http.StatusServiceUnavailable,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError returns the status of the first sentinel err wraps.
// Several sentinels may be wrapped at once (a validation failure carries
// ErrInvalidDataProvided and the validator error), so client errors win
// over server errors.
func statusFromError(err error) int {
	status := 0
	for target, s := range errorStatusMap {
		if errors.Is(err, target) && (status == 0 || s < status) {
			status = s
		}
	}
	if status == 0 {
		return http.StatusInternalServerError
	}
	return status
}

// writeError answers a REST request with the status mapped from err. 5xx
// answers never expose the error text.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := statusFromError(err)
	logger.FromRequest(r).Err(err).Int("status", status).Msg(msg)

	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}

// functionStatus narrows a mapped status to the ones function endpoints
// answer with: 400, 401 or 500.
func functionStatus(err error) int {
	status := statusFromError(err)
	switch {
	case status == http.StatusUnauthorized:
		return http.StatusUnauthorized
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeFunctionError answers a function endpoint with {"ok":false,"error":...}.
func writeFunctionError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := functionStatus(err)
	logger.FromRequest(r).Err(err).Int("status", status).Msg(msg)

	text := err.Error()
	if status == http.StatusInternalServerError {
		text = http.StatusText(status)
	}
	utils.WriteJSON(w, models.FunctionResponse{OK: false, Error: text}, status)
}
