package http

import (
	"net/http"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
)

// methodNotFound answers 404 Not Found, not 405, when a known path is
// requested with a method it does not serve.
func methodNotFound(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("method not served")
	w.WriteHeader(http.StatusNotFound)
}
