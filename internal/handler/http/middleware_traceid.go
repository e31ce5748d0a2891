package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

// withTraceID tags the request logger and context with the caller's
// X-Trace-ID or a fresh one, and echoes it back in the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(utils.TraceIDHeader)
		if traceID == "" {
			traceID = utils.NewTraceID()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(utils.TraceIDHeader, traceID)
		ctx := utils.WithTraceID(l.WithContext(r.Context()), traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
