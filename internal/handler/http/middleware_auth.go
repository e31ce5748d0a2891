package http

import (
	"net/http"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces JWT bearer authentication.
//
// The token of the "Authorization: Bearer <token>" header is checked with
// [service.AuthService.ParseToken]; on success the user id is stored in the
// request context with [utils.WithUserID]. Requests without a header, with
// a malformed header or with an expired or invalid token are rejected with
// 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return h.authenticate(next, writeError)
}

// functionAuth is auth for function endpoints: rejections carry the
// {"ok":false} envelope.
func (h *Handler) functionAuth(next http.Handler) http.Handler {
	return h.authenticate(next, writeFunctionError)
}

func (h *Handler) authenticate(next http.Handler, reject func(http.ResponseWriter, *http.Request, error, string)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			reject(w, r, ErrEmptyAuthorizationHeader, "request without authorization")
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			reject(w, r, ErrInvalidAuthorizationHeader, "malformed authorization header")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			reject(w, r, err, "error occurred during parsing token")
			return
		}

		logger.FromRequest(r).Debug().Int64("user_id", token.UserID).Msg("request authorized")
		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
	})
}
