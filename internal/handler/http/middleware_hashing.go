package http

import (
	"bytes"
	"crypto/hmac"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

// withBodyHash verifies the optional HashSHA256 header: when both the
// header and a hash key are present the hex HMAC-SHA256 of the body must
// match. Requests without the header pass untouched.
func (h *Handler) withBodyHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sent := r.Header.Get(utils.HashHeader)
		if sent == "" || h.hashKey == "" || r.Body == nil {
			next.ServeHTTP(w, r)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, utils.MaxJSONBody+1))
		if err != nil {
			writeError(w, r, err, "failed to read request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		want, err := hex.DecodeString(sent)
		if err != nil || !hmac.Equal(want, utils.Hash(body)) {
			h.logger.Error().
				Str("hash from request", sent).
				Str("hashed body", hex.EncodeToString(utils.Hash(body))).
				Msg("hashes are not equal")
			writeError(w, r, ErrIntegrityCheckFailed, "body integrity check failed")
			return
		}

		next.ServeHTTP(w, r)
	})
}
