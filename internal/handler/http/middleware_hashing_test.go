package http

import (
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
)

func TestWithBodyHash(t *testing.T) {
	utils.InitHasherPool(testHashKey)
	body := `{"name":"Coast"}`

	tests := []struct {
		name       string
		hashKey    string
		header     string
		wantStatus int
		wantNext   bool
	}{
		{name: "valid hash", hashKey: testHashKey, header: hex.EncodeToString(utils.Hash([]byte(body))), wantStatus: http.StatusOK, wantNext: true},
		{name: "wrong hash", hashKey: testHashKey, header: hex.EncodeToString(utils.Hash([]byte("other"))), wantStatus: http.StatusBadRequest},
		{name: "not hex", hashKey: testHashKey, header: "zz", wantStatus: http.StatusBadRequest},
		{name: "no header", hashKey: testHashKey, wantStatus: http.StatusOK, wantNext: true},
		{name: "no key configured", header: "whatever", wantStatus: http.StatusOK, wantNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{hashKey: tt.hashKey, logger: logger.Nop()}

			var nextBody string
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				data, _ := io.ReadAll(r.Body)
				nextBody = string(data)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/trips", strings.NewReader(body))
			if tt.header != "" {
				req.Header.Set(utils.HashHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.withBodyHash(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				assert.Equal(t, body, nextBody, "body stays readable")
			}
		})
	}
}
