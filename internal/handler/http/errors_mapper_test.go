package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "missing header", err: ErrEmptyAuthorizationHeader, want: http.StatusUnauthorized},
		{name: "wrapped not found", err: fmt.Errorf("find: %w", store.ErrTripNotFound), want: http.StatusNotFound},
		{name: "conflict", err: store.ErrSegmentClosed, want: http.StatusConflict},
		{name: "photo too large", err: service.ErrPhotoTooLarge, want: http.StatusRequestEntityTooLarge},
		{name: "temporary", err: store.ErrTemporary, want: http.StatusServiceUnavailable},
		{
			name: "client error wins over server error",
			err:  fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, store.ErrExecutingQuery),
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestFunctionStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unauthorized", err: service.ErrTokenIsExpiredOrInvalid, want: http.StatusUnauthorized},
		{name: "bad request", err: service.ErrInvalidDataProvided, want: http.StatusBadRequest},
		{name: "not found narrows to bad request", err: store.ErrNoUserWasFound, want: http.StatusBadRequest},
		{name: "conflict narrows to bad request", err: store.ErrEmailAlreadyExists, want: http.StatusBadRequest},
		{name: "bad gateway narrows to server error", err: service.ErrMailNotSent, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, functionStatus(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	t.Run("client error shows text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), store.ErrTripNotFound, "lookup")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), store.ErrTripNotFound.Error())
	})

	t.Run("server error hides text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("dsn=secret"), "lookup")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
	})
}

func TestWriteFunctionError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeFunctionError(rec, httptest.NewRequest(http.MethodPost, "/", nil), service.ErrInvalidDataProvided, "bad input")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody[models.FunctionResponse](t, rec)
	require.False(t, resp.OK)
	assert.Equal(t, service.ErrInvalidDataProvided.Error(), resp.Error)

	rec = httptest.NewRecorder()
	writeFunctionError(rec, httptest.NewRequest(http.MethodPost, "/", nil), errors.New("db down"), "boom")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp = decodeBody[models.FunctionResponse](t, rec)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), resp.Error)
}
