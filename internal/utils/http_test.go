package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "object", data: map[string]string{"key": "value"}, status: http.StatusOK, wantBody: `{"key":"value"}`},
		{name: "custom status", data: map[string]bool{"ok": false}, status: http.StatusNotFound, wantBody: `{"ok":false}`},
		{name: "nil", data: nil, status: http.StatusOK, wantBody: `null`},
		{name: "slice", data: []int{1, 2}, status: http.StatusCreated, wantBody: `[1,2]`},
		{name: "struct tags", data: struct {
			TripID string `json:"trip_id"`
			Km     float64
		}{"t1", 12.5}, status: http.StatusOK, wantBody: `{"trip_id":"t1","Km":12.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			n, err := WriteJSON(rec, tt.data, tt.status)
			require.NoError(t, err)

			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWriteJSON_Unencodable(t *testing.T) {
	rec := httptest.NewRecorder()

	n, err := WriteJSON(rec, math.Inf(1), http.StatusOK)

	assert.ErrorIs(t, err, errJSONNotWritten)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReadJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
		anyErr  bool
	}{
		{name: "object", body: `{"email":"a@b.c"}`, want: "a@b.c"},
		{name: "trailing whitespace", body: "{\"email\":\"a@b.c\"}\n", want: "a@b.c"},
		{name: "empty body", body: ""},
		{name: "malformed", body: `{"email":`, anyErr: true},
		{name: "two values", body: `{"email":"a"}{"email":"b"}`, wantErr: ErrTrailingJSON},
		{name: "too large", body: `{"email":"` + strings.Repeat("a", MaxJSONBody) + `"}`, wantErr: ErrBodyTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var got body

			err := ReadJSON(req, &got)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got.Email)
			}
		})
	}
}
