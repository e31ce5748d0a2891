package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-trip-keeper/internal/config"
	"github.com/MKhiriev/go-trip-keeper/internal/logger"
	"github.com/MKhiriev/go-trip-keeper/internal/utils"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func newTestAdapter(t *testing.T, hashKey string, handler http.HandlerFunc) ServerAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(
		config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: time.Second},
		config.ClientApp{HashKey: hashKey},
		logger.Nop(),
	)
	require.NoError(t, err)
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, config.ClientApp{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestSignInStoresToken(t *testing.T) {
	expires := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	var gotAuth []string

	a := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/auth/signin":
			var user models.User
			require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
			assert.Equal(t, "ana@example.com", user.Email)
			writeJSON(t, w, http.StatusOK, models.AuthResponse{
				AccessToken: "jwt-1",
				ExpiresAt:   expires,
				User:        models.User{UserID: 7, Email: user.Email},
			})
		case "/api/auth/user":
			writeJSON(t, w, http.StatusOK, models.User{UserID: 7, Email: "ana@example.com"})
		}
	})

	auth, err := a.SignIn(context.Background(), models.User{Email: "ana@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", a.Token())
	assert.Equal(t, expires, auth.ExpiresAt)

	user, err := a.GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)

	assert.Equal(t, []string{"", "Bearer jwt-1"}, gotAuth)
}

func TestCreateTripSignsBody(t *testing.T) {
	const hashKey = "adapter-hash-key"

	a := newTestAdapter(t, hashKey, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/trips", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, utils.HashString(string(body), hashKey), r.Header.Get(utils.HashHeader))

		var trip models.Trip
		require.NoError(t, json.Unmarshal(body, &trip))
		trip.ID = "srv-1"
		writeJSON(t, w, http.StatusCreated, trip)
	})

	created, err := a.CreateTrip(context.Background(), models.Trip{ID: "local-1", Name: "Beach"})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, "Beach", created.Name)
}

func TestUnsignedWithoutHashKey(t *testing.T) {
	a := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(utils.HashHeader))
		writeJSON(t, w, http.StatusOK, models.Trip{ID: "srv-1"})
	})

	name := "Mountains"
	_, err := a.UpdateTrip(context.Background(), "srv-1", models.TripUpdate{Name: &name})
	assert.NoError(t, err)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		message string
	}{
		{name: "400", status: http.StatusBadRequest, body: "bad name", want: ErrBadRequest, message: "bad name"},
		{name: "401", status: http.StatusUnauthorized, want: ErrUnauthorized, message: "Unauthorized"},
		{name: "403", status: http.StatusForbidden, want: ErrForbidden},
		{name: "404", status: http.StatusNotFound, want: ErrNotFound},
		{name: "409", status: http.StatusConflict, want: ErrConflict},
		{name: "500 envelope", status: http.StatusInternalServerError, body: `{"ok":false,"error":"db down"}`, want: ErrInternalServerError, message: "db down"},
		{name: "503", status: http.StatusServiceUnavailable, want: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := a.DeleteTrip(context.Background(), "srv-1")
			require.ErrorIs(t, err, tt.want)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: addr, RequestTimeout: time.Second}, config.ClientApp{}, logger.Nop())
	require.NoError(t, err)

	_, err = a.ListTrips(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestInvalidResponseFormat(t *testing.T) {
	a := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	})

	_, err := a.ListVehicles(context.Background())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestUnlinkVehicle(t *testing.T) {
	a := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trip-vehicles-delete", r.URL.Path)
		var req models.TripVehiclesDeleteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.TripVehiclesDeleteRequest{TripID: "srv-1"}, req)

		writeJSON(t, w, http.StatusOK, models.TripVehiclesDeleteResponse{FunctionResponse: models.FunctionResponse{OK: true}, Deleted: 2})
	})

	deleted, err := a.UnlinkVehicle(context.Background(), "srv-1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}

func TestUploadVehiclePhoto(t *testing.T) {
	const hashKey = "adapter-hash-key"

	a := newTestAdapter(t, hashKey, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/vehicles/veh-1/photo", r.URL.Path)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get(utils.HashHeader))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "png-bytes", string(body))

		path := "vehicles/7/veh-1.png"
		writeJSON(t, w, http.StatusOK, models.Vehicle{ID: "veh-1", PhotoPath: &path})
	})

	v, err := a.UploadVehiclePhoto(context.Background(), "veh-1", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.NotNil(t, v.PhotoPath)
	assert.Equal(t, "vehicles/7/veh-1.png", *v.PhotoPath)
}

func TestCheckEmailExists(t *testing.T) {
	a := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts-check-email-exists", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.CheckEmailResponse{FunctionResponse: models.FunctionResponse{OK: true}, Exists: true})
	})

	exists, err := a.CheckEmailExists(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPing(t *testing.T) {
	a := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ping", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, a.Ping(context.Background()))
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL(" localhost:8080/ ")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", got)

	_, err = normalizeBaseURL("")
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestTraceIDForwarded(t *testing.T) {
	var got []string
	a := newTestAdapter(t, "", func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(utils.TraceIDHeader))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, a.Ping(utils.WithTraceID(context.Background(), "cycle-1")))
	require.NoError(t, a.Ping(context.Background()))

	assert.Equal(t, []string{"cycle-1", ""}, got)
}
