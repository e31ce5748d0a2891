// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-trip-keeper/internal/service"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
	"github.com/MKhiriev/go-trip-keeper/models"
)

func TestSignUp(t *testing.T) {
	expires := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "invalid data", serviceErr: fmt.Errorf("%w: email", service.ErrInvalidDataProvided), wantStatus: http.StatusBadRequest},
		{name: "email taken", serviceErr: fmt.Errorf("user creation ended with error: %w", store.ErrEmailAlreadyExists), wantStatus: http.StatusConflict},
		{name: "storage failure", serviceErr: store.ErrExecutingQuery, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			user := models.User{Email: "ann@example.com", Password: "s3cret-pass"}

			f.auth.EXPECT().SignUp(gomock.Any(), user).Return(models.AuthResponse{
				AccessToken: "jwt",
				ExpiresAt:   expires,
				User:        models.User{UserID: 1, Email: "ann@example.com"},
			}, tt.serviceErr)

			rec := f.do(newRequest(t, http.MethodPost, "/api/auth/signup", user, 0))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				resp := decodeBody[models.AuthResponse](t, rec)
				assert.Equal(t, "jwt", resp.AccessToken)
				assert.Equal(t, int64(1), resp.User.UserID)
			}
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "sql", "internal errors are not exposed")
			}
		})
	}
}

func TestSignUp_InvalidJSON(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignIn(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "success", wantStatus: http.StatusOK},
		{name: "wrong password", serviceErr: service.ErrWrongPassword, wantStatus: http.StatusUnauthorized},
		{name: "missing fields", serviceErr: service.ErrInvalidDataProvided, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.auth.EXPECT().SignIn(gomock.Any(), gomock.Any()).Return(models.AuthResponse{AccessToken: "jwt"}, tt.serviceErr)

			rec := f.do(newRequest(t, http.MethodPost, "/api/auth/signin", models.User{Email: "ann@example.com", Password: "x"}, 0))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	f.signedIn(7)
	f.auth.EXPECT().GetUser(gomock.Any(), int64(7)).Return(models.User{UserID: 7, Email: "ann@example.com"}, nil)

	rec := f.do(newRequest(t, http.MethodGet, "/api/auth/user", nil, 7))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ann@example.com", decodeBody[models.User](t, rec).Email)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	f.signedIn(7)

	name := "Annie"
	f.auth.EXPECT().UpdateUser(gomock.Any(), int64(7), models.UserUpdate{Name: &name}).Return(models.User{UserID: 7, Name: name}, nil)

	rec := f.do(newRequest(t, http.MethodPut, "/api/auth/user", models.UserUpdate{Name: &name}, 7))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Annie", decodeBody[models.User](t, rec).Name)
}

func TestUpdateUser_NotFound(t *testing.T) {
	f := newFixture(t)
	f.signedIn(7)
	f.auth.EXPECT().UpdateUser(gomock.Any(), int64(7), gomock.Any()).Return(models.User{}, store.ErrNoUserWasFound)

	name := "Annie"
	rec := f.do(newRequest(t, http.MethodPut, "/api/auth/user", models.UserUpdate{Name: &name}, 7))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
