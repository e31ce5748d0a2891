// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-trip-keeper/internal/adapter"
	"github.com/MKhiriev/go-trip-keeper/internal/app"
	"github.com/MKhiriev/go-trip-keeper/internal/store"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The adapter error stays in the chain.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	var target error
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		target = ErrInvalidDataProvided

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidEmailPassword:
			target = ErrWrongPassword
		case app.MsgTokenIsExpired:
			target = ErrTokenIsExpired
		default:
			target = ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrNotFound):
		switch msg {
		case app.MsgTripNotFound:
			target = store.ErrTripNotFound
		case app.MsgVehicleNotFound:
			target = store.ErrVehicleNotFound
		case app.MsgSegmentNotFound:
			target = store.ErrSegmentNotFound
		case app.MsgPhotoNotFound:
			target = store.ErrPhotoNotFound
		case app.MsgUserNotFound:
			target = store.ErrNoUserWasFound
		case app.MsgInvalidReference:
			target = store.ErrInvalidReference
		}

	case errors.Is(err, adapter.ErrConflict):
		switch msg {
		case app.MsgEmailAlreadyExists:
			target = store.ErrEmailAlreadyExists
		case app.MsgSegmentClosed:
			target = store.ErrSegmentClosed
		}

	case errors.Is(err, adapter.ErrUnsupportedMediaType):
		target = ErrUnsupportedMediaType
	}

	if target == nil {
		return err
	}
	return fmt.Errorf("%w: %w", target, err)
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
