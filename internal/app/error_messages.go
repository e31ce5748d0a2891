// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// trip keeper server handlers, the function endpoints and the client error
// mapper.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies to describe the outcome of an operation. The client
// matches on them to restore typed errors, so the wording is part of the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidEmailPassword is returned when the supplied email/password
	// combination does not match any existing user record.
	MsgInvalidEmailPassword = "invalid email/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpired is returned when a JWT bearer token is syntactically
	// valid but its expiry time has passed.
	MsgTokenIsExpired = "token is expired"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires a user ID but
	// none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgEmailAlreadyExists is returned when a sign-up or email change is
	// rejected because the address is already in use.
	MsgEmailAlreadyExists = "email already exists"

	MsgUserNotFound    = "user not found"
	MsgTripNotFound    = "trip not found"
	MsgVehicleNotFound = "vehicle not found"
	MsgSegmentNotFound = "segment not found"
	MsgPhotoNotFound   = "photo not found"

	// MsgSegmentClosed is returned when finishing a segment twice.
	MsgSegmentClosed = "segment already finished"

	// MsgInvalidReference is returned when a link or segment names a trip or
	// vehicle the user does not own.
	MsgInvalidReference = "trip or vehicle not found"

	// MsgIntegrityCheckFailed is returned when the HashSHA256 header does not
	// match the request body.
	MsgIntegrityCheckFailed = "integrity check failed"

	// MsgUnsupportedMediaType is returned for photo uploads that are not
	// images.
	MsgUnsupportedMediaType = "unsupported media type"
)
