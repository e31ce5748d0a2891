package adapter

import "errors"

var (
	ErrBadRequest           = errors.New("bad request")
	ErrUnauthorized         = errors.New("client unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrTooLarge             = errors.New("request entity too large")
	ErrInternalServerError  = errors.New("internal server error")
	ErrBadGateway           = errors.New("bad gateway")
	ErrUnavailable          = errors.New("service unavailable")

	// ErrTransport marks requests that never got a response.
	ErrTransport = errors.New("backend request failed")

	ErrEmptyAddress  = errors.New("empty address")
	ErrInvalidFormat = errors.New("unexpected response format")
)
