package models

import "errors"

var (
	ErrMalformedOperation = errors.New("malformed pending operation")
)
