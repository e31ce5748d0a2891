package workers

import "errors"

var (
	ErrEmptyAddress = errors.New("empty probe address")
	ErrUnreachable  = errors.New("backend unreachable")
)
