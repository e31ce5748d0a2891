package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrValidationNoUserID = errors.New("no user ID was given")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPhotoTooLarge        = errors.New("photo too large")
	ErrNoPhoto              = errors.New("vehicle has no photo")

	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrExportFailed            = errors.New("export failed")
	ErrMailNotSent             = errors.New("mail was not sent")
)

// Client-side errors.
var (
	// ErrOffline is returned by operations that have no offline path.
	ErrOffline = errors.New("backend is not reachable")

	ErrNoSession      = errors.New("not signed in")
	ErrSessionExpired = errors.New("session expired")

	// ErrSyncInProgress is returned by RunCycle when a cycle is already
	// running. The request is folded into one rerun.
	ErrSyncInProgress = errors.New("sync already in progress")

	ErrQueueUnreadable = errors.New("pending queue unreadable")

	// ErrLocalDataUnavailable is returned by sign-in when the local data of
	// the previous user could not be discarded.
	ErrLocalDataUnavailable = errors.New("local data unavailable")
)
