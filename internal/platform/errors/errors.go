package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrTrackingDisabled = errors.New("tracking is disabled")
	ErrAPIKeyRequired   = errors.New("api key is required")
)
