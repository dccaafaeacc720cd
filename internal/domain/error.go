package domain

import "errors"

var (
	// Common domain errors
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrEmptyPrompt       = errors.New("prompt must not be empty")
	ErrMissingImage      = errors.New("an input image is required")
	ErrEmptyResponse     = errors.New("model returned no images")
	ErrNoResultLocator   = errors.New("job finished without a result locator")
	ErrAttemptsExhausted = errors.New("attempt ceiling reached without an image")
	ErrJobNotFound       = errors.New("render job not found")
	ErrResultNotReady    = errors.New("render job has no result yet")
	ErrUnknown           = errors.New("unknown error")
)
