package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCommand     = errors.New("missing command_text")
	ErrExtractionFailed   = errors.New("could not extract source and destination")
	ErrInvalidRating      = errors.New("invalid rating values")
)
