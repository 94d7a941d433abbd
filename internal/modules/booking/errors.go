package booking

import "errors"

var (
	ErrNotFound           = errors.New("booking not found")
	ErrArtisanNotFound    = errors.New("artisan not found")
	ErrProfileNotFound    = errors.New("artisan profile not found")
	ErrForbidden          = errors.New("not allowed to access this booking")
	ErrArtisanUnavailable = errors.New("artisan is not available")
	ErrInvalidTransition  = errors.New("booking is not in a state that allows this action")
)
