package review

import "errors"

var (
	ErrNotFound           = errors.New("review not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrArtisanNotFound    = errors.New("artisan not found")
	ErrProfileNotFound    = errors.New("artisan profile not found")
	ErrForbidden          = errors.New("not allowed to perform this action")
	ErrBookingNotComplete = errors.New("booking is not completed")
	ErrAlreadyReviewed    = errors.New("booking already reviewed")
	ErrAlreadyResponded   = errors.New("review already has a response")
)
