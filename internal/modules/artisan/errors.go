package artisan

import "errors"

var (
	ErrNotFound        = errors.New("artisan not found")
	ErrProfileNotFound = errors.New("artisan profile not found")
	ErrValidation      = errors.New("validation error")
)
