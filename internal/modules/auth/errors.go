package auth

import "errors"

var (
	ErrEmailExists         = errors.New("email already registered")
	ErrPhoneExists         = errors.New("phone already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountInactive     = errors.New("account is inactive")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
