package courier_errors

import "errors"

// Domain errors shared across services and handlers.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username taken, please pick another")
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrUnauthorized       = errors.New("access is unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrServiceUnavailable = errors.New("service unavailable")
)
