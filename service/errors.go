package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrEventNotFound        = errors.New("event not found")
	ErrNoSeatsAvailable     = errors.New("no seats available")
	ErrEventUnavailable     = errors.New("event not found or no seats available")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidCredentials   = errors.New("invalid admin credentials")
	ErrUnauthorized         = errors.New("unauthorized")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
