package services

import "errors"

var (
	// ErrInvalidInput marks a missing or malformed request parameter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTimeRange is returned when an explicit window ends before it starts.
	ErrInvalidTimeRange = errors.New("invalid time range")
	// ErrUnauthorized means the caller could not be mapped to an access scope.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTooManyAttempts is returned while an account is locked out.
	ErrTooManyAttempts = errors.New("too many login attempts")
	// ErrCustomerNotFound means a detail lookup matched no spins.
	ErrCustomerNotFound = errors.New("customer not found")
)
