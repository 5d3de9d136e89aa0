package usecase

import "errors"

// Shared sentinels surfaced across usecases. Handlers map these to status
// codes; anything unexpected collapses into ErrInternal so storage details
// never leak past the boundary.
var (
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrUserNotFound = errors.New("user not found")
)
