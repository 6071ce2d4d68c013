package types

import "errors"

// Sentinel errors shared between controllers and routes. Routes translate
// them to HTTP statuses; controllers wrap them with context via fmt.Errorf.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUpstream           = errors.New("upstream AI service failed")
	ErrMissingAPIKey      = errors.New("missing AI service credential")
	ErrConflictingWrite   = errors.New("session was modified concurrently")
)
