package sentinel

import "errors"

// Sentinel store errors. The registry store returns these (optionally wrapped)
// so the service can translate them into domain errors exactly once.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrNotRegistered     = errors.New("not registered")
	ErrInvalidInput      = errors.New("invalid input")
)
