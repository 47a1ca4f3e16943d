package models

import "errors"

// Services wrap these with fmt.Errorf("...: %w"); HTTPHelper maps them to
// status codes.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrClosed       = errors.New("closed")
	ErrInvalid      = errors.New("invalid")
)
