package services

import "errors"

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid data")
	ErrForbidden  = errors.New("not authorized")
)
