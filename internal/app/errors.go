package service

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotStarted   = errors.New("service not started")
)
