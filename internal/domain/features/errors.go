package features

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidTemplate = errors.New("invalid feature template")
)
