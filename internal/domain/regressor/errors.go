package regressor

import "errors"

// Sentinel error kinds for this package.
var (
	ErrInvalidModel  = errors.New("invalid model artifact")
	ErrShapeMismatch = errors.New("feature row does not match model features")
	ErrInvalidTree   = errors.New("invalid tree state")
)
