package forecast

import "errors"

// Sentinel error kinds for this package.
var (
	ErrPrediction    = errors.New("prediction failed")
	ErrParOutOfRange = errors.New("par level out of range")
)
