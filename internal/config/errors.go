package config

import "errors"

var (
	// ErrInvalidConfig reports a loaded config that cannot run the forecaster,
	// such as an empty listen address or artifact path.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading the config file or environment.
	ErrLoadConfig = errors.New("load config failed")
)
