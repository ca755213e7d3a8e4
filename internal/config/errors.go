package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure; the CLI maps it to a usage error.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrLoadConfig wraps file, YAML and environment failures raised by Load.
	ErrLoadConfig = errors.New("cannot load configuration")
)
