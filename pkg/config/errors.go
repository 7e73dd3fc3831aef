package config

import "errors"

var (
	// ErrParsingConfig wraps failures from the env parser, including missing
	// required variables and values of the wrong type.
	ErrParsingConfig = errors.New("config.parse_failed")
	// ErrLoadingEnvFile is returned when a .env file passed to LoadEnv cannot be read.
	ErrLoadingEnvFile = errors.New("config.env_file_unreadable")
	// ErrNilPointer is returned when Load receives a nil target.
	ErrNilPointer = errors.New("config.nil_target")
)
