package config

import "errors"

var (
	// ErrInvalidConfig marks a config file or setting that cannot be used.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrEmptyToolList is returned when an allow-list document names no tools.
	ErrEmptyToolList = errors.New("allow-list names no tools")
)
