package models

import "errors"

var (
	// ErrInvalidConfig is returned by constructors for invalid orders,
	// supports, phase spaces or exponential slopes.
	ErrInvalidConfig = errors.New("models: invalid configuration")

	// ErrInvalidParameter is returned by setters; the previous value is kept.
	ErrInvalidParameter = errors.New("models: invalid parameter")
)
