package bernstein

import "errors"

var (
	// ErrInvalidOrder indicates a negative polynomial order.
	ErrInvalidOrder = errors.New("bernstein: invalid polynomial order")

	// ErrInvalidRange indicates an empty or inverted support.
	ErrInvalidRange = errors.New("bernstein: invalid support range")

	// ErrParameterIndex indicates a parameter index outside [0, NPars).
	ErrParameterIndex = errors.New("bernstein: parameter index out of range")

	// ErrParameterValue indicates a NaN or infinite parameter value.
	ErrParameterValue = errors.New("bernstein: parameter value is not finite")
)
