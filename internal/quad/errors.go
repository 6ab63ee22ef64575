package quad

import (
	"errors"
	"fmt"
)

// Domain errors for quadrature operations.
var (
	// ErrNoConvergence indicates the subdivision budget was exhausted before the
	// requested accuracy was reached.
	ErrNoConvergence = errors.New("quad: integral did not converge")

	// ErrInvalidInterval indicates a NaN or infinite integration bound.
	ErrInvalidInterval = errors.New("quad: invalid integration interval")
)

// Diagnostic codes carried by Error.
const (
	CodeMaxIterations = 1
	CodeRoundoff      = 2
	CodeBadIntegrand  = 3
)

// Error wraps a quadrature failure with the state of the computation at the
// moment it was abandoned.
type Error struct {
	Code     int
	Reason   string
	Low      float64
	High     float64
	Estimate float64
	AbsErr   float64
	Wrapped  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (code %d, [%g, %g], estimate %g ± %g)",
		e.Wrapped.Error(), e.Reason, e.Code, e.Low, e.High, e.Estimate, e.AbsErr)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
