package models

import (
	"fmt"
	"math"
)

// Model is the common contract of the 2D densities.
type Model interface {
	// Evaluate returns the density at (x, y), zero outside the box.
	Evaluate(x, y float64) float64

	NPars() int
	Par(k int) float64
	Pars() []float64
	SetPar(k int, v float64) error

	XMin() float64
	XMax() float64
	YMin() float64
	YMax() float64

	// Integral integrates over the rectangle clipped to the box.
	Integral(xlow, xhigh, ylow, yhigh float64) (float64, error)
	// IntegrateX integrates over x at fixed y.
	IntegrateX(y, xlow, xhigh float64) (float64, error)
	// IntegrateY integrates over y at fixed x.
	IntegrateY(x, ylow, yhigh float64) (float64, error)

	Clone() Model
}

// Box is a rectangular support. The zero Box means "use the phase-space
// thresholds".
type Box struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (b Box) IsZero() bool { return b == Box{} }

func (b Box) validate() error {
	if !(b.XMin < b.XMax) || math.IsInf(b.XMin, 0) || math.IsInf(b.XMax, 0) {
		return fmt.Errorf("%w: x range [%g, %g]", ErrInvalidConfig, b.XMin, b.XMax)
	}
	if !(b.YMin < b.YMax) || math.IsInf(b.YMin, 0) || math.IsInf(b.YMax, 0) {
		return fmt.Errorf("%w: y range [%g, %g]", ErrInvalidConfig, b.YMin, b.YMax)
	}
	return nil
}

// FullIntegral integrates m over its whole box.
func FullIntegral(m Model) (float64, error) {
	return m.Integral(m.XMin(), m.XMax(), m.YMin(), m.YMax())
}

// clip orders [a, b] and intersects it with [lo, hi]. sign is -1 for a
// reversed range; ok is false when the intersection is empty.
func clip(a, b, lo, hi float64) (ca, cb, sign float64, ok bool) {
	sign = 1
	if a > b {
		a, b = b, a
		sign = -1
	}
	ca = math.Max(a, lo)
	cb = math.Min(b, hi)
	return ca, cb, sign, ca < cb
}

func inside(v, lo, hi float64) bool { return lo <= v && v <= hi }

func paramError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidParameter, err)
}

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
