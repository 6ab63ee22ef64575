package phasespace

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"
)

// PhaseSpaceNL is the invariant-mass distribution of l particles out of n
// in the non-relativistic limit, on [low, high], normalised to unit integral:
//
//	f(x) ∝ y^((3l-5)/2) (1-y)^(3(n-l)/2-1),  y = (x-low)/(high-low)
//
// It is a value type; WithHigh and WithThresholds return modified copies.
type PhaseSpaceNL struct {
	low, high   float64
	l, n        int
	alpha, beta float64
	bfun        float64
	norm        float64
}

func NewPhaseSpaceNL(low, high float64, l, n int) (PhaseSpaceNL, error) {
	if l < 2 || n <= l {
		return PhaseSpaceNL{}, fmt.Errorf("%w: l=%d n=%d", ErrInvalidOrder, l, n)
	}
	if !(low >= 0) || !(low < high) || math.IsInf(high, 0) {
		return PhaseSpaceNL{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidThresholds, low, high)
	}
	ps := PhaseSpaceNL{
		low:   low,
		high:  high,
		l:     l,
		n:     n,
		alpha: 0.5 * float64(3*l-5),
		beta:  0.5*float64(3*(n-l)) - 1,
	}
	ps.bfun = mathext.Beta(ps.alpha+1, ps.beta+1)
	ps.norm = ps.normalization()
	return ps, nil
}

func (ps PhaseSpaceNL) normalization() float64 {
	if ps.high <= ps.low {
		return 0
	}
	return 1 / ((ps.high - ps.low) * ps.bfun)
}

func (ps PhaseSpaceNL) LowEdge() float64  { return ps.low }
func (ps PhaseSpaceNL) HighEdge() float64 { return ps.high }
func (ps PhaseSpaceNL) L() int            { return ps.l }
func (ps PhaseSpaceNL) N() int            { return ps.n }

// Empty reports whether the thresholds leave no room.
func (ps PhaseSpaceNL) Empty() bool { return !(ps.low < ps.high) }

func (ps PhaseSpaceNL) Evaluate(x float64) float64 {
	if ps.Empty() || x <= ps.low || x >= ps.high {
		return 0
	}
	y := (x - ps.low) / (ps.high - ps.low)
	return ps.norm * math.Pow(y, ps.alpha) * math.Pow(1-y, ps.beta)
}

// Integral returns the integral over [a, b] in closed form through the
// regularised incomplete beta function.
func (ps PhaseSpaceNL) Integral(a, b float64) float64 {
	if ps.Empty() {
		return 0
	}
	if a > b {
		return -ps.Integral(b, a)
	}
	a = math.Max(a, ps.low)
	b = math.Min(b, ps.high)
	if a >= b {
		return 0
	}
	return ps.cdf(b) - ps.cdf(a)
}

func (ps PhaseSpaceNL) cdf(x float64) float64 {
	y := (x - ps.low) / (ps.high - ps.low)
	if y <= 0 {
		return 0
	}
	if y >= 1 {
		return 1
	}
	return mathext.RegIncBeta(ps.alpha+1, ps.beta+1, y)
}

// WithHigh returns a copy whose upper threshold is lowered to high when high
// is below the current one. The result may be empty.
func (ps PhaseSpaceNL) WithHigh(high float64) PhaseSpaceNL {
	if high >= ps.high {
		return ps
	}
	c := ps
	c.high = high
	c.norm = c.normalization()
	return c
}

// WithThresholds returns a validated copy with new thresholds.
func (ps PhaseSpaceNL) WithThresholds(low, high float64) (PhaseSpaceNL, error) {
	return NewPhaseSpaceNL(low, high, ps.l, ps.n)
}
