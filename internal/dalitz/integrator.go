package dalitz

import (
	"fmt"
	"math"

	"github.com/san-kum/dalitz/internal/quad"
)

// Func3 is an integrand f(s, u, v) where (u, v) is either (s1, s2) or
// (e2, e3) and s = M².
type Func3 func(s, u, v float64) float64

// Func2 is an integrand that does not depend on s.
type Func2 func(u, v float64) float64

// Lift turns a Func2 into a Func3 ignoring s.
func Lift(f Func2) Func3 {
	return func(_, u, v float64) float64 { return f(u, v) }
}

// One is the constant integrand; its integral is the Dalitz plot area.
func One(_, _, _ float64) float64 { return 1 }

// Integrator integrates over the Dalitz plot of a fixed final state
// (m1, m2, m3) at any overall mass M.
type Integrator struct {
	m1, m2, m3 float64

	outer *quad.WorkSpace
	inner *quad.WorkSpace
}

// New creates an integrator for the final-state masses. The options
// configure both quadrature workspaces.
func New(m1, m2, m3 float64, opts ...quad.Option) (*Integrator, error) {
	if err := checkMasses(m1, m2, m3); err != nil {
		return nil, err
	}
	return &Integrator{
		m1:    m1,
		m2:    m2,
		m3:    m3,
		outer: quad.NewWorkSpace(opts...),
		inner: quad.NewWorkSpace(opts...),
	}, nil
}

func (in *Integrator) Masses() (m1, m2, m3 float64) { return in.m1, in.m2, in.m3 }

// Threshold returns m1 + m2 + m3.
func (in *Integrator) Threshold() float64 { return in.m1 + in.m2 + in.m3 }

// Plot returns the kinematics at overall mass M.
func (in *Integrator) Plot(M float64) Plot {
	return Plot{M: M, M1: in.m1, M2: in.m2, M3: in.m3}
}

// Clone returns an integrator with the same masses and fresh workspaces.
func (in *Integrator) Clone() *Integrator {
	return &Integrator{
		m1: in.m1, m2: in.m2, m3: in.m3,
		outer: in.outer.Clone(),
		inner: in.inner.Clone(),
	}
}

func (in *Integrator) check(M float64) (Plot, bool, error) {
	if math.IsInf(M, 0) {
		return Plot{}, false, fmt.Errorf("%w: M=%g", ErrInvalidMass, M)
	}
	p := in.Plot(M)
	return p, p.Valid(), nil
}

// IntegrateS1S2 computes
//
//	∫ ds1 ∫ ds2 f(s, s1, s2)
//
// over the Dalitz region at overall mass M. Below threshold the result is
// zero.
func (in *Integrator) IntegrateS1S2(M float64, f Func3) (float64, error) {
	p, ok, err := in.check(M)
	if err != nil || !ok {
		return 0, err
	}
	s := p.S()

	var innerErr error
	g := func(s1 float64) float64 {
		lo, hi, ok := p.S2Range(s1)
		if !ok || !(lo < hi) {
			return 0
		}
		v, err := in.inner.Value(func(s2 float64) float64 { return f(s, s1, s2) }, lo, hi)
		if err != nil && innerErr == nil {
			innerErr = err
		}
		return v
	}

	v, err := in.outer.Value(g, p.S1Min(), p.S1Max())
	if err != nil {
		return v, err
	}
	return v, innerErr
}

// IntegrateE2E3 computes
//
//	∫ de2 ∫ de3 f(s, e2, e3)
//
// over the Dalitz region at overall mass M, with e2 and e3 the energies of
// particles 2 and 3 in the rest frame of M.
func (in *Integrator) IntegrateE2E3(M float64, f Func3) (float64, error) {
	p, ok, err := in.check(M)
	if err != nil || !ok {
		return 0, err
	}
	s := p.S()

	var innerErr error
	g := func(e2 float64) float64 {
		lo, hi, ok := p.E3Range(e2)
		if !ok || !(lo < hi) {
			return 0
		}
		v, err := in.inner.Value(func(e3 float64) float64 { return f(s, e2, e3) }, lo, hi)
		if err != nil && innerErr == nil {
			innerErr = err
		}
		return v
	}

	lo, hi, _ := p.E2Range()
	v, err := in.outer.Value(g, lo, hi)
	if err != nil {
		return v, err
	}
	return v, innerErr
}

// Area returns the Dalitz plot area in (s1, s2).
func (in *Integrator) Area(M float64) (float64, error) {
	return in.IntegrateS1S2(M, One)
}
