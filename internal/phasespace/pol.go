package phasespace

import (
	"fmt"
	"math"

	"github.com/san-kum/dalitz/internal/bernstein"
	"github.com/san-kum/dalitz/internal/quad"
)

// PhaseSpacePol is a PhaseSpaceNL factor modulated by a positive 1D
// polynomial on [xmin, xmax]. Its parameters are the polynomial's.
//
// The polynomial and the workspace are shared by the copies made through
// WithThresholds and WithHigh; use Clone for an independent instance.
type PhaseSpacePol struct {
	ps  PhaseSpaceNL
	pol *bernstein.Positive
	ws  *quad.WorkSpace
}

// NewPhaseSpacePol builds the product on the polynomial support [xmin, xmax].
func NewPhaseSpacePol(ps PhaseSpaceNL, n int, xmin, xmax float64, opts ...quad.Option) (*PhaseSpacePol, error) {
	if ps.Empty() {
		return nil, fmt.Errorf("%w: empty phase space", ErrInvalidThresholds)
	}
	pol, err := bernstein.NewPositive(n, xmin, xmax)
	if err != nil {
		return nil, err
	}
	return &PhaseSpacePol{ps: ps, pol: pol, ws: quad.NewWorkSpace(opts...)}, nil
}

// NewPhaseSpacePolDefault uses the phase-space thresholds as the support.
func NewPhaseSpacePolDefault(ps PhaseSpaceNL, n int, opts ...quad.Option) (*PhaseSpacePol, error) {
	return NewPhaseSpacePol(ps, n, ps.LowEdge(), ps.HighEdge(), opts...)
}

func (p *PhaseSpacePol) PhaseSpace() PhaseSpaceNL        { return p.ps }
func (p *PhaseSpacePol) Polynomial() *bernstein.Positive { return p.pol }
func (p *PhaseSpacePol) XMin() float64                   { return p.pol.XMin() }
func (p *PhaseSpacePol) XMax() float64                   { return p.pol.XMax() }
func (p *PhaseSpacePol) NPars() int                      { return p.pol.NPars() }
func (p *PhaseSpacePol) Par(k int) float64               { return p.pol.Par(k) }
func (p *PhaseSpacePol) Pars() []float64                 { return p.pol.Pars() }
func (p *PhaseSpacePol) SetPar(k int, v float64) error   { return p.pol.SetPar(k, v) }
func (p *PhaseSpacePol) WorkSpace() *quad.WorkSpace      { return p.ws }

func (p *PhaseSpacePol) Evaluate(x float64) float64 {
	if x < p.pol.XMin() || x > p.pol.XMax() {
		return 0
	}
	return p.ps.Evaluate(x) * p.pol.Evaluate(x)
}

// Integral integrates over [a, b] clipped to the common support of the
// phase space and the polynomial.
func (p *PhaseSpacePol) Integral(a, b float64) (float64, error) {
	if a > b {
		v, err := p.Integral(b, a)
		return -v, err
	}
	lo := math.Max(a, math.Max(p.ps.LowEdge(), p.pol.XMin()))
	hi := math.Min(b, math.Min(p.ps.HighEdge(), p.pol.XMax()))
	if !(lo < hi) {
		return 0, nil
	}
	return p.ws.Value(p.Evaluate, lo, hi)
}

// WithHigh returns a copy whose phase-space upper threshold is lowered to
// high. The polynomial support is unchanged.
func (p *PhaseSpacePol) WithHigh(high float64) *PhaseSpacePol {
	c := *p
	c.ps = p.ps.WithHigh(high)
	return &c
}

// WithThresholds returns a copy with new phase-space thresholds.
func (p *PhaseSpacePol) WithThresholds(low, high float64) (*PhaseSpacePol, error) {
	ps, err := p.ps.WithThresholds(low, high)
	if err != nil {
		return nil, err
	}
	c := *p
	c.ps = ps
	return &c, nil
}

func (p *PhaseSpacePol) Clone() *PhaseSpacePol {
	return &PhaseSpacePol{ps: p.ps, pol: p.pol.Clone(), ws: p.ws.Clone()}
}
