package bernstein

import (
	"fmt"
	"math"
)

// Positive is a 1D polynomial of degree N on [xmin, xmax] that is
// non-negative everywhere and integrates to one over its support. The N free
// parameters are the phases of an N-sphere.
type Positive struct {
	n      int
	xmin   float64
	xmax   float64
	sphere *NSphere
	coeffs []float64
}

func NewPositive(n int, xmin, xmax float64) (*Positive, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, n)
	}
	if !(xmin < xmax) || math.IsInf(xmin, 0) || math.IsInf(xmax, 0) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, xmin, xmax)
	}
	p := &Positive{
		n:      n,
		xmin:   xmin,
		xmax:   xmax,
		sphere: NewNSphere(n),
		coeffs: make([]float64, n+1),
	}
	p.update()
	return p, nil
}

func (p *Positive) Degree() int   { return p.n }
func (p *Positive) XMin() float64 { return p.xmin }
func (p *Positive) XMax() float64 { return p.xmax }
func (p *Positive) NPars() int    { return p.sphere.NPhi() }

func (p *Positive) Par(k int) float64 {
	if k < 0 || k >= p.NPars() {
		return 0
	}
	return p.sphere.Phase(k)
}

func (p *Positive) Pars() []float64 { return p.sphere.Phases() }

func (p *Positive) SetPar(k int, v float64) error {
	if k < 0 || k >= p.NPars() {
		return fmt.Errorf("%w: %d (npars %d)", ErrParameterIndex, k, p.NPars())
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrParameterValue, v)
	}
	if p.sphere.SetPhase(k, v) {
		p.update()
	}
	return nil
}

// Coefficient returns the k-th Bernstein coefficient.
func (p *Positive) Coefficient(k int) float64 { return p.coeffs[k] }

func (p *Positive) Evaluate(x float64) float64 {
	if x < p.xmin || x > p.xmax {
		return 0
	}
	b := Basis(p.n, reduced(x, p.xmin, p.xmax), nil)
	sum := 0.0
	for i, c := range p.coeffs {
		sum += c * b[i]
	}
	return sum
}

// Integral integrates the polynomial over [a, b] clipped to the support.
func (p *Positive) Integral(a, b float64) float64 {
	m := p.Moments(a, b)
	sum := 0.0
	for i, c := range p.coeffs {
		sum += c * m[i]
	}
	return sum
}

// Basis returns the basis values at x, zero outside the support.
func (p *Positive) Basis(x float64) []float64 {
	return Basis(p.n, reduced(x, p.xmin, p.xmax), nil)
}

// Moments returns the integrals of the basis polynomials over [a, b].
func (p *Positive) Moments(a, b float64) []float64 {
	out := BasisIntegrals(p.n, reduced(a, p.xmin, p.xmax), reduced(b, p.xmin, p.xmax), nil)
	w := p.xmax - p.xmin
	for i := range out {
		out[i] *= w
	}
	return out
}

func (p *Positive) Clone() *Positive {
	c := *p
	c.sphere = p.sphere.Clone()
	c.coeffs = make([]float64, len(p.coeffs))
	copy(c.coeffs, p.coeffs)
	return &c
}

func (p *Positive) update() {
	norm := float64(p.n+1) / (p.xmax - p.xmin)
	for i := range p.coeffs {
		p.coeffs[i] = norm * p.sphere.X2(i)
	}
}
