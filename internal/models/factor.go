package models

import (
	"fmt"
	"math"

	"github.com/san-kum/dalitz/internal/bernstein"
	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
)

// maxExponent bounds the exponent of the exponential factors together with
// the logarithm of the largest surface value.
const maxExponent = 700

// factor is a 1D weight multiplying one side of a polynomial surface.
type factor interface {
	weight(v float64) float64
	// moments returns ∫ w(v) b_i(v) dv over [a, b] for the n+1 basis
	// functions returned by basis.
	moments(a, b float64, basis func(float64) []float64, n int) ([]float64, error)
	clone() factor
}

// psFactor weights by a PhaseSpaceNL; its moments need adaptive quadrature
// because of the fractional powers at the thresholds.
type psFactor struct {
	ps phasespace.PhaseSpaceNL
	ws *quad.WorkSpace
}

func newPSFactor(ps phasespace.PhaseSpaceNL, opts ...quad.Option) (*psFactor, error) {
	if ps.Empty() {
		return nil, fmt.Errorf("%w: empty phase space", ErrInvalidConfig)
	}
	return &psFactor{ps: ps, ws: quad.NewWorkSpace(opts...)}, nil
}

func (f *psFactor) weight(v float64) float64 { return f.ps.Evaluate(v) }

func (f *psFactor) moments(a, b float64, basis func(float64) []float64, n int) ([]float64, error) {
	return psMoments(f.ws, f.ps, a, b, basis, n)
}

func (f *psFactor) clone() factor {
	return &psFactor{ps: f.ps, ws: f.ws.Clone()}
}

// psMoments integrates ps·b_i over [a, b] clipped to the phase-space
// support.
func psMoments(ws *quad.WorkSpace, ps phasespace.PhaseSpaceNL, a, b float64, basis func(float64) []float64, n int) ([]float64, error) {
	lo, hi, _, ok := clip(a, b, ps.LowEdge(), ps.HighEdge())
	if !ok {
		return make([]float64, n+1), nil
	}
	return weightedMoments(ws, ps.Evaluate, basis, n, lo, hi)
}

func weightedMoments(ws *quad.WorkSpace, w func(float64) float64, basis func(float64) []float64, n int, a, b float64) ([]float64, error) {
	out := make([]float64, n+1)
	if !(a < b) {
		return out, nil
	}
	for i := range out {
		v, err := ws.Value(func(t float64) float64 {
			wt := w(t)
			if wt == 0 {
				return 0
			}
			return wt * basis(t)[i]
		}, a, b)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// expFactor weights by exp(τv). Moments are computed with fixed
// Gauss-Legendre panels no wider than 1/|τ|, which is exact to rounding for
// the polynomial degrees used here.
type expFactor struct {
	tau float64
}

func (f *expFactor) weight(v float64) float64 { return math.Exp(f.tau * v) }

func (f *expFactor) moments(a, b float64, basis func(float64) []float64, n int) ([]float64, error) {
	out := make([]float64, n+1)
	if !(a < b) {
		return out, nil
	}
	quad.Panels(a, b, quad.PanelCount(a, b, f.tau), 12+n/2, func(x, w float64) {
		wx := w * math.Exp(f.tau*x)
		for i, bi := range basis(x) {
			out[i] += wx * bi
		}
	})
	return out, nil
}

func (f *expFactor) clone() factor {
	c := *f
	return &c
}

// checkTau rejects slopes that are not finite.
func checkTau(tau float64) error {
	if math.IsNaN(tau) || math.IsInf(tau, 0) {
		return fmt.Errorf("tau %v is not finite", tau)
	}
	return nil
}

// checkSlopes bounds the exponent of exp(τx·x)·exp(τy·y) over the box of s,
// plus the largest value a normalised surface can take, so that the density
// and its integrals stay finite.
func checkSlopes(s bernstein.Surface, taux, tauy float64) error {
	if err := checkTau(taux); err != nil {
		return err
	}
	if err := checkTau(tauy); err != nil {
		return err
	}
	ex := math.Abs(taux) * math.Max(math.Abs(s.XMin()), math.Abs(s.XMax()))
	ey := math.Abs(tauy) * math.Max(math.Abs(s.YMin()), math.Abs(s.YMax()))
	area := (s.XMax() - s.XMin()) * (s.YMax() - s.YMin())
	peak := float64((s.NX()+1)*(s.NY()+1)) / area
	if e := ex + ey + math.Log(math.Max(peak, 1)); e > maxExponent {
		return fmt.Errorf("tau (%g, %g) overflows on [%g, %g]x[%g, %g]: exponent %.4g",
			taux, tauy, s.XMin(), s.XMax(), s.YMin(), s.YMax(), e)
	}
	return nil
}
