package models

import (
	"github.com/san-kum/dalitz/internal/bernstein"
)

// separable is the shared core of the models whose weight factorises as
// wx(x)·wy(y). For symmetric models fx and fy are the same factor.
type separable struct {
	poly   bernstein.Surface
	fx, fy factor
}

func (s *separable) NPars() int        { return s.poly.NPars() }
func (s *separable) Par(k int) float64 { return s.poly.Par(k) }
func (s *separable) Pars() []float64   { return s.poly.Pars() }
func (s *separable) XMin() float64     { return s.poly.XMin() }
func (s *separable) XMax() float64     { return s.poly.XMax() }
func (s *separable) YMin() float64     { return s.poly.YMin() }
func (s *separable) YMax() float64     { return s.poly.YMax() }

func (s *separable) SetPar(k int, v float64) error {
	if err := s.poly.SetPar(k, v); err != nil {
		return paramError(err)
	}
	return nil
}

// Surface exposes the positive polynomial.
func (s *separable) Surface() bernstein.Surface { return s.poly }

func (s *separable) Evaluate(x, y float64) float64 {
	if !inside(x, s.XMin(), s.XMax()) || !inside(y, s.YMin(), s.YMax()) {
		return 0
	}
	return s.fx.weight(x) * s.fy.weight(y) * s.poly.Evaluate(x, y)
}

func (s *separable) Integral(xlow, xhigh, ylow, yhigh float64) (float64, error) {
	xa, xb, sx, ok := clip(xlow, xhigh, s.XMin(), s.XMax())
	if !ok {
		return 0, nil
	}
	ya, yb, sy, ok := clip(ylow, yhigh, s.YMin(), s.YMax())
	if !ok {
		return 0, nil
	}
	mx, err := s.fx.moments(xa, xb, s.poly.BasisX, s.poly.NX())
	if err != nil {
		return 0, err
	}
	my, err := s.fy.moments(ya, yb, s.poly.BasisY, s.poly.NY())
	if err != nil {
		return 0, err
	}
	return sx * sy * s.poly.Calculate(mx, my), nil
}

func (s *separable) IntegrateX(y, xlow, xhigh float64) (float64, error) {
	if !inside(y, s.YMin(), s.YMax()) {
		return 0, nil
	}
	xa, xb, sign, ok := clip(xlow, xhigh, s.XMin(), s.XMax())
	if !ok {
		return 0, nil
	}
	wy := s.fy.weight(y)
	if wy == 0 {
		return 0, nil
	}
	mx, err := s.fx.moments(xa, xb, s.poly.BasisX, s.poly.NX())
	if err != nil {
		return 0, err
	}
	return sign * wy * s.poly.Calculate(mx, s.poly.BasisY(y)), nil
}

func (s *separable) IntegrateY(x, ylow, yhigh float64) (float64, error) {
	if !inside(x, s.XMin(), s.XMax()) {
		return 0, nil
	}
	ya, yb, sign, ok := clip(ylow, yhigh, s.YMin(), s.YMax())
	if !ok {
		return 0, nil
	}
	wx := s.fx.weight(x)
	if wx == 0 {
		return 0, nil
	}
	my, err := s.fy.moments(ya, yb, s.poly.BasisY, s.poly.NY())
	if err != nil {
		return 0, err
	}
	return sign * wx * s.poly.Calculate(s.poly.BasisX(x), my), nil
}

func (s *separable) clone() separable {
	fx := s.fx.clone()
	fy := fx
	if s.fy != s.fx {
		fy = s.fy.clone()
	}
	return separable{poly: s.poly.CloneSurface(), fx: fx, fy: fy}
}
