package models

import (
	"github.com/san-kum/dalitz/internal/bernstein"
	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
)

// PS2DPol is Ps_x(x)·Ps_y(y)·P(x,y).
type PS2DPol struct {
	separable
	psx, psy *psFactor
}

// NewPS2DPol builds the model on box, or on the phase-space thresholds when
// box is zero.
func NewPS2DPol(psx, psy phasespace.PhaseSpaceNL, nx, ny int, box Box, opts ...quad.Option) (*PS2DPol, error) {
	if box.IsZero() {
		box = Box{psx.LowEdge(), psx.HighEdge(), psy.LowEdge(), psy.HighEdge()}
	}
	if err := box.validate(); err != nil {
		return nil, err
	}
	poly, err := bernstein.NewPositive2D(nx, ny, box.XMin, box.XMax, box.YMin, box.YMax)
	if err != nil {
		return nil, configError(err)
	}
	fx, err := newPSFactor(psx, opts...)
	if err != nil {
		return nil, err
	}
	fy, err := newPSFactor(psy, opts...)
	if err != nil {
		return nil, err
	}
	return &PS2DPol{separable: separable{poly: poly, fx: fx, fy: fy}, psx: fx, psy: fy}, nil
}

func (m *PS2DPol) PhaseSpaceX() phasespace.PhaseSpaceNL { return m.psx.ps }
func (m *PS2DPol) PhaseSpaceY() phasespace.PhaseSpaceNL { return m.psy.ps }

func (m *PS2DPol) Clone() Model {
	sep := m.separable.clone()
	return &PS2DPol{separable: sep, psx: sep.fx.(*psFactor), psy: sep.fy.(*psFactor)}
}

// PS2DPolSym is Ps(x)·Ps(y)·P_sym(x,y) on a square.
type PS2DPolSym struct {
	separable
	ps *psFactor
}

// NewPS2DPolSym builds the model on [xmin, xmax]², or on the phase-space
// thresholds when xmin and xmax are both zero.
func NewPS2DPolSym(ps phasespace.PhaseSpaceNL, n int, xmin, xmax float64, opts ...quad.Option) (*PS2DPolSym, error) {
	if xmin == 0 && xmax == 0 {
		xmin, xmax = ps.LowEdge(), ps.HighEdge()
	}
	if err := (Box{xmin, xmax, xmin, xmax}).validate(); err != nil {
		return nil, err
	}
	poly, err := bernstein.NewPositive2DSym(n, xmin, xmax)
	if err != nil {
		return nil, configError(err)
	}
	f, err := newPSFactor(ps, opts...)
	if err != nil {
		return nil, err
	}
	return &PS2DPolSym{separable: separable{poly: poly, fx: f, fy: f}, ps: f}, nil
}

func (m *PS2DPolSym) PhaseSpace() phasespace.PhaseSpaceNL { return m.ps.ps }

func (m *PS2DPolSym) Clone() Model {
	sep := m.separable.clone()
	return &PS2DPolSym{separable: sep, ps: sep.fx.(*psFactor)}
}

var (
	_ Model = (*PS2DPol)(nil)
	_ Model = (*PS2DPolSym)(nil)
)
