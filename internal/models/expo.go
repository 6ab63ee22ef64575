package models

import (
	"github.com/san-kum/dalitz/internal/bernstein"
	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
)

// ExpoPS2DPol is exp(τx)·Ps_y(y)·P(x,y).
type ExpoPS2DPol struct {
	separable
	tau *expFactor
	psy *psFactor
}

// NewExpoPS2DPol builds the model on [xmin,xmax]×[ymin,ymax]; a zero y range
// selects the phase-space thresholds.
func NewExpoPS2DPol(psy phasespace.PhaseSpaceNL, xmin, xmax float64, nx, ny int, ymin, ymax, tau float64, opts ...quad.Option) (*ExpoPS2DPol, error) {
	if ymin == 0 && ymax == 0 {
		ymin, ymax = psy.LowEdge(), psy.HighEdge()
	}
	if err := (Box{xmin, xmax, ymin, ymax}).validate(); err != nil {
		return nil, err
	}
	poly, err := bernstein.NewPositive2D(nx, ny, xmin, xmax, ymin, ymax)
	if err != nil {
		return nil, configError(err)
	}
	if err := checkSlopes(poly, tau, 0); err != nil {
		return nil, configError(err)
	}
	fy, err := newPSFactor(psy, opts...)
	if err != nil {
		return nil, err
	}
	fx := &expFactor{tau: tau}
	return &ExpoPS2DPol{separable: separable{poly: poly, fx: fx, fy: fy}, tau: fx, psy: fy}, nil
}

func (m *ExpoPS2DPol) Tau() float64                         { return m.tau.tau }
func (m *ExpoPS2DPol) PhaseSpaceY() phasespace.PhaseSpaceNL { return m.psy.ps }

// SetTau changes the slope; an overflowing or non-finite value is rejected.
func (m *ExpoPS2DPol) SetTau(v float64) error {
	if err := checkSlopes(m.poly, v, 0); err != nil {
		return paramError(err)
	}
	m.tau.tau = v
	return nil
}

func (m *ExpoPS2DPol) Clone() Model {
	sep := m.separable.clone()
	return &ExpoPS2DPol{separable: sep, tau: sep.fx.(*expFactor), psy: sep.fy.(*psFactor)}
}

// Expo2DPol is exp(τx·x)·exp(τy·y)·P(x,y).
type Expo2DPol struct {
	separable
	taux, tauy *expFactor
}

func NewExpo2DPol(xmin, xmax, ymin, ymax float64, nx, ny int, taux, tauy float64) (*Expo2DPol, error) {
	if err := (Box{xmin, xmax, ymin, ymax}).validate(); err != nil {
		return nil, err
	}
	poly, err := bernstein.NewPositive2D(nx, ny, xmin, xmax, ymin, ymax)
	if err != nil {
		return nil, configError(err)
	}
	if err := checkSlopes(poly, taux, tauy); err != nil {
		return nil, configError(err)
	}
	fx := &expFactor{tau: taux}
	fy := &expFactor{tau: tauy}
	return &Expo2DPol{separable: separable{poly: poly, fx: fx, fy: fy}, taux: fx, tauy: fy}, nil
}

func (m *Expo2DPol) TauX() float64 { return m.taux.tau }
func (m *Expo2DPol) TauY() float64 { return m.tauy.tau }

// SetTauX changes the x slope. The check includes the current y slope.
func (m *Expo2DPol) SetTauX(v float64) error {
	if err := checkSlopes(m.poly, v, m.tauy.tau); err != nil {
		return paramError(err)
	}
	m.taux.tau = v
	return nil
}

func (m *Expo2DPol) SetTauY(v float64) error {
	if err := checkSlopes(m.poly, m.taux.tau, v); err != nil {
		return paramError(err)
	}
	m.tauy.tau = v
	return nil
}

func (m *Expo2DPol) Clone() Model {
	sep := m.separable.clone()
	return &Expo2DPol{separable: sep, taux: sep.fx.(*expFactor), tauy: sep.fy.(*expFactor)}
}

// Expo2DPolSym is exp(τx)·exp(τy)·P_sym(x,y) on a square.
type Expo2DPolSym struct {
	separable
	tau *expFactor
}

func NewExpo2DPolSym(xmin, xmax float64, n int, tau float64) (*Expo2DPolSym, error) {
	if err := (Box{xmin, xmax, xmin, xmax}).validate(); err != nil {
		return nil, err
	}
	poly, err := bernstein.NewPositive2DSym(n, xmin, xmax)
	if err != nil {
		return nil, configError(err)
	}
	if err := checkSlopes(poly, tau, tau); err != nil {
		return nil, configError(err)
	}
	f := &expFactor{tau: tau}
	return &Expo2DPolSym{separable: separable{poly: poly, fx: f, fy: f}, tau: f}, nil
}

func (m *Expo2DPolSym) Tau() float64 { return m.tau.tau }

// SetTau changes the slope shared by both axes.
func (m *Expo2DPolSym) SetTau(v float64) error {
	if err := checkSlopes(m.poly, v, v); err != nil {
		return paramError(err)
	}
	m.tau.tau = v
	return nil
}

func (m *Expo2DPolSym) Clone() Model {
	sep := m.separable.clone()
	return &Expo2DPolSym{separable: sep, tau: sep.fx.(*expFactor)}
}

var (
	_ Model = (*ExpoPS2DPol)(nil)
	_ Model = (*Expo2DPol)(nil)
	_ Model = (*Expo2DPolSym)(nil)
)
