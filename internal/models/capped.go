package models

import (
	"fmt"
	"math"

	"github.com/san-kum/dalitz/internal/bernstein"
	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
)

// capped extends separable with the mass cap mmax:
//
//	f = ½[Ps_x^(y)(x) Ps_y(y) + Ps_x(x) Ps_y^(x)(y)] P(x,y)
//
// The capped factors are recomputed per call through WithHigh; nothing is
// cached between calls. Integrals use the outer workspace over the
// companion coordinate and the factor workspaces for the inner moments.
type capped struct {
	separable
	psx, psy *psFactor
	mmax     float64
	outer    *quad.WorkSpace
}

func newCapped(poly bernstein.Surface, psx, psy *psFactor, mmax float64, opts ...quad.Option) (capped, error) {
	if math.IsNaN(mmax) || math.IsInf(mmax, 0) {
		return capped{}, fmt.Errorf("%w: mmax %v", ErrInvalidConfig, mmax)
	}
	return capped{
		separable: separable{poly: poly, fx: psx, fy: psy},
		psx:       psx,
		psy:       psy,
		mmax:      mmax,
		outer:     quad.NewWorkSpace(opts...),
	}, nil
}

// MMax returns the mass cap; zero or negative means uncapped.
func (c *capped) MMax() float64 { return c.mmax }

// active reports whether the cap can bite anywhere inside the thresholds.
func (c *capped) active() bool {
	return c.mmax > 0 && c.mmax < c.psx.ps.HighEdge()+c.psy.ps.HighEdge()
}

func (c *capped) Evaluate(x, y float64) float64 {
	if !inside(x, c.XMin(), c.XMax()) || !inside(y, c.YMin(), c.YMax()) {
		return 0
	}
	if !c.active() {
		return c.separable.Evaluate(x, y)
	}
	wx := c.psx.ps.Evaluate(x)
	wy := c.psy.ps.Evaluate(y)
	cx := c.psx.ps.WithHigh(c.mmax - y).Evaluate(x)
	cy := c.psy.ps.WithHigh(c.mmax - x).Evaluate(y)
	return 0.5 * (cx*wy + wx*cy) * c.poly.Evaluate(x, y)
}

// side is one coordinate of the surface seen from the generic integrals.
type side struct {
	f      *psFactor
	basis  func(float64) []float64
	n      int
	lo, hi float64
}

func (c *capped) sides(uIsX bool) (u, v side) {
	x := side{f: c.psx, basis: c.poly.BasisX, n: c.poly.NX(), lo: c.XMin(), hi: c.XMax()}
	y := side{f: c.psy, basis: c.poly.BasisY, n: c.poly.NY(), lo: c.YMin(), hi: c.YMax()}
	if uIsX {
		return x, y
	}
	return y, x
}

func (c *capped) calc(fu, fv []float64, uIsX bool) float64 {
	if uIsX {
		return c.poly.Calculate(fu, fv)
	}
	return c.poly.Calculate(fv, fu)
}

// own is ∫du Ps_u^(v)(u) Ps_v(v) P(u,v) over [ua, ub] at v = vv.
func (c *capped) own(u, v side, uIsX bool, vv, ua, ub float64) (float64, error) {
	wv := v.f.ps.Evaluate(vv)
	if wv == 0 {
		return 0, nil
	}
	m, err := psMoments(u.f.ws, u.f.ps.WithHigh(c.mmax-vv), ua, ub, u.basis, u.n)
	if err != nil {
		return 0, err
	}
	return wv * c.calc(m, v.basis(vv), uIsX), nil
}

// cross is ∫du Ps_u(u) Ps_v^(u)(v) P(u,v) over [ua, ub] at v = vv.
func (c *capped) cross(u, v side, uIsX bool, vv, ua, ub float64) (float64, error) {
	// Ps_v^(u)(vv) vanishes once the cap mmax-u drops below vv
	lo := math.Max(ua, u.f.ps.LowEdge())
	hi := math.Min(math.Min(ub, u.f.ps.HighEdge()), c.mmax-vv)
	if !(lo < hi) {
		return 0, nil
	}
	w := func(t float64) float64 {
		wu := u.f.ps.Evaluate(t)
		if wu == 0 {
			return 0
		}
		return wu * v.f.ps.WithHigh(c.mmax-t).Evaluate(vv)
	}
	m, err := weightedMoments(c.outer, w, u.basis, u.n, lo, hi)
	if err != nil {
		return 0, err
	}
	return c.calc(m, v.basis(vv), uIsX), nil
}

func (c *capped) integrate(uIsX bool, vv, a, b float64) (float64, error) {
	u, v := c.sides(uIsX)
	if !inside(vv, v.lo, v.hi) {
		return 0, nil
	}
	ua, ub, sign, ok := clip(a, b, u.lo, u.hi)
	if !ok {
		return 0, nil
	}
	t1, err := c.own(u, v, uIsX, vv, ua, ub)
	if err != nil {
		return 0, err
	}
	t2, err := c.cross(u, v, uIsX, vv, ua, ub)
	if err != nil {
		return 0, err
	}
	return sign * 0.5 * (t1 + t2), nil
}

func (c *capped) IntegrateX(y, xlow, xhigh float64) (float64, error) {
	if !c.active() {
		return c.separable.IntegrateX(y, xlow, xhigh)
	}
	return c.integrate(true, y, xlow, xhigh)
}

func (c *capped) IntegrateY(x, ylow, yhigh float64) (float64, error) {
	if !c.active() {
		return c.separable.IntegrateY(x, ylow, yhigh)
	}
	return c.integrate(false, x, ylow, yhigh)
}

// half is ∫dv ∫du Ps_u^(v)(u) Ps_v(v) P(u,v) over the clipped rectangle.
func (c *capped) half(uIsX bool, ua, ub, va, vb float64) (float64, error) {
	u, v := c.sides(uIsX)
	lo := math.Max(va, v.f.ps.LowEdge())
	hi := math.Min(vb, v.f.ps.HighEdge())
	if !(lo < hi) {
		return 0, nil
	}
	var inner error
	g := func(vv float64) float64 {
		r, err := c.own(u, v, uIsX, vv, ua, ub)
		if err != nil && inner == nil {
			inner = err
		}
		return r
	}
	r, err := c.outer.Value(g, lo, hi)
	if err != nil {
		return 0, err
	}
	return r, inner
}

func (c *capped) Integral(xlow, xhigh, ylow, yhigh float64) (float64, error) {
	if !c.active() {
		return c.separable.Integral(xlow, xhigh, ylow, yhigh)
	}
	xa, xb, sx, ok := clip(xlow, xhigh, c.XMin(), c.XMax())
	if !ok {
		return 0, nil
	}
	ya, yb, sy, ok := clip(ylow, yhigh, c.YMin(), c.YMax())
	if !ok {
		return 0, nil
	}
	t1, err := c.half(true, xa, xb, ya, yb)
	if err != nil {
		return 0, err
	}
	t2, err := c.half(false, ya, yb, xa, xb)
	if err != nil {
		return 0, err
	}
	return sx * sy * 0.5 * (t1 + t2), nil
}

func (c *capped) clone() capped {
	sep := c.separable.clone()
	return capped{
		separable: sep,
		psx:       sep.fx.(*psFactor),
		psy:       sep.fy.(*psFactor),
		mmax:      c.mmax,
		outer:     c.outer.Clone(),
	}
}

// PS2DPol2 is PS2DPol with the mass cap mmax on x + y.
type PS2DPol2 struct {
	capped
}

// NewPS2DPol2 builds the model on box, or on the phase-space thresholds when
// box is zero. A non-positive mmax disables the cap.
func NewPS2DPol2(psx, psy phasespace.PhaseSpaceNL, mmax float64, nx, ny int, box Box, opts ...quad.Option) (*PS2DPol2, error) {
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
	c, err := newCapped(poly, fx, fy, mmax, opts...)
	if err != nil {
		return nil, err
	}
	return &PS2DPol2{capped: c}, nil
}

func (m *PS2DPol2) PhaseSpaceX() phasespace.PhaseSpaceNL { return m.psx.ps }
func (m *PS2DPol2) PhaseSpaceY() phasespace.PhaseSpaceNL { return m.psy.ps }

func (m *PS2DPol2) Clone() Model { return &PS2DPol2{capped: m.capped.clone()} }

// PS2DPol2Sym is the symmetric PS2DPol2 on a square.
type PS2DPol2Sym struct {
	capped
}

// NewPS2DPol2Sym builds the model on [xmin, xmax]², or on the phase-space
// thresholds when xmin and xmax are both zero.
func NewPS2DPol2Sym(ps phasespace.PhaseSpaceNL, mmax float64, n int, xmin, xmax float64, opts ...quad.Option) (*PS2DPol2Sym, error) {
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
	c, err := newCapped(poly, f, f, mmax, opts...)
	if err != nil {
		return nil, err
	}
	return &PS2DPol2Sym{capped: c}, nil
}

func (m *PS2DPol2Sym) PhaseSpace() phasespace.PhaseSpaceNL { return m.psx.ps }

func (m *PS2DPol2Sym) Clone() Model { return &PS2DPol2Sym{capped: m.capped.clone()} }

var (
	_ Model = (*PS2DPol2)(nil)
	_ Model = (*PS2DPol2Sym)(nil)
)
