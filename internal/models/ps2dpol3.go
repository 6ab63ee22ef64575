package models

import (
	"fmt"
	"math"

	"github.com/san-kum/dalitz/internal/phasespace"
	"github.com/san-kum/dalitz/internal/quad"
)

// PS2DPol3 is
//
//	½[Px^(y)(x) Py(y) + Px(x) Py^(x)(y)]
//
// where Px and Py are phase-space factors each carrying its own positive
// polynomial. Parameters 0..Split()-1 belong to Px, the rest to Py.
type PS2DPol3 struct {
	px, py *phasespace.PhaseSpacePol
	mmax   float64
	outer  *quad.WorkSpace
}

// NewPS2DPol3 takes ownership of px and py. A non-positive mmax disables the
// cap and the model becomes Px(x)·Py(y).
func NewPS2DPol3(px, py *phasespace.PhaseSpacePol, mmax float64, opts ...quad.Option) (*PS2DPol3, error) {
	if px == nil || py == nil {
		return nil, fmt.Errorf("%w: nil factor", ErrInvalidConfig)
	}
	if px == py {
		return nil, fmt.Errorf("%w: x and y factors must be distinct", ErrInvalidConfig)
	}
	if math.IsNaN(mmax) || math.IsInf(mmax, 0) {
		return nil, fmt.Errorf("%w: mmax %v", ErrInvalidConfig, mmax)
	}
	return &PS2DPol3{px: px, py: py, mmax: mmax, outer: quad.NewWorkSpace(opts...)}, nil
}

// NewPS2DPol3FromOrders builds the two factors with polynomials of orders nx
// and ny on box, or on the thresholds when box is zero.
func NewPS2DPol3FromOrders(psx, psy phasespace.PhaseSpaceNL, mmax float64, nx, ny int, box Box, opts ...quad.Option) (*PS2DPol3, error) {
	if box.IsZero() {
		box = Box{psx.LowEdge(), psx.HighEdge(), psy.LowEdge(), psy.HighEdge()}
	}
	if err := box.validate(); err != nil {
		return nil, err
	}
	px, err := phasespace.NewPhaseSpacePol(psx, nx, box.XMin, box.XMax, opts...)
	if err != nil {
		return nil, configError(err)
	}
	py, err := phasespace.NewPhaseSpacePol(psy, ny, box.YMin, box.YMax, opts...)
	if err != nil {
		return nil, configError(err)
	}
	return NewPS2DPol3(px, py, mmax, opts...)
}

func (m *PS2DPol3) X() *phasespace.PhaseSpacePol { return m.px }
func (m *PS2DPol3) Y() *phasespace.PhaseSpacePol { return m.py }
func (m *PS2DPol3) MMax() float64                { return m.mmax }

// Split returns the number of parameters of the x factor; parameter k
// addresses the x factor when k < Split() and y factor parameter
// k-Split() otherwise.
func (m *PS2DPol3) Split() int { return m.px.NPars() }

func (m *PS2DPol3) NPars() int { return m.px.NPars() + m.py.NPars() }

func (m *PS2DPol3) Par(k int) float64 {
	switch {
	case k < 0 || k >= m.NPars():
		return 0
	case k < m.Split():
		return m.px.Par(k)
	default:
		return m.py.Par(k - m.Split())
	}
}

func (m *PS2DPol3) Pars() []float64 {
	return append(m.px.Pars(), m.py.Pars()...)
}

func (m *PS2DPol3) SetPar(k int, v float64) error {
	var err error
	switch {
	case k < 0 || k >= m.NPars():
		return fmt.Errorf("%w: index %d (npars %d)", ErrInvalidParameter, k, m.NPars())
	case k < m.Split():
		err = m.px.SetPar(k, v)
	default:
		err = m.py.SetPar(k-m.Split(), v)
	}
	if err != nil {
		return paramError(err)
	}
	return nil
}

func (m *PS2DPol3) XMin() float64 { return m.px.XMin() }
func (m *PS2DPol3) XMax() float64 { return m.px.XMax() }
func (m *PS2DPol3) YMin() float64 { return m.py.XMin() }
func (m *PS2DPol3) YMax() float64 { return m.py.XMax() }

func (m *PS2DPol3) Evaluate(x, y float64) float64 {
	return evaluatePol3(m.px, m.py, m.mmax, x, y)
}

func (m *PS2DPol3) Integral(xlow, xhigh, ylow, yhigh float64) (float64, error) {
	return integralPol3(m.outer, m.px, m.py, m.mmax, xlow, xhigh, ylow, yhigh)
}

func (m *PS2DPol3) IntegrateX(y, xlow, xhigh float64) (float64, error) {
	return integratePol3(m.outer, m.px, m.py, m.mmax, y, xlow, xhigh)
}

func (m *PS2DPol3) IntegrateY(x, ylow, yhigh float64) (float64, error) {
	return integratePol3(m.outer, m.py, m.px, m.mmax, x, ylow, yhigh)
}

func (m *PS2DPol3) Clone() Model {
	return &PS2DPol3{px: m.px.Clone(), py: m.py.Clone(), mmax: m.mmax, outer: m.outer.Clone()}
}

// PS2DPol3Sym is the symmetric PS2DPol3: one factor shared by both axes.
type PS2DPol3Sym struct {
	p     *phasespace.PhaseSpacePol
	mmax  float64
	outer *quad.WorkSpace
}

func NewPS2DPol3Sym(p *phasespace.PhaseSpacePol, mmax float64, opts ...quad.Option) (*PS2DPol3Sym, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil factor", ErrInvalidConfig)
	}
	if math.IsNaN(mmax) || math.IsInf(mmax, 0) {
		return nil, fmt.Errorf("%w: mmax %v", ErrInvalidConfig, mmax)
	}
	return &PS2DPol3Sym{p: p, mmax: mmax, outer: quad.NewWorkSpace(opts...)}, nil
}

// NewPS2DPol3SymFromOrder builds the shared factor with a polynomial of
// order n on [xmin, xmax], or on the thresholds when both are zero.
func NewPS2DPol3SymFromOrder(ps phasespace.PhaseSpaceNL, mmax float64, n int, xmin, xmax float64, opts ...quad.Option) (*PS2DPol3Sym, error) {
	if xmin == 0 && xmax == 0 {
		xmin, xmax = ps.LowEdge(), ps.HighEdge()
	}
	p, err := phasespace.NewPhaseSpacePol(ps, n, xmin, xmax, opts...)
	if err != nil {
		return nil, configError(err)
	}
	return NewPS2DPol3Sym(p, mmax, opts...)
}

func (m *PS2DPol3Sym) Factor() *phasespace.PhaseSpacePol { return m.p }
func (m *PS2DPol3Sym) MMax() float64                     { return m.mmax }
func (m *PS2DPol3Sym) NPars() int                        { return m.p.NPars() }
func (m *PS2DPol3Sym) Par(k int) float64                 { return m.p.Par(k) }
func (m *PS2DPol3Sym) Pars() []float64                   { return m.p.Pars() }
func (m *PS2DPol3Sym) XMin() float64                     { return m.p.XMin() }
func (m *PS2DPol3Sym) XMax() float64                     { return m.p.XMax() }
func (m *PS2DPol3Sym) YMin() float64                     { return m.p.XMin() }
func (m *PS2DPol3Sym) YMax() float64                     { return m.p.XMax() }

func (m *PS2DPol3Sym) SetPar(k int, v float64) error {
	if err := m.p.SetPar(k, v); err != nil {
		return paramError(err)
	}
	return nil
}

func (m *PS2DPol3Sym) Evaluate(x, y float64) float64 {
	return evaluatePol3(m.p, m.p, m.mmax, x, y)
}

func (m *PS2DPol3Sym) Integral(xlow, xhigh, ylow, yhigh float64) (float64, error) {
	return integralPol3(m.outer, m.p, m.p, m.mmax, xlow, xhigh, ylow, yhigh)
}

func (m *PS2DPol3Sym) IntegrateX(y, xlow, xhigh float64) (float64, error) {
	return integratePol3(m.outer, m.p, m.p, m.mmax, y, xlow, xhigh)
}

func (m *PS2DPol3Sym) IntegrateY(x, ylow, yhigh float64) (float64, error) {
	return integratePol3(m.outer, m.p, m.p, m.mmax, x, ylow, yhigh)
}

func (m *PS2DPol3Sym) Clone() Model {
	return &PS2DPol3Sym{p: m.p.Clone(), mmax: m.mmax, outer: m.outer.Clone()}
}

func pol3Capped(pu, pv *phasespace.PhaseSpacePol, mmax float64) bool {
	return mmax > 0 && mmax < pu.PhaseSpace().HighEdge()+pv.PhaseSpace().HighEdge()
}

func evaluatePol3(px, py *phasespace.PhaseSpacePol, mmax, x, y float64) float64 {
	if !inside(x, px.XMin(), px.XMax()) || !inside(y, py.XMin(), py.XMax()) {
		return 0
	}
	wx := px.Evaluate(x)
	wy := py.Evaluate(y)
	if !pol3Capped(px, py, mmax) {
		return wx * wy
	}
	cx := px.WithHigh(mmax - y).Evaluate(x)
	cy := py.WithHigh(mmax - x).Evaluate(y)
	return 0.5 * (cx*wy + wx*cy)
}

// integratePol3 integrates over u at fixed v = vv.
func integratePol3(ws *quad.WorkSpace, pu, pv *phasespace.PhaseSpacePol, mmax, vv, a, b float64) (float64, error) {
	if !inside(vv, pv.XMin(), pv.XMax()) {
		return 0, nil
	}
	ua, ub, sign, ok := clip(a, b, pu.XMin(), pu.XMax())
	if !ok {
		return 0, nil
	}
	wv := pv.Evaluate(vv)
	if !pol3Capped(pu, pv, mmax) {
		if wv == 0 {
			return 0, nil
		}
		iu, err := pu.Integral(ua, ub)
		return sign * wv * iu, err
	}

	own := 0.0
	if wv != 0 {
		iu, err := pu.WithHigh(mmax-vv).Integral(ua, ub)
		if err != nil {
			return 0, err
		}
		own = wv * iu
	}

	cross := 0.0
	hi := math.Min(ub, mmax-vv)
	if ua < hi {
		r, err := ws.Value(func(t float64) float64 {
			wu := pu.Evaluate(t)
			if wu == 0 {
				return 0
			}
			return wu * pv.WithHigh(mmax-t).Evaluate(vv)
		}, ua, hi)
		if err != nil {
			return 0, err
		}
		cross = r
	}
	return sign * 0.5 * (own + cross), nil
}

func integralPol3(ws *quad.WorkSpace, px, py *phasespace.PhaseSpacePol, mmax, xlow, xhigh, ylow, yhigh float64) (float64, error) {
	xa, xb, sx, ok := clip(xlow, xhigh, px.XMin(), px.XMax())
	if !ok {
		return 0, nil
	}
	ya, yb, sy, ok := clip(ylow, yhigh, py.XMin(), py.XMax())
	if !ok {
		return 0, nil
	}
	if !pol3Capped(px, py, mmax) {
		ix, err := px.Integral(xa, xb)
		if err != nil {
			return 0, err
		}
		iy, err := py.Integral(ya, yb)
		if err != nil {
			return 0, err
		}
		return sx * sy * ix * iy, nil
	}
	t1, err := halfPol3(ws, px, py, mmax, xa, xb, ya, yb)
	if err != nil {
		return 0, err
	}
	t2, err := halfPol3(ws, py, px, mmax, ya, yb, xa, xb)
	if err != nil {
		return 0, err
	}
	return sx * sy * 0.5 * (t1 + t2), nil
}

// halfPol3 is ∫dv Pv(v) ∫du Pu^(v)(u) over the clipped rectangle. The inner
// integral runs on the workspace of pu.
func halfPol3(ws *quad.WorkSpace, pu, pv *phasespace.PhaseSpacePol, mmax, ua, ub, va, vb float64) (float64, error) {
	va = math.Max(va, pv.PhaseSpace().LowEdge())
	vb = math.Min(vb, pv.PhaseSpace().HighEdge())
	if !(va < vb) {
		return 0, nil
	}
	var inner error
	r, err := ws.Value(func(vv float64) float64 {
		wv := pv.Evaluate(vv)
		if wv == 0 {
			return 0
		}
		iu, err := pu.WithHigh(mmax-vv).Integral(ua, ub)
		if err != nil && inner == nil {
			inner = err
		}
		return wv * iu
	}, va, vb)
	if err != nil {
		return 0, err
	}
	return r, inner
}

var (
	_ Model = (*PS2DPol3)(nil)
	_ Model = (*PS2DPol3Sym)(nil)
)
