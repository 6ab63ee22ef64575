package bernstein

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Positive2DSym is a non-negative symmetric 2D polynomial of order N on the
// square [xmin,xmax]², f(x,y) = f(y,x), with unit integral. Only the upper
// triangle i ≤ j of the coefficient grid is parameterised, giving
// (N+1)(N+2)/2 - 1 phases.
type Positive2DSym struct {
	n          int
	xmin, xmax float64
	sphere     *NSphere
	coeffs     *mat.SymDense
}

func NewPositive2DSym(n int, xmin, xmax float64) (*Positive2DSym, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, n)
	}
	if err := checkRange(xmin, xmax); err != nil {
		return nil, err
	}
	p := &Positive2DSym{
		n:      n,
		xmin:   xmin,
		xmax:   xmax,
		sphere: NewNSphere((n+1)*(n+2)/2 - 1),
		coeffs: mat.NewSymDense(n+1, nil),
	}
	p.update()
	return p, nil
}

func (p *Positive2DSym) N() int        { return p.n }
func (p *Positive2DSym) NX() int       { return p.n }
func (p *Positive2DSym) NY() int       { return p.n }
func (p *Positive2DSym) XMin() float64 { return p.xmin }
func (p *Positive2DSym) XMax() float64 { return p.xmax }
func (p *Positive2DSym) YMin() float64 { return p.xmin }
func (p *Positive2DSym) YMax() float64 { return p.xmax }
func (p *Positive2DSym) NPars() int    { return p.sphere.NPhi() }

func (p *Positive2DSym) Par(k int) float64 {
	if k < 0 || k >= p.NPars() {
		return 0
	}
	return p.sphere.Phase(k)
}

func (p *Positive2DSym) Pars() []float64 { return p.sphere.Phases() }

func (p *Positive2DSym) SetPar(k int, v float64) error {
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

func (p *Positive2DSym) Coefficients() mat.Matrix { return p.coeffs }

func (p *Positive2DSym) Coefficient(i, j int) float64 { return p.coeffs.At(i, j) }

// Evaluate sums each off-diagonal pair as c(i,j)·(bx[i]·by[j] + bx[j]·by[i]),
// which makes f(x,y) and f(y,x) bit-for-bit equal.
func (p *Positive2DSym) Evaluate(x, y float64) float64 {
	if x < p.xmin || x > p.xmax || y < p.xmin || y > p.xmax {
		return 0
	}
	bx := p.BasisX(x)
	by := p.BasisY(y)
	sum := 0.0
	for i := 0; i <= p.n; i++ {
		sum += p.coeffs.At(i, i) * (bx[i] * by[i])
		for j := i + 1; j <= p.n; j++ {
			sum += p.coeffs.At(i, j) * (bx[i]*by[j] + bx[j]*by[i])
		}
	}
	return sum
}

func (p *Positive2DSym) Integral(xlow, xhigh, ylow, yhigh float64) float64 {
	return p.Calculate(p.MomentsX(xlow, xhigh), p.MomentsY(ylow, yhigh))
}

func (p *Positive2DSym) IntegrateX(y, xlow, xhigh float64) float64 {
	if y < p.xmin || y > p.xmax {
		return 0
	}
	return p.Calculate(p.MomentsX(xlow, xhigh), p.BasisY(y))
}

func (p *Positive2DSym) IntegrateY(x, ylow, yhigh float64) float64 {
	if x < p.xmin || x > p.xmax {
		return 0
	}
	return p.Calculate(p.BasisX(x), p.MomentsY(ylow, yhigh))
}

func (p *Positive2DSym) BasisX(x float64) []float64 {
	return Basis(p.n, reduced(x, p.xmin, p.xmax), nil)
}

func (p *Positive2DSym) BasisY(y float64) []float64 { return p.BasisX(y) }

func (p *Positive2DSym) MomentsX(a, b float64) []float64 {
	return moments(p.n, a, b, p.xmin, p.xmax)
}

func (p *Positive2DSym) MomentsY(a, b float64) []float64 { return p.MomentsX(a, b) }

func (p *Positive2DSym) Calculate(fx, fy []float64) float64 {
	return mat.Inner(mat.NewVecDense(len(fx), fx), p.coeffs, mat.NewVecDense(len(fy), fy))
}

func (p *Positive2DSym) Clone() *Positive2DSym {
	c := *p
	c.sphere = p.sphere.Clone()
	c.coeffs = mat.NewSymDense(p.n+1, nil)
	c.coeffs.CopySym(p.coeffs)
	return &c
}

func (p *Positive2DSym) CloneSurface() Surface { return p.Clone() }

func (p *Positive2DSym) update() {
	side := p.xmax - p.xmin
	norm := float64((p.n+1)*(p.n+1)) / (side * side)
	k := 0
	for i := 0; i <= p.n; i++ {
		p.coeffs.SetSym(i, i, norm*p.sphere.X2(k))
		k++
		for j := i + 1; j <= p.n; j++ {
			p.coeffs.SetSym(i, j, 0.5*norm*p.sphere.X2(k))
			k++
		}
	}
}
