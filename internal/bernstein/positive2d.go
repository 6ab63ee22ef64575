package bernstein

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Positive2D is a non-negative 2D polynomial of orders (Nx, Ny) on
// [xmin,xmax]×[ymin,ymax] with unit integral over the box. Its
// (Nx+1)(Ny+1)-1 parameters are N-sphere phases; the Bernstein coefficient
// c(i,j) is proportional to the squared coordinate i·(Ny+1)+j.
type Positive2D struct {
	nx, ny     int
	xmin, xmax float64
	ymin, ymax float64
	sphere     *NSphere
	coeffs     *mat.Dense
}

func NewPositive2D(nx, ny int, xmin, xmax, ymin, ymax float64) (*Positive2D, error) {
	if nx < 0 || ny < 0 {
		return nil, fmt.Errorf("%w: nx=%d ny=%d", ErrInvalidOrder, nx, ny)
	}
	if err := checkRange(xmin, xmax); err != nil {
		return nil, err
	}
	if err := checkRange(ymin, ymax); err != nil {
		return nil, err
	}
	p := &Positive2D{
		nx: nx, ny: ny,
		xmin: xmin, xmax: xmax,
		ymin: ymin, ymax: ymax,
		sphere: NewNSphere((nx+1)*(ny+1) - 1),
		coeffs: mat.NewDense(nx+1, ny+1, nil),
	}
	p.update()
	return p, nil
}

func checkRange(lo, hi float64) error {
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, lo, hi)
	}
	return nil
}

func (p *Positive2D) NX() int       { return p.nx }
func (p *Positive2D) NY() int       { return p.ny }
func (p *Positive2D) XMin() float64 { return p.xmin }
func (p *Positive2D) XMax() float64 { return p.xmax }
func (p *Positive2D) YMin() float64 { return p.ymin }
func (p *Positive2D) YMax() float64 { return p.ymax }
func (p *Positive2D) NPars() int    { return p.sphere.NPhi() }

func (p *Positive2D) Par(k int) float64 {
	if k < 0 || k >= p.NPars() {
		return 0
	}
	return p.sphere.Phase(k)
}

func (p *Positive2D) Pars() []float64 { return p.sphere.Phases() }

func (p *Positive2D) SetPar(k int, v float64) error {
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

// Coefficients exposes the (Nx+1)×(Ny+1) coefficient grid.
func (p *Positive2D) Coefficients() mat.Matrix { return p.coeffs }

func (p *Positive2D) Coefficient(i, j int) float64 { return p.coeffs.At(i, j) }

func (p *Positive2D) Evaluate(x, y float64) float64 {
	if x < p.xmin || x > p.xmax || y < p.ymin || y > p.ymax {
		return 0
	}
	return p.Calculate(p.BasisX(x), p.BasisY(y))
}

func (p *Positive2D) Integral(xlow, xhigh, ylow, yhigh float64) float64 {
	return p.Calculate(p.MomentsX(xlow, xhigh), p.MomentsY(ylow, yhigh))
}

func (p *Positive2D) IntegrateX(y, xlow, xhigh float64) float64 {
	if y < p.ymin || y > p.ymax {
		return 0
	}
	return p.Calculate(p.MomentsX(xlow, xhigh), p.BasisY(y))
}

func (p *Positive2D) IntegrateY(x, ylow, yhigh float64) float64 {
	if x < p.xmin || x > p.xmax {
		return 0
	}
	return p.Calculate(p.BasisX(x), p.MomentsY(ylow, yhigh))
}

func (p *Positive2D) BasisX(x float64) []float64 {
	return Basis(p.nx, reduced(x, p.xmin, p.xmax), nil)
}

func (p *Positive2D) BasisY(y float64) []float64 {
	return Basis(p.ny, reduced(y, p.ymin, p.ymax), nil)
}

func (p *Positive2D) MomentsX(a, b float64) []float64 {
	return moments(p.nx, a, b, p.xmin, p.xmax)
}

func (p *Positive2D) MomentsY(a, b float64) []float64 {
	return moments(p.ny, a, b, p.ymin, p.ymax)
}

func (p *Positive2D) Calculate(fx, fy []float64) float64 {
	return mat.Inner(mat.NewVecDense(len(fx), fx), p.coeffs, mat.NewVecDense(len(fy), fy))
}

func (p *Positive2D) Clone() *Positive2D {
	c := *p
	c.sphere = p.sphere.Clone()
	c.coeffs = mat.DenseCopyOf(p.coeffs)
	return &c
}

func (p *Positive2D) CloneSurface() Surface { return p.Clone() }

func (p *Positive2D) update() {
	norm := float64((p.nx+1)*(p.ny+1)) / ((p.xmax - p.xmin) * (p.ymax - p.ymin))
	for i := 0; i <= p.nx; i++ {
		for j := 0; j <= p.ny; j++ {
			p.coeffs.Set(i, j, norm*p.sphere.X2(i*(p.ny+1)+j))
		}
	}
}
