package bernstein

// Surface is a positive 2D polynomial built as a (possibly symmetrised)
// tensor product of 1D Bernstein bases. Any weighted integral of a separable
// weight wx(x)·wy(y) against the surface reduces to
//
//	Calculate(∫wx·bx, ∫wy·by)
//
// which is what the composite models rely on.
type Surface interface {
	NX() int
	NY() int
	XMin() float64
	XMax() float64
	YMin() float64
	YMax() float64

	NPars() int
	Par(k int) float64
	Pars() []float64
	SetPar(k int, v float64) error

	Evaluate(x, y float64) float64
	Integral(xlow, xhigh, ylow, yhigh float64) float64
	IntegrateX(y, xlow, xhigh float64) float64
	IntegrateY(x, ylow, yhigh float64) float64

	// BasisX returns the NX()+1 basis values at x, zero outside the support.
	BasisX(x float64) []float64
	// BasisY returns the NY()+1 basis values at y, zero outside the support.
	BasisY(y float64) []float64
	// MomentsX returns the integrals of the x basis over [a, b].
	MomentsX(a, b float64) []float64
	// MomentsY returns the integrals of the y basis over [a, b].
	MomentsY(a, b float64) []float64
	// Calculate contracts the coefficient grid: Σ c(i,j)·fx[i]·fy[j].
	Calculate(fx, fy []float64) float64

	CloneSurface() Surface
}

var (
	_ Surface = (*Positive2D)(nil)
	_ Surface = (*Positive2DSym)(nil)
)

func moments(n int, a, b, lo, hi float64) []float64 {
	out := BasisIntegrals(n, reduced(a, lo, hi), reduced(b, lo, hi), nil)
	w := hi - lo
	for i := range out {
		out[i] *= w
	}
	return out
}
