package bernstein

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// Basis fills out with the n+1 Bernstein basis polynomials of degree n
// evaluated at t. out is allocated when it is too short.
func Basis(n int, t float64, out []float64) []float64 {
	if cap(out) < n+1 {
		out = make([]float64, n+1)
	}
	out = out[:n+1]
	if t < 0 || t > 1 {
		for i := range out {
			out[i] = 0
		}
		return out
	}
	s := 1 - t
	for i := 0; i <= n; i++ {
		out[i] = float64(combin.Binomial(n, i)) * math.Pow(t, float64(i)) * math.Pow(s, float64(n-i))
	}
	return out
}

// BasisIntegrals fills out with the integrals of the degree-n basis
// polynomials over [ta, tb], clipped to [0, 1].
//
//	∫ b(i,n) dt = 1/(n+1) Σ_{j>i} b(j,n+1)
func BasisIntegrals(n int, ta, tb float64, out []float64) []float64 {
	if cap(out) < n+1 {
		out = make([]float64, n+1)
	}
	out = out[:n+1]

	sign := 1.0
	if ta > tb {
		ta, tb = tb, ta
		sign = -1
	}
	ta = clip01(ta)
	tb = clip01(tb)
	if ta == tb {
		for i := range out {
			out[i] = 0
		}
		return out
	}

	hi := Basis(n+1, tb, nil)
	lo := Basis(n+1, ta, nil)

	// suffix sums of the degree n+1 basis
	acc := 0.0
	scale := sign / float64(n+1)
	for i := n; i >= 0; i-- {
		acc += hi[i+1] - lo[i+1]
		out[i] = scale * acc
	}
	return out
}

func clip01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

// reduced maps x on [lo, hi] onto [0, 1].
func reduced(x, lo, hi float64) float64 {
	return (x - lo) / (hi - lo)
}
