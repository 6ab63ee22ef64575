package phasespace

import (
	"fmt"
	"math"

	"github.com/san-kum/dalitz/internal/quad"
)

// Lambda is the Källén triangle function a² + b² + c² - 2ab - 2bc - 2ca.
func Lambda(a, b, c float64) float64 {
	return a*a + b*b + c*c - 2*a*b - 2*b*c - 2*c*a
}

// SqrtLambda returns λ^½, zero when λ is not positive.
func SqrtLambda(a, b, c float64) float64 {
	l := Lambda(a, b, c)
	if l <= 0 {
		return 0
	}
	return math.Sqrt(l)
}

// Q returns the breakup momentum of m → m1 m2, zero below threshold.
func Q(m, m1, m2 float64) float64 {
	if m <= 0 || m < m1+m2 {
		return 0
	}
	return SqrtLambda(m*m, m1*m1, m2*m2) / (2 * m)
}

// PhaseSpace2 returns the two-body phase-space factor 2q/m.
func PhaseSpace2(m, m1, m2 float64) float64 {
	if m <= m1+m2 {
		return 0
	}
	return 2 * Q(m, m1, m2) / m
}

// DalitzArea returns the area of the Dalitz plot of m → m1 m2 m3 in
// (s1, s2) = (m12², m23²) as a single integral over s1 of the width of the
// s2 range:
//
//	∫ λ^½(s1, m1², m2²) λ^½(s, s1, m3²) / s1 ds1
func DalitzArea(m, m1, m2, m3 float64, opts ...quad.Option) (float64, error) {
	if err := checkMasses(m1, m2, m3); err != nil {
		return 0, err
	}
	if !(m > m1+m2+m3) {
		return 0, nil
	}
	s := m * m
	lo := (m1 + m2) * (m1 + m2)
	hi := (m - m3) * (m - m3)
	width := func(s1 float64) float64 {
		if s1 <= 0 {
			return 0
		}
		return SqrtLambda(s1, m1*m1, m2*m2) * SqrtLambda(s, s1, m3*m3) / s1
	}
	return quad.NewWorkSpace(opts...).Value(width, lo, hi)
}

// PhaseSpace3 returns the three-body phase-space volume π²/(4s) times the
// Dalitz plot area.
func PhaseSpace3(m, m1, m2, m3 float64, opts ...quad.Option) (float64, error) {
	area, err := DalitzArea(m, m1, m2, m3, opts...)
	if err != nil || area == 0 {
		return 0, err
	}
	return math.Pi * math.Pi / (4 * m * m) * area, nil
}

func checkMasses(ms ...float64) error {
	for i, m := range ms {
		if !(m >= 0) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: m%d=%g", ErrInvalidMass, i+1, m)
		}
	}
	return nil
}
