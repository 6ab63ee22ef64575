package dalitz

import (
	"fmt"
	"math"

	"github.com/san-kum/dalitz/internal/phasespace"
)

// Plot holds the kinematics of M → m1 m2 m3 at a fixed overall mass.
type Plot struct {
	M, M1, M2, M3 float64
}

func NewPlot(M, m1, m2, m3 float64) (Plot, error) {
	if err := checkMasses(m1, m2, m3); err != nil {
		return Plot{}, err
	}
	if !(M >= 0) || math.IsInf(M, 0) {
		return Plot{}, fmt.Errorf("%w: M=%g", ErrInvalidMass, M)
	}
	return Plot{M: M, M1: m1, M2: m2, M3: m3}, nil
}

func checkMasses(ms ...float64) error {
	for i, m := range ms {
		if !(m >= 0) || math.IsInf(m, 0) {
			return fmt.Errorf("%w: m%d=%g", ErrInvalidMass, i+1, m)
		}
	}
	return nil
}

// S returns M².
func (p Plot) S() float64 { return p.M * p.M }

// Valid reports whether the Dalitz region is non-empty.
func (p Plot) Valid() bool { return p.M > p.M1+p.M2+p.M3 }

func (p Plot) S1Min() float64 { return sq(p.M1 + p.M2) }
func (p Plot) S1Max() float64 { return sq(p.M - p.M3) }
func (p Plot) S2Min() float64 { return sq(p.M2 + p.M3) }
func (p Plot) S2Max() float64 { return sq(p.M - p.M1) }
func (p Plot) S3Min() float64 { return sq(p.M1 + p.M3) }
func (p Plot) S3Max() float64 { return sq(p.M - p.M2) }

// SumS is s1 + s2 + s3 = s + m1² + m2² + m3².
func (p Plot) SumS() float64 {
	return p.S() + p.M1*p.M1 + p.M2*p.M2 + p.M3*p.M3
}

// S3 returns the third invariant for given s1 and s2.
func (p Plot) S3(s1, s2 float64) float64 { return p.SumS() - s1 - s2 }

// S2Range returns the allowed s2 interval at fixed s1.
func (p Plot) S2Range(s1 float64) (lo, hi float64, ok bool) {
	if !p.Valid() || s1 < p.S1Min() || s1 > p.S1Max() {
		return 0, 0, false
	}
	return boundary(p.S(), s1, p.M1, p.M2, p.M3)
}

// S1Range returns the allowed s1 interval at fixed s2.
func (p Plot) S1Range(s2 float64) (lo, hi float64, ok bool) {
	if !p.Valid() || s2 < p.S2Min() || s2 > p.S2Max() {
		return 0, 0, false
	}
	return boundary(p.S(), s2, p.M3, p.M2, p.M1)
}

// s1RangeAtS3 returns the allowed s1 interval at fixed s3.
func (p Plot) s1RangeAtS3(s3 float64) (lo, hi float64, ok bool) {
	if !p.Valid() || s3 < p.S3Min() || s3 > p.S3Max() {
		return 0, 0, false
	}
	return boundary(p.S(), s3, p.M3, p.M1, p.M2)
}

// Inside reports whether (s1, s2) lies in the Dalitz region.
func (p Plot) Inside(s1, s2 float64) bool {
	lo, hi, ok := p.S2Range(s1)
	return ok && lo <= s2 && s2 <= hi
}

// E2 returns the energy of particle 2 in the rest frame of M for a given s3.
func (p Plot) E2(s3 float64) float64 {
	return (p.S() + p.M2*p.M2 - s3) / (2 * p.M)
}

// E3 returns the energy of particle 3 in the rest frame of M for a given s1.
func (p Plot) E3(s1 float64) float64 {
	return (p.S() + p.M3*p.M3 - s1) / (2 * p.M)
}

// S3FromE2 inverts E2.
func (p Plot) S3FromE2(e2 float64) float64 {
	return p.S() + p.M2*p.M2 - 2*p.M*e2
}

// S1FromE3 inverts E3.
func (p Plot) S1FromE3(e3 float64) float64 {
	return p.S() + p.M3*p.M3 - 2*p.M*e3
}

// E2Range returns the kinematic limits of e2.
func (p Plot) E2Range() (lo, hi float64, ok bool) {
	if !p.Valid() {
		return 0, 0, false
	}
	return p.E2(p.S3Max()), p.E2(p.S3Min()), true
}

// E3Range returns the allowed e3 interval at fixed e2.
func (p Plot) E3Range(e2 float64) (lo, hi float64, ok bool) {
	s1lo, s1hi, ok := p.s1RangeAtS3(p.S3FromE2(e2))
	if !ok {
		return 0, 0, false
	}
	return p.E3(s1hi), p.E3(s1lo), true
}

// boundary returns the range of the invariant mass squared of (b, c) when
// the pair (a, b) has invariant mass squared sigma and recoils against c:
//
//	m_b² + m_c² + [(σ - m_a² + m_b²)(s - σ - m_c²) ± λ^½(σ, m_a², m_b²) λ^½(s, σ, m_c²)] / 2σ
func boundary(s, sigma, ma, mb, mc float64) (lo, hi float64, ok bool) {
	if sigma <= 0 {
		return 0, 0, false
	}
	ma2, mb2, mc2 := ma*ma, mb*mb, mc*mc
	l1 := phasespace.Lambda(sigma, ma2, mb2)
	l2 := phasespace.Lambda(s, sigma, mc2)
	if l1 < -tiny*sigma*sigma || l2 < -tiny*s*s {
		return 0, 0, false
	}
	root := math.Sqrt(math.Max(l1, 0)) * math.Sqrt(math.Max(l2, 0))
	base := (sigma - ma2 + mb2) * (s - sigma - mc2)
	lo = mb2 + mc2 + (base-root)/(2*sigma)
	hi = mb2 + mc2 + (base+root)/(2*sigma)
	return lo, hi, true
}

const tiny = 1e-12

func sq(x float64) float64 { return x * x }
