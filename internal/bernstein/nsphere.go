package bernstein

import "math"

// NSphere maps n phases onto the n+1 squared Cartesian coordinates of a point
// on the unit sphere. The squares are non-negative and sum to one for any
// phases. The phases are rotated so that all-zero phases give equal squares.
type NSphere struct {
	phases []float64
	deltas []float64
	x2     []float64
}

func NewNSphere(n int) *NSphere {
	if n < 0 {
		n = 0
	}
	s := &NSphere{
		phases: make([]float64, n),
		deltas: make([]float64, n),
		x2:     make([]float64, n+1),
	}
	for i := 0; i < n; i++ {
		s.deltas[i] = math.Acos(1 / math.Sqrt(float64(n+1-i)))
	}
	s.update()
	return s
}

// NPhi returns the number of phases.
func (s *NSphere) NPhi() int { return len(s.phases) }

// Dim returns the number of coordinates.
func (s *NSphere) Dim() int { return len(s.x2) }

func (s *NSphere) Phase(k int) float64 { return s.phases[k] }

func (s *NSphere) Phases() []float64 {
	out := make([]float64, len(s.phases))
	copy(out, s.phases)
	return out
}

// X2 returns the k-th squared coordinate.
func (s *NSphere) X2(k int) float64 { return s.x2[k] }

// SetPhase updates phase k and reports whether the value changed.
func (s *NSphere) SetPhase(k int, v float64) bool {
	if s.phases[k] == v {
		return false
	}
	s.phases[k] = v
	s.update()
	return true
}

func (s *NSphere) Clone() *NSphere {
	c := &NSphere{
		phases: make([]float64, len(s.phases)),
		deltas: s.deltas,
		x2:     make([]float64, len(s.x2)),
	}
	copy(c.phases, s.phases)
	copy(c.x2, s.x2)
	return c
}

func (s *NSphere) update() {
	prod := 1.0
	n := len(s.phases)
	for i := 0; i < n; i++ {
		phi := s.phases[i] + s.deltas[i]
		x := prod * math.Cos(phi)
		s.x2[i] = x * x
		prod *= math.Sin(phi)
	}
	s.x2[n] = prod * prod
}
