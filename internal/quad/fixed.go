package quad

import (
	"math"

	gquad "gonum.org/v1/gonum/integrate/quad"
)

// Panels splits [a, b] into the given number of equal panels and calls fn
// with every Gauss-Legendre node and its weight, scaled to the panel. Summing
// w*g(x) over the visited nodes integrates g.
func Panels(a, b float64, panels, n int, fn func(x, w float64)) {
	if a == b || n < 1 {
		return
	}
	if panels < 1 {
		panels = 1
	}
	t := make([]float64, n)
	wt := make([]float64, n)
	gquad.Legendre{}.FixedLocations(t, wt, -1, 1)

	width := (b - a) / float64(panels)
	for p := 0; p < panels; p++ {
		lo := a + float64(p)*width
		hi := lo + width
		if p == panels-1 {
			hi = b
		}
		c := 0.5 * (lo + hi)
		h := 0.5 * (hi - lo)
		for i := range t {
			fn(c+h*t[i], h*wt[i])
		}
	}
}

// PanelCount returns the number of panels needed so that rate*width stays
// below one on each panel, at least one.
func PanelCount(a, b, rate float64) int {
	n := int(math.Ceil(math.Abs(rate * (b - a))))
	if n < 1 {
		return 1
	}
	return n
}
