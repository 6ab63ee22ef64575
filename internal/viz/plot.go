package viz

import (
	"github.com/guptarohit/asciigraph"
)

// PlotProjection draws sampled projection values as an ASCII line chart.
func PlotProjection(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
