package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Profile plots a 1D temperature field against cell index.
func Profile(field []float64, width, height int, caption string) string {
	if len(field) < 2 {
		return ""
	}
	return asciigraph.Plot(field,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// EnergySeries plots sampled observables over a run (total energy,
// temperature). The slice is plotted as-is; callers downsample long
// histories first.
func EnergySeries(values []float64, width, height int, caption string) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
