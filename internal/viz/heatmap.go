package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// thermal color ramp, cold to hot. Interpolated linearly between stops.
var rampStops = []struct {
	at      float64
	r, g, b int
}{
	{0.00, 0x10, 0x10, 0x50},
	{0.25, 0x00, 0x50, 0xff},
	{0.50, 0x00, 0xe0, 0xc0},
	{0.75, 0xff, 0xc0, 0x00},
	{1.00, 0xff, 0x20, 0x00},
}

// TempColor maps a temperature to a ramp color with fixed bounds.
// Fixed bounds keep the palette steady while the field decays instead
// of renormalizing every frame.
func TempColor(t, tMin, tMax float64) lipgloss.Color {
	f := 0.0
	if tMax > tMin {
		f = (t - tMin) / (tMax - tMin)
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	for i := 1; i < len(rampStops); i++ {
		if f > rampStops[i].at {
			continue
		}
		lo, hi := rampStops[i-1], rampStops[i]
		u := (f - lo.at) / (hi.at - lo.at)
		return lipgloss.Color(hexColor(
			lo.r+int(u*float64(hi.r-lo.r)),
			lo.g+int(u*float64(hi.g-lo.g)),
			lo.b+int(u*float64(hi.b-lo.b)),
		))
	}
	last := rampStops[len(rampStops)-1]
	return lipgloss.Color(hexColor(last.r, last.g, last.b))
}

// HeatmapOptions sizes the rendering in terminal cells. Each field
// sample becomes two characters wide so cells come out roughly square.
type HeatmapOptions struct {
	MaxCols, MaxRows int     // rendered sample grid bounds
	TMin, TMax       float64 // fixed color-scale bounds [K]
}

// Heatmap renders a row-major nx-by-ny field as colored blocks,
// averaging the field down when it is larger than the requested size.
// Row 0 is drawn at the bottom.
func Heatmap(field []float64, nx, ny int, opt HeatmapOptions) string {
	if nx <= 0 || ny <= 0 || len(field) < nx*ny {
		return ""
	}
	cols, rows := opt.MaxCols, opt.MaxRows
	if cols <= 0 || cols > nx {
		cols = nx
	}
	if rows <= 0 || rows > ny {
		rows = ny
	}

	var b strings.Builder
	for row := rows - 1; row >= 0; row-- {
		j0, j1 := row*ny/rows, (row+1)*ny/rows
		for col := 0; col < cols; col++ {
			i0, i1 := col*nx/cols, (col+1)*nx/cols
			sum, n := 0.0, 0
			for j := j0; j < j1; j++ {
				for i := i0; i < i1; i++ {
					sum += field[j*nx+i]
					n++
				}
			}
			mean := sum / float64(n)
			b.WriteString(lipgloss.NewStyle().Foreground(TempColor(mean, opt.TMin, opt.TMax)).Render("██"))
		}
		if row > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
