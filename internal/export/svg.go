// Package export renders simulation output to SVG for use outside the
// terminal: temperature fields as colored cell grids and sampled
// observable series as line plots.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/matsim/internal/viz"
)

// FieldSVG renders a row-major nx-by-ny temperature field as one SVG
// rect per cell, colored on the fixed [tMin, tMax] thermal ramp shared
// with the terminal heatmap. cellPx is the edge of one cell in pixels.
func FieldSVG(field []float64, nx, ny int, tMin, tMax float64, cellPx int) string {
	if nx <= 0 || ny <= 0 || len(field) < nx*ny {
		return ""
	}
	if cellPx <= 0 {
		cellPx = 8
	}
	width, height := nx*cellPx, ny*cellPx

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, width, height, width, height))
	for j := 0; j < ny; j++ {
		// Row 0 at the bottom, matching the terminal rendering.
		y := (ny - 1 - j) * cellPx
		for i := 0; i < nx; i++ {
			color := string(viz.TempColor(field[j*nx+i], tMin, tMax))
			sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>
`, i*cellPx, y, cellPx, cellPx, color))
		}
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesSVG plots one observable against time as a stroked path,
// padding the value bounds by a tenth so the curve clears the frame.
func SeriesSVG(times, values []float64, width, height int, stroke string) string {
	if len(times) < 2 || len(times) != len(values) {
		return ""
	}
	tMin, tMax := times[0], times[len(times)-1]
	vMin, vMax := values[0], values[0]
	for _, v := range values {
		if v < vMin {
			vMin = v
		}
		if v > vMax {
			vMax = v
		}
	}
	tRange, vRange := tMax-tMin, vMax-vMin
	if tRange == 0 {
		tRange = 1
	}
	if vRange == 0 {
		vRange = 1
	}
	vMin -= vRange * 0.1
	vMax += vRange * 0.1
	vRange = vMax - vMin

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke))
	for i := range times {
		x := (times[i] - tMin) / tRange * float64(width)
		y := float64(height) - (values[i]-vMin)/vRange*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
