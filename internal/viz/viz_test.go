package viz

import (
	"strings"
	"testing"
)

func TestTempColorBounds(t *testing.T) {
	cold := TempColor(300, 300, 1200)
	if string(cold) != "#101050" {
		t.Errorf("cold color = %s, want ramp start", cold)
	}
	hot := TempColor(1200, 300, 1200)
	if string(hot) != "#ff2000" {
		t.Errorf("hot color = %s, want ramp end", hot)
	}
	// Out-of-range values clamp instead of wrapping.
	if TempColor(-50, 300, 1200) != cold {
		t.Error("below-range value should clamp to cold")
	}
	if TempColor(9000, 300, 1200) != hot {
		t.Error("above-range value should clamp to hot")
	}
	// Degenerate scale does not divide by zero.
	_ = TempColor(300, 300, 300)
}

func TestHeatmapDimensions(t *testing.T) {
	nx, ny := 8, 6
	field := make([]float64, nx*ny)
	out := Heatmap(field, nx, ny, HeatmapOptions{TMin: 0, TMax: 1})
	if got := len(strings.Split(out, "\n")); got != ny {
		t.Errorf("heatmap has %d rows, want %d", got, ny)
	}

	// Downsampling halves the grid.
	out = Heatmap(field, nx, ny, HeatmapOptions{MaxCols: 4, MaxRows: 3, TMin: 0, TMax: 1})
	if got := len(strings.Split(out, "\n")); got != 3 {
		t.Errorf("downsampled heatmap has %d rows, want 3", got)
	}
}

func TestHeatmapRejectsBadInput(t *testing.T) {
	if out := Heatmap(nil, 4, 4, HeatmapOptions{}); out != "" {
		t.Error("short field should render nothing")
	}
	if out := Heatmap(make([]float64, 16), 0, 4, HeatmapOptions{}); out != "" {
		t.Error("zero nx should render nothing")
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("Sparkline = %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}, 3); len([]rune(got)) != 3 {
		t.Errorf("flat series sparkline = %q, want 3 runes", got)
	}
	if Sparkline(nil, 10) != "" {
		t.Error("empty series should render nothing")
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0.5, 10); got != "█████░░░░░" {
		t.Errorf("ProgressBar(0.5) = %q", got)
	}
	if got := ProgressBar(2.0, 4); got != "████" {
		t.Errorf("ProgressBar clamps high: %q", got)
	}
	if got := ProgressBar(-1.0, 4); got != "░░░░" {
		t.Errorf("ProgressBar clamps low: %q", got)
	}
}

func TestProfilePlots(t *testing.T) {
	field := []float64{0, 100, 200, 100, 0}
	if out := Profile(field, 20, 5, "rod"); !strings.Contains(out, "rod") {
		t.Errorf("Profile missing caption: %q", out)
	}
	if out := Profile([]float64{1}, 20, 5, ""); out != "" {
		t.Error("single-point profile should render nothing")
	}
	if out := EnergySeries([]float64{1, 2, 1}, 20, 4, "etot"); out == "" {
		t.Error("EnergySeries rendered nothing")
	}
}
