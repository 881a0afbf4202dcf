package plots

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/dclamage/SudokuVariantSolverJS/src/analysis"
)

// DeltaChart plots every puzzle's delta for one metric in ranking order (most improved on the left).
// Improvements are green, regressions red, unchanged puzzles gray.
type DeltaChart struct {
	Metric analysis.Metric
	Ranked []analysis.PuzzleDelta
	Width  int
	Height int
}

// Render draws the chart with go-chart and decodes it back into an image.
func (c DeltaChart) Render() (image.Image, error) {
	b, err := c.renderPNG()
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(b))
}

func (c DeltaChart) renderPNG() ([]byte, error) {
	if len(c.Ranked) == 0 {
		return nil, ErrNoPoints
	}
	w, h := c.Width, c.Height
	if h <= 0 {
		w, h = ChartDimensions(w)
	}

	var (
		improved, unchanged, regressed [2][]float64
		lo, hi                         int
	)
	for i, pd := range c.Ranked {
		x, y := float64(i+1), float64(pd.Delta)
		dst := &unchanged
		switch {
		case pd.Delta < 0:
			dst = &improved
		case pd.Delta > 0:
			dst = &regressed
		}
		dst[0] = append(dst[0], x)
		dst[1] = append(dst[1], y)
		lo = min(lo, pd.Delta)
		hi = max(hi, pd.Delta)
	}

	n := float64(len(c.Ranked))
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "zero",
			XValues: []float64{0.5, n + 0.5},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeWidth: 1, StrokeColor: chart.ColorAlternateGray},
		},
	}
	add := func(name string, xy [2][]float64, st chart.Style) {
		if len(xy[0]) == 0 {
			return
		}
		series = append(series, chart.ContinuousSeries{Name: fmt.Sprintf("%s (%d)", name, len(xy[0])), XValues: xy[0], YValues: xy[1], Style: st})
	}
	add("improved", improved, pointStyle(chart.ColorGreen))
	add("unchanged", unchanged, pointStyle(chart.ColorAlternateGray))
	add("regressed", regressed, pointStyle(chart.ColorRed))

	yRange, yTicks := deltaAxis(lo, hi)
	ch := chart.Chart{
		Title:      fmt.Sprintf("%s delta per puzzle (head - base median)", c.Metric.Name),
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "puzzle rank",
			Range: &chart.ContinuousRange{Min: 0.5, Max: n + 0.5},
			Ticks: rankTicks(len(c.Ranked)),
		},
		YAxis: chart.YAxis{
			Name:  c.Metric.Noun + " delta",
			Range: yRange,
			Ticks: yTicks,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s delta chart: %w", c.Metric.Noun, err)
	}
	return buf.Bytes(), nil
}

// rankTicks labels ranks at a 1-2-5 step so that at most ~10 ticks are drawn.
func rankTicks(n int) []chart.Tick {
	step := niceStep(n, 10)
	ticks := []chart.Tick{}
	for r := 1; r <= n; r += step {
		ticks = append(ticks, chart.Tick{Value: float64(r), Label: fmt.Sprintf("%d", r)})
	}
	// go-chart needs two ticks to lay out an axis
	if len(ticks) == 1 {
		ticks = append(ticks, chart.Tick{Value: float64(n) + 0.5, Label: ""})
	}
	return ticks
}

// WritePNG writes the chart to path.
func (c DeltaChart) WritePNG(path string) error {
	b, err := c.renderPNG()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// SiblingPath derives "<dir>/<stem>_<suffix><ext>" from path, used for one file per metric.
func SiblingPath(path, suffix string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	if ext == "" {
		ext = ".png"
	}
	return stem + "_" + suffix + ext
}
