package plots

import (
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// ChartDimensions clamps a requested chart width and derives the height from it.
func ChartDimensions(rawW int) (int, int) {
	w := max(rawW, 600)
	h := min(max(int(float32(w)*0.45), 280), 720)
	return w, h
}

// niceStep is the smallest 1, 2 or 5 times a power of ten that cuts span into at most maxSteps steps.
func niceStep(span, maxSteps int) int {
	for mag := 1; ; mag *= 10 {
		for _, m := range []int{1, 2, 5} {
			if span/(m*mag) <= maxSteps {
				return m * mag
			}
		}
	}
}

// deltaAxis returns the value range and ticks for integer deltas in [lo, hi]. Zero is always on the
// axis and always a tick; the extremes get one step of headroom when they land on a tick.
func deltaAxis(lo, hi int) (*chart.ContinuousRange, []chart.Tick) {
	lo, hi = min(lo, 0), max(hi, 0)
	step := niceStep(hi-lo, 6)
	start, end := floorMultiple(lo, step), -floorMultiple(-hi, step)
	if start == lo {
		start -= step
	}
	if end == hi {
		end += step
	}
	ticks := make([]chart.Tick, 0, (end-start)/step+1)
	for v := start; v <= end; v += step {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return &chart.ContinuousRange{Min: float64(start), Max: float64(end)}, ticks
}

func floorMultiple(v, step int) int {
	q := v / step
	if v%step != 0 && v < 0 {
		q--
	}
	return q * step
}
