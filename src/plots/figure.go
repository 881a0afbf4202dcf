// Package plots renders base/head comparisons as PNG images.
//
// The comparison figure is drawn with gonum/plot: a log-log scatter and a linear scatter of head
// against base on top, and the sorted distribution of both sides underneath. Delta charts for the
// summary tool are drawn with go-chart.
package plots

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/dclamage/SudokuVariantSolverJS/src/analysis"
	"github.com/dclamage/SudokuVariantSolverJS/src/logging"
)

// ErrNoPoints is returned when there is nothing to plot.
var ErrNoPoints = errors.New("no points to plot")

// Figure describes the comparison figure's size and labels.
type Figure struct {
	WidthIn  float64
	HeightIn float64
	DPI      int
	// Measure labels the value axes, e.g. the selector text.
	Measure string
	// Caption is stamped under the panels; empty disables it.
	Caption string
}

// DefaultFigure is a 10x10 inch figure at 140 dpi.
func DefaultFigure() Figure {
	return Figure{WidthIn: 10, HeightIn: 10, DPI: 140}
}

// PixelSize is the size of the rendered image.
func (f Figure) PixelSize() (int, int) {
	return int(math.Round(f.WidthIn * float64(f.DPI))), int(math.Round(f.HeightIn * float64(f.DPI)))
}

// asteriskGlyph overlays a cross and a plus, the closest match to a star marker.
type asteriskGlyph struct{}

func (asteriskGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	draw.CrossGlyph{}.DrawGlyph(c, sty, pt)
	draw.PlusGlyph{}.DrawGlyph(c, sty, pt)
}

type side struct {
	name  string
	shape draw.GlyphDrawer
	color int
}

var (
	baseSide = side{name: "base", shape: draw.CrossGlyph{}, color: 0}
	headSide = side{name: "head", shape: asteriskGlyph{}, color: 1}
)

// Render draws cp into an image. Base[i] and Head[i] must describe the same puzzle or run slot.
func (f Figure) Render(cp analysis.ComparePoints) (image.Image, error) {
	if cp.Len() == 0 {
		return nil, ErrNoPoints
	}
	if len(cp.Base) != len(cp.Head) {
		return nil, fmt.Errorf("base has %d points, head has %d", len(cp.Base), len(cp.Head))
	}
	if f.WidthIn <= 0 || f.HeightIn <= 0 || f.DPI <= 0 {
		return nil, fmt.Errorf("invalid figure size %gx%g in at %d dpi", f.WidthIn, f.HeightIn, f.DPI)
	}

	logPlot, err := f.scatter(cp, true)
	if err != nil {
		return nil, fmt.Errorf("log scatter: %w", err)
	}
	linPlot, err := f.scatter(cp, false)
	if err != nil {
		return nil, fmt.Errorf("linear scatter: %w", err)
	}
	distPlot, err := f.distribution(cp)
	if err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}

	w := vg.Length(f.WidthIn) * vg.Inch
	h := vg.Length(f.HeightIn) * vg.Inch
	canvas := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(f.DPI))
	dc := draw.New(canvas)
	if f.Caption != "" {
		strip := vg.Length(captionStripPx) / vg.Length(f.DPI) * vg.Inch
		dc = draw.Crop(dc, 0, 0, strip, 0)
	}
	panelH := dc.Max.Y - dc.Min.Y
	top := draw.Crop(dc, 0, 0, panelH/2, 0)
	bottom := draw.Crop(dc, 0, 0, 0, -panelH/2)

	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter * 4, PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2, PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2}
	logPlot.Draw(tiles.At(top, 0, 0))
	linPlot.Draw(tiles.At(top, 1, 0))
	distPlot.Draw(draw.Crop(bottom, vg.Millimeter*2, -vg.Millimeter*2, vg.Millimeter*2, -vg.Millimeter*2))

	img := canvas.Image()
	return Caption(img, f.Caption), nil
}

// WritePNG renders cp and writes the PNG to path.
func (f Figure) WritePNG(path string, cp analysis.ComparePoints) error {
	img, err := f.Render(cp)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

// scatter plots (base_i, base_i) and (base_i, head_i). The base series is the diagonal, so points
// above it are slower/worse on head and points below it are better.
func (f Figure) scatter(cp analysis.ComparePoints, logScale bool) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "base " + f.Measure
	p.Y.Label.Text = f.Measure
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	baseXY, headXY, dropped := scatterXYs(cp, logScale)

	if logScale {
		p.Title.Text = "head vs base (log)"
		if dropped > 0 {
			logging.Warnf("log scatter: dropped %d points with a non-positive coordinate", dropped)
		}
		if len(baseXY) == 0 {
			p.Title.Text = "head vs base (log): no positive values"
			return p, nil
		}
		p.X.Scale = plot.LogScale{}
		p.Y.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	} else {
		p.Title.Text = "head vs base"
	}

	for _, s := range []struct {
		side side
		xys  plotter.XYs
	}{{baseSide, baseXY}, {headSide, headXY}} {
		if len(s.xys) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(s.xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Shape = s.side.shape
		sc.GlyphStyle.Color = plotutil.Color(s.side.color)
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
		p.Legend.Add(s.side.name, sc)
	}
	if logScale {
		widenLogAxis(&p.X)
		widenLogAxis(&p.Y)
	}
	return p, nil
}

// scatterXYs builds the base diagonal and the head series. On a log panel a point with a
// non-positive coordinate is dropped; a non-positive base drops both points of the pair.
func scatterXYs(cp analysis.ComparePoints, logScale bool) (baseXY, headXY plotter.XYs, dropped int) {
	baseXY = make(plotter.XYs, 0, cp.Len())
	headXY = make(plotter.XYs, 0, cp.Len())
	for i := range cp.Base {
		b, h := cp.Base[i], cp.Head[i]
		if logScale && b <= 0 {
			dropped += 2
			continue
		}
		baseXY = append(baseXY, plotter.XY{X: b, Y: b})
		if logScale && h <= 0 {
			dropped++
			continue
		}
		headXY = append(headXY, plotter.XY{X: b, Y: h})
	}
	return baseXY, headXY, dropped
}

// widenLogAxis keeps a log axis valid when every value is the same.
func widenLogAxis(a *plot.Axis) {
	if a.Min == a.Max && a.Min > 0 {
		a.Min /= 10
		a.Max *= 10
	}
}

// distribution plots each side sorted ascending against its 1-based rank, value on x and rank on y.
// The rank axis shows the upper half only, where the slow tail is.
func (f Figure) distribution(cp analysis.ComparePoints) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "sorted distribution"
	p.X.Label.Text = f.Measure
	p.Y.Label.Text = "rank"
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	lo, hi := RankWindow(len(cp.Base))
	for _, s := range []struct {
		side side
		vals []float64
	}{{baseSide, cp.Base}, {headSide, cp.Head}} {
		xys := rankedXYs(s.vals)
		if len(xys) == 0 {
			continue
		}
		l, sc, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, err
		}
		col := plotutil.Color(s.side.color)
		l.LineStyle.Color = col
		l.LineStyle.Width = vg.Points(1)
		sc.GlyphStyle.Shape = s.side.shape
		sc.GlyphStyle.Color = col
		sc.GlyphStyle.Radius = vg.Points(2)
		p.Add(l, sc)
		p.Legend.Add(s.side.name, l, sc)
	}
	// only the view is clipped; lines entering the window from below are still drawn up to its edge
	p.Y.Min = lo
	p.Y.Max = hi
	return p, nil
}

// RankWindow is the visible rank range of the distribution panel for n points: [n/2, n+1].
func RankWindow(n int) (float64, float64) {
	return float64(n / 2), float64(n + 1)
}

// rankedXYs sorts vals and pairs each with its 1-based rank.
func rankedXYs(vals []float64) plotter.XYs {
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	out := make(plotter.XYs, len(sorted))
	for i, v := range sorted {
		out[i] = plotter.XY{X: v, Y: float64(i + 1)}
	}
	return out
}
