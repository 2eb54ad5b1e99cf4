// Package plot renders fitted linfit models to image files with gonum/plot.
// The output format follows the file extension (.png, .svg, .pdf, ...).
//
// Renderers only talk to models through PredictOne and the trajectory
// accessors, so any model.Predictor can be drawn.
package plot

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/linfit/core/model"
	"github.com/YuminosukeSato/linfit/linear"
	"github.com/YuminosukeSato/linfit/metrics"
	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
	"github.com/YuminosukeSato/linfit/preprocessing"
)

// DecisionRegions classifies every cell of a grid spanning X and draws the
// regions with the training samples on top. X must be n×2. Y holds one-hot
// targets, or a single 0/1 column for binary problems; a model with a single
// output is then read with a 0.5 threshold.
func DecisionRegions(c model.Predictor, X, Y mat.Matrix, path string, opts ...Option) (err error) {
	const op = "plot.DecisionRegions"
	defer errors.Recover(&err, op)

	if err := checkSamples(op, X, Y); err != nil {
		return err
	}
	cfg := newConfig("Decision regions", opts)

	_, k := Y.Dims()
	labels := classLabels(Y)
	nClasses := k
	if k == 1 {
		nClasses = 2
	}

	xs := axisSpan(mat.Col(nil, 0, X), cfg.resolution, 0.1)
	ys := axisSpan(mat.Col(nil, 1, X), cfg.resolution, 0.1)
	g := newGrid(xs, ys)
	point := make([]float64, 2)
	for r, y := range ys {
		for col, x := range xs {
			point[0], point[1] = x, y
			out, err := c.PredictOne(point)
			if err != nil {
				return errors.Wrap(err, op)
			}
			g.set(col, r, float64(classOf(out)))
		}
	}

	p := gplot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	pal := regionPalette(nClasses)
	hm := plotter.NewHeatMap(g, pal)
	hm.Min, hm.Max = 0, float64(len(pal.Colors())-1)
	p.Add(hm)

	byClass := make([]plotter.XYs, nClasses)
	n, _ := X.Dims()
	for i := 0; i < n; i++ {
		byClass[labels[i]] = append(byClass[labels[i]], plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)})
	}
	for cls, pts := range byClass {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrap(err, op)
		}
		s.GlyphStyle.Color = plotutil.Color(cls)
		s.GlyphStyle.Shape = plotutil.Shape(cls)
		s.GlyphStyle.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("class %d", cls), s)
	}

	return save(p, cfg, path, "decision_regions")
}

// Trajectory draws the mean squared error over the (w1, w2) plane, with the
// bias fixed at the fitted value, and overlays the recorded gradient-descent path.
func Trajectory(m *linear.PathRegression, X, y mat.Matrix, path string, opts ...Option) (err error) {
	const op = "plot.Trajectory"
	defer errors.Recover(&err, op)

	if _, err := m.Weights(); err != nil {
		return err
	}
	bias := m.Bias()
	if _, err := linear.SquaredError(X, y, bias, 0, 0); err != nil {
		return err
	}
	cfg := newConfig("Error surface", opts)

	w1s, w2s := m.Weight1s(), m.Weight2s()
	xs := axisSpan(w1s, cfg.resolution, 0.25)
	ys := axisSpan(w2s, cfg.resolution, 0.25)
	g := newGrid(xs, ys)
	for r, w2 := range ys {
		for c, w1 := range xs {
			loss, _ := linear.SquaredError(X, y, bias, w1, w2)
			g.set(c, r, loss)
		}
	}

	p := gplot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "w1"
	p.Y.Label.Text = "w2"
	p.Add(plotter.NewHeatMap(g, palette.Heat(16, 1)))

	pts := make(plotter.XYs, len(w1s))
	for i := range w1s {
		pts[i] = plotter.XY{X: w1s[i], Y: w2s[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, op)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.Black
	p.Add(line)
	p.Legend.Add("gradient descent", line)

	for _, marker := range []struct {
		name string
		at   plotter.XY
		col  color.Color
	}{
		{"start", pts[0], color.Black},
		{"end", pts[len(pts)-1], color.RGBA{R: 220, A: 255}},
	} {
		s, err := plotter.NewScatter(plotter.XYs{marker.at})
		if err != nil {
			return errors.Wrap(err, op)
		}
		s.GlyphStyle.Color = marker.col
		s.GlyphStyle.Radius = vg.Points(5)
		p.Add(s)
		p.Legend.Add(marker.name, s)
	}

	return save(p, cfg, path, "trajectory")
}

// LossCurve draws losses against the iteration index.
func LossCurve(losses []float64, path string, opts ...Option) (err error) {
	const op = "plot.LossCurve"
	defer errors.Recover(&err, op)

	if len(losses) == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckNumericalStability(op, losses, -1); err != nil {
		return err
	}
	cfg := newConfig("Training loss", opts)

	pts := make(plotter.XYs, len(losses))
	for i, l := range losses {
		pts[i] = plotter.XY{X: float64(i), Y: l}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, op)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = plotutil.Color(0)

	p := gplot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "loss"
	p.Add(plotter.NewGrid(), line)

	return save(p, cfg, path, "loss_curve")
}

func save(p *gplot.Plot, cfg config, path, kind string) error {
	start := time.Now()
	if err := p.Save(cfg.width, cfg.height, path); err != nil {
		return errors.Wrapf(err, "saving %s plot", kind)
	}
	cfg.logger.Info("Plot saved",
		log.PlotKindKey, kind,
		log.OutputPathKey, path,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

func checkSamples(op string, X, Y mat.Matrix) error {
	if X == nil || Y == nil {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	n, f := X.Dims()
	yr, yc := Y.Dims()
	switch {
	case n == 0 || yc == 0:
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	case f != 2:
		return errors.NewDimensionError(op, 2, f, 1)
	case yr != n:
		return errors.NewDimensionError(op, n, yr, 0)
	}
	return nil
}

// classLabels decodes one-hot rows, or thresholds a single column at 0.5.
func classLabels(Y mat.Matrix) []int {
	n, k := Y.Dims()
	if k > 1 {
		return preprocessing.ArgMaxRows(Y)
	}
	labels := make([]int, n)
	for i := range labels {
		if Y.At(i, 0) >= 0.5 {
			labels[i] = 1
		}
	}
	return labels
}

func classOf(out []float64) int {
	if len(out) == 1 {
		if out[0] >= 0.5 {
			return 1
		}
		return 0
	}
	return metrics.ArgMax(out)
}

// axisSpan returns n evenly spaced values covering vals with a relative margin.
func axisSpan(vals []float64, n int, margin float64) []float64 {
	lo, hi := floats.Min(vals), floats.Max(vals)
	pad := (hi - lo) * margin
	if pad == 0 {
		pad = 0.5
	}
	return floats.Span(make([]float64, n), lo-pad, hi+pad)
}

// grid implements plotter.GridXYZ over row-major values.
type grid struct {
	xs, ys []float64
	z      []float64
}

func newGrid(xs, ys []float64) *grid {
	return &grid{xs: xs, ys: ys, z: make([]float64, len(xs)*len(ys))}
}

func (g *grid) Dims() (c, r int) { return len(g.xs), len(g.ys) }
func (g *grid) Z(c, r int) float64 { return g.z[r*len(g.xs)+c] }
func (g *grid) X(c int) float64 { return g.xs[c] }
func (g *grid) Y(r int) float64 { return g.ys[r] }
func (g *grid) set(c, r int, v float64) { g.z[r*len(g.xs)+c] = v }

type classPalette []color.Color

func (p classPalette) Colors() []color.Color { return p }

// regionPalette returns pale versions of the sample colors so the points stay visible.
func regionPalette(k int) palette.Palette {
	pal := make(classPalette, k)
	for i := range pal {
		r, g, b, _ := plotutil.Color(i).RGBA()
		pal[i] = color.NRGBA{R: lighten(r), G: lighten(g), B: lighten(b), A: 255}
	}
	return pal
}

func lighten(v uint32) uint8 {
	return uint8((v>>8 + 2*255) / 3)
}
