package figure

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"odmrfig/entity/parameters"
	"odmrfig/physics"
)

// noiseSeed fixes the fluorescence trace so repeated runs are identical.
const noiseSeed int64 = 42

var (
	blue   = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	orange = color.RGBA{R: 0xea, G: 0x58, B: 0x0c, A: 0xff}
	red    = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	green  = color.RGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 0xff}
	navy   = color.RGBA{R: 0x1e, G: 0x40, B: 0xaf, A: 0xff}
	gray   = color.RGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
)

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func points(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func addLine(p *plot.Plot, xs, ys []float64, c color.Color, width vg.Length, label string) error {
	line, err := plotter.NewLine(points(xs, ys))
	if err != nil {
		return fmt.Errorf("failed to build line %q: %w", label, err)
	}
	line.Color = c
	line.Width = width
	p.Add(line)
	if label != "" {
		p.Legend.Add(label, line)
	}
	return nil
}

// addMarker draws a dotted vertical guide at x spanning [yMin, yMax].
func addMarker(p *plot.Plot, x, yMin, yMax float64, c color.Color) error {
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: yMin}, {X: x, Y: yMax}})
	if err != nil {
		return fmt.Errorf("failed to build marker at %v: %w", x, err)
	}
	line.Color = c
	line.Width = vg.Points(0.8)
	line.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}
	p.Add(line)
	return nil
}

// buildZeemanSplitting sweeps the bias field over {0, 3, 5} mT and overlays
// the resulting dip spectra. The pairs stay symmetric around D with
// separation 2γB.
func buildZeemanSplitting(prm *parameters.Parameters) (*plot.Plot, error) {
	const yMin, yMax = 0.82, 1.02

	f := floats.Span(make([]float64, 2000), 2.70, 3.04)
	p := newPlot("Zeeman Splitting in ODMR Spectra",
		"Microwave Frequency (GHz)", "Normalized Fluorescence")

	traces := []struct {
		biasMT float64
		color  color.Color
		width  vg.Length
		label  string
	}{
		{0, blue, vg.Points(2.5), "B = 0 mT"},
		{3, orange, vg.Points(2.0), "B = 3 mT"},
		{5, red, vg.Points(1.5), "B = 5 mT"},
	}

	for _, tr := range traces {
		var signal []float64
		if tr.biasMT == 0 {
			signal = physics.LorentzianCurve(f, prm.SplittingGHz, 0.006, 0.15)
		} else {
			lo, hi := physics.ZeemanPair(prm.SplittingGHz, prm.GyroGHzPerMT, tr.biasMT)
			signal = physics.DipProduct(f, []float64{lo, hi}, 0.005, 0.12)
		}
		if err := addLine(p, f, signal, tr.color, tr.width, tr.label); err != nil {
			return nil, err
		}
	}

	if err := addMarker(p, prm.SplittingGHz, yMin, yMax, gray); err != nil {
		return nil, err
	}

	p.X.Min, p.X.Max = 2.70, 3.04
	p.Y.Min, p.Y.Max = yMin, yMax
	p.Legend.Top = true
	return p, nil
}

// contrastTrace simulates the photon-count time trace of a single
// MW-off / MW-on / MW-off cycle, in kcounts/s.
func contrastTrace() (t, signal []float64) {
	const (
		baseRate = 50000.0 // counts/s
		contrast = 0.20
		sigma    = 1500.0 // counts/s
	)

	t = floats.Span(make([]float64, 2000), 0, 10)
	noise := physics.GaussianNoise(len(t), sigma, noiseSeed)

	signal = make([]float64, len(t))
	for i, ti := range t {
		rate := baseRate
		if ti > 3 && ti < 7 { // MW on
			rate = baseRate * (1 - contrast)
		}
		signal[i] = (rate + noise[i]) / 1000
	}
	return t, signal
}

// buildFluorescenceContrast draws the noisy trace with a boxcar-smoothed
// overlay and the bright/dark reference levels.
func buildFluorescenceContrast(prm *parameters.Parameters) (*plot.Plot, error) {
	t, signal := contrastTrace()
	smooth := physics.MovingAverage(signal, 50)

	p := newPlot("Fluorescence Contrast in ODMR",
		"Time (s)", "Fluorescence (kcounts/s)")

	if err := addLine(p, t, signal, blue, vg.Points(0.5), ""); err != nil {
		return nil, err
	}

	if err := addLine(p, t, smooth, navy, vg.Points(2), "Smoothed signal"); err != nil {
		return nil, err
	}

	// Bright and dark reference levels.
	for _, lvl := range []struct {
		y     float64
		c     color.Color
		label string
	}{
		{50, green, "MW OFF (bright)"},
		{40, red, "MW ON (dark)"},
	} {
		line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: lvl.y}, {X: 10, Y: lvl.y}})
		if err != nil {
			return nil, fmt.Errorf("failed to build level line: %w", err)
		}
		line.Color = lvl.c
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(lvl.label, line)
	}

	p.X.Min, p.X.Max = 0, 10
	return p, nil
}

// buildOrientationSpectra draws the eight-dip vector-magnetometry spectrum:
// four NV orientations, each contributing a Zeeman pair scaled by the
// projection of the bias field onto its axis.
func buildOrientationSpectra(prm *parameters.Parameters) (*plot.Plot, error) {
	const (
		biasMT     = 3.0
		yMin, yMax = 0.82, 1.02
	)

	f := floats.Span(make([]float64, 3000), 2.5, 3.25)
	p := newPlot("Vector Magnetometry: 8 Dips from 4 NV Orientations",
		"Microwave Frequency (GHz)", "Fluorescence (norm.)")

	// One aligned family, three families at the tetrahedral angle.
	angles := []float64{0, prm.AxisAngleDeg, prm.AxisAngleDeg, prm.AxisAngleDeg}

	centers := make([]float64, 0, 2*len(angles))
	for _, angle := range angles {
		proj := physics.FieldProjection(biasMT, angle)
		lo, hi := physics.ZeemanPair(prm.SplittingGHz, prm.GyroGHzPerMT, proj)
		centers = append(centers, lo, hi)
	}

	signal := physics.DipProduct(f, centers, 0.008, 0.04)
	if err := addLine(p, f, signal, color.Black, vg.Points(1.5), fmt.Sprintf("B = %g mT", biasMT)); err != nil {
		return nil, err
	}

	for _, c := range centers {
		if err := addMarker(p, c, yMin, yMax, gray); err != nil {
			return nil, err
		}
	}

	p.X.Min, p.X.Max = 2.5, 3.25
	p.Y.Min, p.Y.Max = yMin, yMax
	return p, nil
}

// buildTemperatureShift overlays the resonance dip at three temperatures.
// The dip center moves linearly with dD/dT.
func buildTemperatureShift(prm *parameters.Parameters) (*plot.Plot, error) {
	const yMin, yMax = 0.82, 1.02

	f := floats.Span(make([]float64, 2000), 2.82, 2.92)
	p := newPlot("ODMR Temperature Dependence",
		"Microwave Frequency (GHz)", "Normalized Fluorescence")

	traces := []struct {
		tempK float64
		color color.Color
	}{
		{300, blue},
		{350, orange},
		{400, red},
	}

	for _, tr := range traces {
		center := physics.ShiftedSplitting(prm.SplittingGHz, prm.ShiftGHzPerK, tr.tempK, prm.RefTempK)
		signal := physics.LorentzianCurve(f, center, 0.005, 0.15)
		if err := addLine(p, f, signal, tr.color, vg.Points(2), fmt.Sprintf("%g K", tr.tempK)); err != nil {
			return nil, err
		}
		if err := addMarker(p, center, yMin, yMax, tr.color); err != nil {
			return nil, err
		}
	}

	p.X.Min, p.X.Max = 2.82, 2.92
	p.Y.Min, p.Y.Max = yMin, yMax
	p.Legend.Top = true
	return p, nil
}
