// Package bode renders magnitude plots of first-order designs with gonum/plot.
package bode

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
)

const (
	defaultPoints = 200
	// decades plotted on each side of the cutoff
	defaultSpan = 2
)

// ErrUnsupportedFormat is returned for output formats gonum/plot cannot write.
var ErrUnsupportedFormat = errors.New("bode: unsupported format")

// Options controls the rendered chart. Zero fields take defaults.
type Options struct {
	Kinds  []rlc.Kind
	Points int
	Width  vg.Length
	Height vg.Length
}

func (o Options) normalize() Options {
	if len(o.Kinds) == 0 {
		o.Kinds = []rlc.Kind{rlc.Lowpass}
	}
	if o.Points < 2 {
		o.Points = defaultPoints
	}
	if o.Width <= 0 {
		o.Width = 6 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 4 * vg.Inch
	}
	return o
}

var kindColors = map[rlc.Kind]color.Color{
	rlc.Lowpass:  color.RGBA{R: 31, G: 119, B: 180, A: 255},
	rlc.Highpass: color.RGBA{R: 214, G: 39, B: 40, A: 255},
}

// Plot builds the magnitude chart of d spanning two decades either side of
// its cutoff, with the cutoff marked by a dashed line.
func Plot(d rlc.Design, opts Options) (*plot.Plot, error) {
	opts = opts.normalize()
	fc := d.Cutoff()
	if math.IsNaN(fc) || math.IsInf(fc, 0) || fc <= 0 {
		return nil, rlc.ErrCalculation
	}

	span := math.Pow(10, defaultSpan)
	freqs := rlc.LogSweep(fc/span, fc*span, opts.Points)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s filter, fc = %.4g Hz", d.Topology, fc)
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Magnitude (dB)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	minDB := 0.0
	for _, kind := range opts.Kinds {
		curve := d.MagnitudeCurve(kind, freqs)
		pts := make(plotter.XYs, len(freqs))
		for i := range freqs {
			pts[i].X = freqs[i]
			pts[i].Y = curve[i]
			minDB = math.Min(minDB, curve[i])
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("bode: %s curve: %w", kind, err)
		}
		line.Color = kindColors[kind]
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(kind.String(), line)
	}

	marker, err := plotter.NewLine(plotter.XYs{{X: fc, Y: minDB}, {X: fc, Y: 0}})
	if err != nil {
		return nil, fmt.Errorf("bode: cutoff marker: %w", err)
	}
	marker.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	marker.Color = color.Gray{Y: 96}
	p.Add(marker)
	p.Legend.Top = false
	p.Legend.Left = true

	return p, nil
}

// Render writes the chart of d to w in format ("png", "svg", "pdf", ...).
func Render(w io.Writer, d rlc.Design, format string, opts Options) error {
	opts = opts.normalize()
	p, err := Plot(d, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("bode: write: %w", err)
	}
	return nil
}

// Save writes the chart of d to path; the extension selects the format.
func Save(path string, d rlc.Design, opts Options) error {
	opts = opts.normalize()
	p, err := Plot(d, opts)
	if err != nil {
		return err
	}
	if filepath.Ext(path) == "" {
		return fmt.Errorf("%w: %q has no extension", ErrUnsupportedFormat, path)
	}
	return p.Save(opts.Width, opts.Height, path)
}
