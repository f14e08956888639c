// Command rlcalc designs first-order RL and RC filters.
//
// Usage:
//
//	rlcalc <command> [flags]
//
// Commands:
//
//	solve    compute the missing one of R, L/C and cutoff frequency
//	suggest  list standard-value pairs closest to a target cutoff
//	series   print the preferred values of an E series in a window
//	measure  simulate a design and measure its -3 dB point
//	plot     render a Bode magnitude chart
//	serve    run the HTTP API
//
// Examples:
//
//	rlcalc solve -topology RC -r 1000 -x 1e-7
//	rlcalc suggest -topology RL -target 5000 -count 10
//	rlcalc series -series E24 -min 10 -max 100
//	rlcalc plot -topology RC -r 1000 -x 1e-7 -kind both -o bode.svg
//	rlcalc serve -config rlcalc.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-rlc/component/eseries"
	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
	"github.com/cwbudde/algo-rlc/internal/bode"
	"github.com/cwbudde/algo-rlc/internal/config"
	"github.com/cwbudde/algo-rlc/internal/logger"
	"github.com/cwbudde/algo-rlc/measure/cutoff"
)

type command struct {
	name  string
	usage string
	run   func(args []string, stdout, stderr io.Writer) error
}

var commands []command

func init() {
	commands = []command{
		{"solve", "compute the missing one of R, L/C and cutoff frequency", runSolve},
		{"suggest", "list standard-value pairs closest to a target cutoff", runSuggest},
		{"series", "print the preferred values of an E series in a window", runSeries},
		{"measure", "simulate a design and measure its -3 dB point", runMeasure},
		{"plot", "render a Bode magnitude chart", runPlot},
		{"serve", "run the HTTP API", runServe},
	}
}

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "-help" || args[0] == "help" {
		printUsage(stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	for _, c := range commands {
		if c.name != args[0] {
			continue
		}
		err := c.run(args[1:], stdout, stderr)
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			return 2
		default:
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	_, _ = fmt.Fprintf(stderr, "error: unknown command %q\n\n", args[0])
	printUsage(stderr)
	return 2
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: rlcalc <command> [flags]\n\n")
	_, _ = fmt.Fprintf(w, "Designs first-order RL and RC filters.\n\n")
	_, _ = fmt.Fprintf(w, "Commands:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range commands {
		_, _ = fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.usage)
	}
	_ = tw.Flush()
	_, _ = fmt.Fprintf(w, "\nRun 'rlcalc <command> -h' for command flags.\n")
}

// common holds the flags every subcommand accepts.
type common struct {
	configPath string
	verbose    bool
}

func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet("rlcalc "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	c := &common{}
	fs.StringVar(&c.configPath, "config", "", "YAML or TOML config file")
	fs.BoolVar(&c.verbose, "v", false, "enable debug logging")
	return fs, c
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		_, _ = fmt.Fprintf(fs.Output(), "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return errUsage
	}
	return nil
}

// setup loads the configuration and builds the logger.
func (c *common) setup(stderr io.Writer) (config.Config, *log.Logger, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	level := logger.ParseLevel(cfg.Logging.Level)
	if c.verbose {
		level = log.DebugLevel
	}
	lg := logger.NewWithWriter(stderr, "rlcalc", level, logger.ParseFormatter(cfg.Logging.Format))
	lg.Debug("configuration loaded", "path", c.configPath, "series", cfg.Suggest.Series)
	return cfg, lg, nil
}

// valueFlag is a float flag in SI base units that records whether it was
// set.
type valueFlag struct {
	v   float64
	set bool
}

func (f *valueFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatFloat(f.v, 'g', -1, 64)
}

func (f *valueFlag) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid value %q", s)
	}
	f.v, f.set = v, true
	return nil
}

// quantity maps an unset flag to unknown and a set one through the blank
// rules of rlc.FromInput.
func (f *valueFlag) quantity() rlc.Quantity {
	if !f.set {
		return rlc.Unknown()
	}
	return rlc.FromInput(f.v)
}

func parseKinds(s string) ([]rlc.Kind, error) {
	switch strings.ToLower(s) {
	case "lowpass", "lp":
		return []rlc.Kind{rlc.Lowpass}, nil
	case "highpass", "hp":
		return []rlc.Kind{rlc.Highpass}, nil
	case "both":
		return []rlc.Kind{rlc.Lowpass, rlc.Highpass}, nil
	default:
		return nil, fmt.Errorf("unknown kind %q (want lowpass, highpass or both)", s)
	}
}

func runSolve(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("solve", stderr)
	top := rlc.RC
	fs.TextVar(&top, "topology", rlc.RC, "filter topology (RL or RC)")
	var r, x, f valueFlag
	fs.Var(&r, "r", "resistance in ohm")
	fs.Var(&x, "x", "inductance in H (RL) or capacitance in F (RC)")
	fs.Var(&f, "f", "cutoff frequency in Hz")
	if err := parse(fs, args); err != nil {
		return err
	}
	_, lg, err := c.setup(stderr)
	if err != nil {
		return err
	}

	spec := rlc.PartialSpec{R: r.quantity(), X: x.quantity(), F: f.quantity()}
	lg.Debug("solving", "topology", top, "r", spec.R, top.ReactiveName(), spec.X, "f", spec.F)
	res, err := rlc.Solve(top, spec)
	if err != nil {
		return err
	}
	unit := top.UnitOf(res.Name)
	if _, err := fmt.Fprintf(stdout, "%s = %.6g %s\n", res.Name, res.Value, unit); err != nil {
		return err
	}
	if res.Name != "f" {
		_, err = fmt.Fprintf(stdout, "nearest E12: %g %s\n", eseries.Nearest(eseries.E12, res.Value), unit)
	}
	return err
}

func runSuggest(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("suggest", stderr)
	top := rlc.RC
	fs.TextVar(&top, "topology", rlc.RC, "filter topology (RL or RC)")
	var target valueFlag
	fs.Var(&target, "target", "target cutoff frequency in Hz")
	count := fs.Int("count", 0, "number of candidates (default from config)")
	series := fs.String("series", "", "E6, E12 or E24 (default from config)")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, lg, err := c.setup(stderr)
	if err != nil {
		return err
	}
	if !target.set {
		return errors.New("-target is required")
	}

	opts := cfg.SuggestOptions(top)
	if *count > 0 {
		opts = append(opts, rlc.WithCount(*count))
	}
	if *series != "" {
		s, err := eseries.ParseSeries(*series)
		if err != nil {
			return err
		}
		opts = append(opts, rlc.WithSeries(s))
	}

	cands, err := rlc.Suggest(top, target.v, opts...)
	if err != nil {
		return err
	}
	lg.Debug("suggestions ready", "target", target.v, "count", len(cands))

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "#\tR [ohm]\t%s [%s]\tfc [Hz]\terror [%%]\n", top.ReactiveName(), top.ReactiveUnit())
	_, _ = fmt.Fprintf(tw, "-\t-------\t-----\t-------\t---------\n")
	for i, cand := range cands {
		_, _ = fmt.Fprintf(tw, "%d\t%g\t%g\t%.2f\t%.3f\n",
			i+1, cand.R, cand.X, cand.Cutoff, 100*cand.RelativeError)
	}
	return tw.Flush()
}

func runSeries(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("series", stderr)
	name := fs.String("series", "E12", "E6, E12 or E24")
	lo := valueFlag{v: 10, set: true}
	hi := valueFlag{v: 99, set: true}
	fs.Var(&lo, "min", "lower bound (inclusive)")
	fs.Var(&hi, "max", "upper bound (inclusive)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, _, err := c.setup(stderr); err != nil {
		return err
	}

	s, err := eseries.ParseSeries(*name)
	if err != nil {
		return err
	}
	for _, v := range eseries.GenerateSeries(s, lo.v, hi.v) {
		if _, err := fmt.Fprintf(stdout, "%g\n", v); err != nil {
			return err
		}
	}
	return nil
}

// designFlags registers the flags that describe a complete design.
type designFlags struct {
	top  rlc.Topology
	r, x valueFlag
	kind *string
}

func addDesignFlags(fs *flag.FlagSet, defaultKind string) *designFlags {
	d := &designFlags{top: rlc.RC}
	fs.TextVar(&d.top, "topology", rlc.RC, "filter topology (RL or RC)")
	fs.Var(&d.r, "r", "resistance in ohm")
	fs.Var(&d.x, "x", "inductance in H (RL) or capacitance in F (RC)")
	d.kind = fs.String("kind", defaultKind, "lowpass, highpass or both")
	return d
}

func (d *designFlags) design() (rlc.Design, error) {
	if !(d.r.v > 0) || !(d.x.v > 0) {
		return rlc.Design{}, errors.New("-r and -x must both be positive")
	}
	return rlc.Design{Topology: d.top, R: d.r.v, X: d.x.v}, nil
}

func runMeasure(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("measure", stderr)
	df := addDesignFlags(fs, "lowpass")
	var sr valueFlag
	fs.Var(&sr, "sr", "simulation sample rate in Hz (default 32 x cutoff)")
	fftSize := fs.Int("fft", 0, "FFT size (power of two)")
	if err := parse(fs, args); err != nil {
		return err
	}
	cfg, lg, err := c.setup(stderr)
	if err != nil {
		return err
	}
	d, err := df.design()
	if err != nil {
		return err
	}
	kinds, err := parseKinds(*df.kind)
	if err != nil {
		return err
	}

	mc := cutoff.Config{SampleRate: cfg.Measure.SampleRate, FFTSize: cfg.Measure.FFTSize}
	if sr.set {
		mc.SampleRate = sr.v
	}
	if *fftSize > 0 {
		mc.FFTSize = *fftSize
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Kind\tNominal [Hz]\tMeasured [Hz]\tError [%%]\tSample Rate [Hz]\tFFT\n")
	_, _ = fmt.Fprintf(tw, "----\t------------\t-------------\t---------\t----------------\t---\n")
	for _, k := range kinds {
		mc.Kind = k
		res, err := cutoff.Measure(d, mc)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		lg.Debug("measured", "kind", k, "b0", res.Coefficients.B0, "a1", res.Coefficients.A1)
		_, _ = fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.4f\t%.0f\t%d\n",
			k, res.Nominal, res.Measured, 100*res.RelativeError, res.SampleRate, res.FFTSize)
	}
	return tw.Flush()
}

func runPlot(args []string, stdout, stderr io.Writer) error {
	fs, c := newFlagSet("plot", stderr)
	df := addDesignFlags(fs, "both")
	out := fs.String("o", "bode.svg", "output file; the extension selects the format")
	points := fs.Int("points", 0, "number of frequency points")
	if err := parse(fs, args); err != nil {
		return err
	}
	_, lg, err := c.setup(stderr)
	if err != nil {
		return err
	}
	d, err := df.design()
	if err != nil {
		return err
	}
	kinds, err := parseKinds(*df.kind)
	if err != nil {
		return err
	}

	if err := bode.Save(*out, d, bode.Options{Kinds: kinds, Points: *points}); err != nil {
		return err
	}
	lg.Info("plot written", "path", *out, "cutoff", d.Cutoff())
	_, err = fmt.Fprintf(stdout, "wrote %s\n", *out)
	return err
}
