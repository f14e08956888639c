// Package cutoff verifies the -3 dB point of a first-order design by
// simulation.
//
// The analog design is discretized with the bilinear transform, its impulse
// response is computed with a [biquad.Section] and transformed with an FFT.
// The measured cutoff is where the magnitude spectrum crosses the half-power
// level, located by linear interpolation between bins.
package cutoff

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-rlc/dsp/core"
	"github.com/cwbudde/algo-rlc/dsp/filter/biquad"
	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
	"github.com/cwbudde/algo-rlc/dsp/spectrum"
)

const (
	defaultFFTSize    = 1 << 16
	defaultOversample = 32
)

// MinFFTSize is the smallest transform Measure accepts.
const MinFFTSize = 64

// Errors returned by Measure.
var (
	ErrInvalidSampleRate = errors.New("cutoff: sample rate must be above twice the cutoff")
	ErrInvalidFFTSize    = errors.New("cutoff: FFT size must be a power of two >= 64")
	ErrNoCrossing        = errors.New("cutoff: response never crosses the half-power level")
)

// HalfPowerDB is the -3.01 dB level that defines the cutoff.
var HalfPowerDB = core.LinearToDB(1 / math.Sqrt2)

// Config holds measurement parameters. Zero fields take defaults.
type Config struct {
	// SampleRate of the simulation in Hz. Defaults to 32 × the nominal cutoff.
	SampleRate float64
	// FFTSize is the impulse response length and transform size.
	FFTSize int
	Kind    rlc.Kind
}

// Result holds a cutoff measurement.
type Result struct {
	Nominal       float64
	Measured      float64
	RelativeError float64
	SampleRate    float64
	FFTSize       int
	Coefficients  biquad.Coefficients
}

// Measure simulates d and returns the frequency where its response crosses
// the half-power level.
func Measure(d rlc.Design, cfg Config) (Result, error) {
	nominal := d.Cutoff()
	if !core.IsFinite(nominal) || nominal <= 0 {
		return Result{}, rlc.ErrCalculation
	}

	cfg = normalizeConfig(cfg, nominal)
	if cfg.FFTSize < MinFFTSize || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return Result{}, ErrInvalidFFTSize
	}
	if !core.IsFinite(cfg.SampleRate) || cfg.SampleRate <= 2*nominal {
		return Result{}, ErrInvalidSampleRate
	}

	coeffs, err := d.Coefficients(cfg.Kind, cfg.SampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("cutoff: discretize: %w", err)
	}

	ir := biquad.NewSection(coeffs).ImpulseResponse(cfg.FFTSize)
	in := make([]complex128, cfg.FFTSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return Result{}, fmt.Errorf("cutoff: failed to create FFT plan: %w", err)
	}
	out := make([]complex128, cfg.FFTSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("cutoff: forward FFT failed: %w", err)
	}

	db := spectrum.HalfMagnitudeDB(out)
	freqs := spectrum.BinFrequencies(cfg.FFTSize, cfg.SampleRate)

	measured, ok := crossing(freqs, db, HalfPowerDB, cfg.Kind == rlc.Lowpass)
	if !ok {
		return Result{}, ErrNoCrossing
	}

	return Result{
		Nominal:       nominal,
		Measured:      measured,
		RelativeError: core.RelativeError(measured, nominal),
		SampleRate:    cfg.SampleRate,
		FFTSize:       cfg.FFTSize,
		Coefficients:  coeffs,
	}, nil
}

func normalizeConfig(cfg Config, nominal float64) Config {
	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = defaultOversample * nominal
	}
	return cfg
}

// crossing returns the first frequency where db passes level, falling for
// a lowpass and rising for a highpass.
func crossing(freqs, db []float64, level float64, falling bool) (float64, bool) {
	for i := 1; i < len(db); i++ {
		prev, cur := db[i-1], db[i]
		if !core.IsFinite(prev) || !core.IsFinite(cur) {
			continue
		}
		crossed := prev >= level && cur < level
		if !falling {
			crossed = prev < level && cur >= level
		}
		if !crossed {
			continue
		}
		t := (level - prev) / (cur - prev)
		return freqs[i-1] + t*(freqs[i]-freqs[i-1]), true
	}
	return 0, false
}
