package rlc

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-rlc/dsp/filter/biquad"
)

// Kind selects which node of the divider is taken as the output.
type Kind int

const (
	// Lowpass takes the output across the shunt element (R for RL, C for RC).
	Lowpass Kind = iota
	// Highpass takes the output across the series element.
	Highpass
)

// String returns "lowpass" or "highpass".
func (k Kind) String() string {
	if k == Highpass {
		return "highpass"
	}
	return "lowpass"
}

// Design is a fully specified first-order filter.
type Design struct {
	Topology Topology
	R        float64
	// X is the inductance (RL) or capacitance (RC).
	X float64
}

// Cutoff returns the -3 dB frequency of d in Hz.
func (d Design) Cutoff() float64 {
	return Cutoff(d.Topology, d.R, d.X)
}

// TimeConstant returns L/R or RC in seconds.
func (d Design) TimeConstant() float64 {
	return TimeConstant(d.Topology, d.R, d.X)
}

// Validate reports whether d has a known topology and yields a positive,
// finite cutoff and time constant.
func (d Design) Validate() error {
	if !d.Topology.Valid() {
		return ErrUnknownTopology
	}
	fc, tau := d.Cutoff(), d.TimeConstant()
	if !(fc > 0) || math.IsInf(fc, 0) || !(tau > 0) || math.IsInf(tau, 0) {
		return ErrCalculation
	}
	return nil
}

// Response returns the analog transfer function H(j2πf).
func (d Design) Response(kind Kind, freqHz float64) complex128 {
	fc := d.Cutoff()
	s := complex(0, freqHz/fc)
	if kind == Highpass {
		return s / (1 + s)
	}
	return 1 / (1 + s)
}

// MagnitudeDB returns 20*log10(|H(j2πf)|).
func (d Design) MagnitudeDB(kind Kind, freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(d.Response(kind, freqHz)))
}

// Phase returns the phase of H(j2πf) in radians.
func (d Design) Phase(kind Kind, freqHz float64) float64 {
	return cmplx.Phase(d.Response(kind, freqHz))
}

// Coefficients discretizes d with the bilinear transform, prewarped so the
// digital filter keeps its -3 dB point at the analog cutoff. The result is a
// first-order section (B2 = A2 = 0).
func (d Design) Coefficients(kind Kind, sampleRate float64) (biquad.Coefficients, error) {
	fc := d.Cutoff()
	if math.IsNaN(fc) || math.IsInf(fc, 0) || fc <= 0 {
		return biquad.Coefficients{}, ErrCalculation
	}
	if sampleRate <= 0 || fc >= sampleRate/2 {
		return biquad.Coefficients{}, ErrAboveNyquist
	}

	k := math.Tan(math.Pi * fc / sampleRate)
	norm := 1 / (1 + k)
	if kind == Highpass {
		return biquad.Coefficients{
			B0: norm,
			B1: -norm,
			A1: (k - 1) * norm,
		}, nil
	}
	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}, nil
}

// LogSweep returns n frequencies spaced logarithmically over [lo, hi].
func LogSweep(lo, hi float64, n int) []float64 {
	if n <= 0 || lo <= 0 || hi < lo {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	return out
}

// MagnitudeCurve returns MagnitudeDB at each of freqs.
func (d Design) MagnitudeCurve(kind Kind, freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = d.MagnitudeDB(kind, f)
	}
	return out
}
