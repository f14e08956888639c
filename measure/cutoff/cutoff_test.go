package cutoff

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
)

func TestMeasure_MatchesNominal(t *testing.T) {
	designs := []rlc.Design{
		{Topology: rlc.RC, R: 1e3, X: 100e-9},
		{Topology: rlc.RC, R: 47e3, X: 3.3e-9},
		{Topology: rlc.RL, R: 100, X: 10e-3},
		{Topology: rlc.RL, R: 2.2e3, X: 1e-3},
	}
	for _, d := range designs {
		for _, kind := range []rlc.Kind{rlc.Lowpass, rlc.Highpass} {
			res, err := Measure(d, Config{Kind: kind})
			if err != nil {
				t.Fatalf("%v %v: %v", d.Topology, kind, err)
			}
			if res.RelativeError > 1e-3 {
				t.Errorf("%v %v: measured %v, nominal %v (rel err %v)",
					d.Topology, kind, res.Measured, res.Nominal, res.RelativeError)
			}
			if !res.Coefficients.Stable() {
				t.Errorf("%v %v: unstable coefficients %+v", d.Topology, kind, res.Coefficients)
			}
		}
	}
}

func TestMeasure_ExplicitSampleRate(t *testing.T) {
	d := rlc.Design{Topology: rlc.RC, R: 1e3, X: 100e-9}
	res, err := Measure(d, Config{SampleRate: 48000, FFTSize: 1 << 15})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if res.SampleRate != 48000 || res.FFTSize != 1<<15 {
		t.Fatalf("config not honoured: %+v", res)
	}
	if res.RelativeError > 1e-3 {
		t.Fatalf("rel err = %v", res.RelativeError)
	}
}

func TestMeasure_Errors(t *testing.T) {
	d := rlc.Design{Topology: rlc.RC, R: 1e3, X: 100e-9}

	if _, err := Measure(d, Config{FFTSize: 1000}); !errors.Is(err, ErrInvalidFFTSize) {
		t.Errorf("non power of two: err = %v", err)
	}
	if _, err := Measure(d, Config{FFTSize: 32}); !errors.Is(err, ErrInvalidFFTSize) {
		t.Errorf("tiny FFT: err = %v", err)
	}
	if _, err := Measure(d, Config{SampleRate: 2000}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("low sample rate: err = %v", err)
	}
	if _, err := Measure(rlc.Design{Topology: rlc.RC}, Config{}); !errors.Is(err, rlc.ErrCalculation) {
		t.Errorf("zero design: err = %v", err)
	}
}

func TestCrossing(t *testing.T) {
	freqs := []float64{0, 10, 20, 30}
	db := []float64{0, -1, -5, -9}
	got, ok := crossing(freqs, db, -3, true)
	if !ok || got != 15 {
		t.Fatalf("falling crossing = %v, %v; want 15", got, ok)
	}

	rising := []float64{-9, -5, -1, 0}
	got, ok = crossing(freqs, rising, -3, false)
	if !ok || got != 15 {
		t.Fatalf("rising crossing = %v, %v; want 15", got, ok)
	}

	if _, ok := crossing(freqs, []float64{0, 0, 0, 0}, -3, true); ok {
		t.Fatal("flat response should not cross")
	}
}
