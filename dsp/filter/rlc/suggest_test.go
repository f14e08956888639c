package rlc

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-rlc/component/eseries"
	"github.com/cwbudde/algo-rlc/internal/testutil"
)

func TestSuggest_RC1kHz(t *testing.T) {
	got, err := Suggest(RC, 1000)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != DefaultSuggestions {
		t.Fatalf("len = %d, want %d", len(got), DefaultSuggestions)
	}

	for i, c := range got {
		want := math.Abs(c.Cutoff-1000) / 1000
		if c.RelativeError != want {
			t.Errorf("candidate %d: relative error %v, want %v", i, c.RelativeError, want)
		}
		if i > 0 && c.RelativeError < got[i-1].RelativeError {
			t.Errorf("candidate %d: not sorted (%v < %v)", i, c.RelativeError, got[i-1].RelativeError)
		}
	}

	// No pair in the full cross product beats the last returned candidate.
	worst := got[len(got)-1].RelativeError
	for _, r := range eseries.Generate(10, 1e6) {
		for _, c := range eseries.Generate(1e-12, 1e-4) {
			fc := Cutoff(RC, r, c)
			if e := math.Abs(fc-1000) / 1000; e < worst && !containsPair(got, r, c) {
				t.Fatalf("pair R=%v C=%v has error %v < %v but was not returned", r, c, e, worst)
			}
		}
	}
}

func TestSuggest_CutoffConsistency(t *testing.T) {
	for _, top := range []Topology{RL, RC} {
		for _, target := range []float64{1, 159, 1000, 47e3, 2.2e6} {
			got, err := Suggest(top, target)
			if err != nil {
				t.Fatalf("%v %v: %v", top, target, err)
			}
			for _, c := range got {
				testutil.RequireClose(t, top.String()+" fc", c.Cutoff, Cutoff(top, c.R, c.X), 1e-12)
			}
		}
	}
}

func TestSuggest_RangesRespected(t *testing.T) {
	got, err := Suggest(RL, 1e4, WithCount(50))
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 50 {
		t.Fatalf("len = %d, want 50", len(got))
	}
	xr := DefaultReactiveRange(RL)
	for _, c := range got {
		if c.R < DefaultResistorRange.Min || c.R > DefaultResistorRange.Max {
			t.Errorf("R %v outside default range", c.R)
		}
		if c.X < xr.Min || c.X > xr.Max {
			t.Errorf("L %v outside default range", c.X)
		}
	}
}

func TestSuggest_ExactHit(t *testing.T) {
	// 1 kΩ and 100 nF are both E12 values.
	target := Cutoff(RC, 1e3, 100e-9)
	got, err := Suggest(RC, target)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got[0].RelativeError > 1e-12 {
		t.Fatalf("best error = %v, want ~0", got[0].RelativeError)
	}
}

func TestSuggest_Options(t *testing.T) {
	got, err := Suggest(RC, 1000,
		WithCount(3),
		WithSeries(eseries.E6),
		WithResistorRange(1e3, 1e4),
		WithReactiveRange(1e-9, 1e-6),
	)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	e6 := eseries.GenerateSeries(eseries.E6, 1e3, 1e4)
	for _, c := range got {
		if !contains(e6, c.R) {
			t.Errorf("R %v is not an E6 value in [1k, 10k]", c.R)
		}
		if c.X < 1e-9 || c.X > 1e-6 {
			t.Errorf("C %v outside [1n, 1u]", c.X)
		}
	}
}

func TestSuggest_InvalidInputs(t *testing.T) {
	for _, target := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if _, err := Suggest(RC, target); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("target %v: err = %v, want ErrInvalidTarget", target, err)
		}
	}
	if _, err := Suggest(Topology(9), 1000); !errors.Is(err, ErrUnknownTopology) {
		t.Errorf("err = %v, want ErrUnknownTopology", err)
	}
}

func TestApplySuggestOptions_IgnoresInvalid(t *testing.T) {
	cfg := ApplySuggestOptions(WithCount(0), WithResistorRange(10, 1), nil)
	if cfg.Count != DefaultSuggestions {
		t.Errorf("Count = %d, want %d", cfg.Count, DefaultSuggestions)
	}
	if cfg.Resistor != DefaultResistorRange {
		t.Errorf("Resistor = %+v, want default", cfg.Resistor)
	}
}

func containsPair(cs []Candidate, r, x float64) bool {
	for _, c := range cs {
		if c.R == r && c.X == x {
			return true
		}
	}
	return false
}

func contains(vals []float64, v float64) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
