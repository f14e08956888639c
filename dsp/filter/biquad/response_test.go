package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponse_OnePoleDC(t *testing.T) {
	c := onePole(0.8)
	h := c.Response(0, 48000)
	if !almostEqual(cmplx.Abs(h), 1, 1e-12) {
		t.Fatalf("|H(0)| = %v, want 1", cmplx.Abs(h))
	}
}

func TestMagnitudeDB_MatchesResponse(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0
	for _, freq := range []float64{100, 1000, 10000} {
		want := 20 * math.Log10(cmplx.Abs(c.Response(freq, sr)))
		if db := c.MagnitudeDB(freq, sr); !almostEqual(db, want, 1e-12) {
			t.Errorf("freq=%v: MagnitudeDB=%v, want %v", freq, db, want)
		}
	}
}

func TestPhase_PureDelay(t *testing.T) {
	c := Coefficients{B1: 1}
	sr := 48000.0
	freq := 1000.0
	want := -2 * math.Pi * freq / sr
	if got := c.Phase(freq, sr); !almostEqual(got, want, 1e-12) {
		t.Fatalf("Phase = %v, want %v", got, want)
	}
}

func TestImpulseResponse_PreservesState(t *testing.T) {
	s := NewSection(onePole(0.5))
	s.ProcessSample(1)
	before := s.State()

	ir := s.ImpulseResponse(4)
	want := []float64{0.5, 0.25, 0.125, 0.0625}
	for i := range want {
		if !almostEqual(ir[i], want[i], eps) {
			t.Errorf("ir[%d] = %v, want %v", i, ir[i], want[i])
		}
	}
	if s.State() != before {
		t.Fatalf("state changed: %v -> %v", before, s.State())
	}
	if s.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}
