package rlc

import (
	"math"
	"strings"
)

// Tau converts angular to ordinary frequency (2π).
const Tau = 2 * math.Pi

// Topology selects the filter family.
type Topology int

const (
	// RL pairs a resistor with an inductor.
	RL Topology = iota + 1
	// RC pairs a resistor with a capacitor.
	RC
)

// String returns "RL" or "RC".
func (t Topology) String() string {
	switch t {
	case RL:
		return "RL"
	case RC:
		return "RC"
	default:
		return "unknown"
	}
}

// Valid reports whether t is RL or RC.
func (t Topology) Valid() bool {
	return t == RL || t == RC
}

// ReactiveName returns the symbol of the reactive component ("L" or "C").
func (t Topology) ReactiveName() string {
	switch t {
	case RL:
		return "L"
	case RC:
		return "C"
	default:
		return "X"
	}
}

// ReactiveUnit returns the SI unit symbol of the reactive component.
func (t Topology) ReactiveUnit() string {
	switch t {
	case RL:
		return "H"
	case RC:
		return "F"
	default:
		return ""
	}
}

// UnitOf returns the SI unit symbol for a Result name: "ohm" for R, "Hz"
// for f and the reactive unit otherwise.
func (t Topology) UnitOf(name string) string {
	switch name {
	case "R":
		return "ohm"
	case "f":
		return "Hz"
	default:
		return t.ReactiveUnit()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Topology) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrUnknownTopology
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Topology) UnmarshalText(b []byte) error {
	v, err := ParseTopology(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ParseTopology parses "RL" or "RC" (case-insensitive).
func ParseTopology(s string) (Topology, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RL":
		return RL, nil
	case "RC":
		return RC, nil
	default:
		return 0, ErrUnknownTopology
	}
}

// Cutoff returns the cutoff frequency in Hz of resistance r paired with
// reactive value x. Zero divisors yield +Inf, matching IEEE arithmetic.
func Cutoff(t Topology, r, x float64) float64 {
	switch t {
	case RL:
		return r / (Tau * x)
	case RC:
		return 1 / (Tau * r * x)
	default:
		return math.NaN()
	}
}

// TimeConstant returns the filter time constant in seconds (L/R or RC).
func TimeConstant(t Topology, r, x float64) float64 {
	switch t {
	case RL:
		return x / r
	case RC:
		return r * x
	default:
		return math.NaN()
	}
}
