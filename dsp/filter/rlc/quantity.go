package rlc

import (
	"math"
	"strconv"
)

// Quantity is an optional physical value. The zero Quantity is unknown.
type Quantity struct {
	Value float64
	Valid bool
}

// Known returns a known Quantity holding v.
func Known(v float64) Quantity {
	return Quantity{Value: v, Valid: true}
}

// Unknown returns an absent Quantity.
func Unknown() Quantity {
	return Quantity{}
}

// FromInput maps a raw numeric entry to a Quantity: zero, negative and
// non-finite entries are treated as blank.
func FromInput(v float64) Quantity {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Unknown()
	}
	return Known(v)
}

// String formats the value, or "?" when unknown.
func (q Quantity) String() string {
	if !q.Valid {
		return "?"
	}
	return strconv.FormatFloat(q.Value, 'g', -1, 64)
}

// PartialSpec holds up to three known quantities of a first-order filter.
// X is the inductance for RL and the capacitance for RC.
type PartialSpec struct {
	R Quantity
	X Quantity
	F Quantity
}

// Known returns the number of known quantities.
func (p PartialSpec) Known() int {
	n := 0
	for _, q := range [...]Quantity{p.R, p.X, p.F} {
		if q.Valid {
			n++
		}
	}
	return n
}
