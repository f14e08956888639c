// Package rlc computes component values for first-order RL and RC filters.
//
// A first-order filter is fully described by a resistance R, a reactive
// component X (inductance L for [RL], capacitance C for [RC]) and its cutoff
// frequency:
//
//	RL: fc = R / (2π L)
//	RC: fc = 1 / (2π R C)
//
// [Solve] recovers whichever of R, X and fc is missing from the other two.
// [Suggest] searches pairs of E12 standard values (see component/eseries)
// for the combinations whose cutoff lies closest to a target frequency.
//
// Everything in this package is a pure function of its inputs and safe for
// concurrent use.
package rlc
