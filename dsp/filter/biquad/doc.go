// Package biquad provides the IIR section runtime used to simulate
// discretized RL/RC designs.
//
// A [Section] implements Direct Form II Transposed processing for a single
// section defined by [Coefficients]. First-order designs leave B2 and A2 at
// zero. Coefficient design lives in dsp/filter/rlc.
package biquad
