// Package spectrum converts FFT bins into magnitude curves.
//
// Magnitudes use SIMD kernels from algo-vecmath when available. Only the
// non-redundant half of a real-input spectrum is of interest to the
// measurement code, see [HalfMagnitudeDB].
package spectrum
