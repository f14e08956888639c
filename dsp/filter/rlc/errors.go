package rlc

import "errors"

var (
	// ErrInsufficientInputs is returned when fewer than two quantities are known.
	ErrInsufficientInputs = errors.New("rlc: need 2 values")
	// ErrCalculation is returned when a required divisor is zero or the
	// result is not a finite number.
	ErrCalculation = errors.New("rlc: calc error")
	// ErrInvalidCombination is returned when no solve branch applies.
	ErrInvalidCombination = errors.New("rlc: invalid combination")
	// ErrInconsistent is returned when all three quantities are known but
	// do not describe the same filter.
	ErrInconsistent = errors.New("rlc: inconsistent values")
	// ErrInvalidTarget is returned by Suggest for a non-positive target.
	ErrInvalidTarget = errors.New("rlc: target frequency must be positive")
	// ErrUnknownTopology is returned by ParseTopology.
	ErrUnknownTopology = errors.New("rlc: unknown topology")
	// ErrAboveNyquist is returned when a cutoff cannot be represented at
	// the requested sample rate.
	ErrAboveNyquist = errors.New("rlc: cutoff must be below Nyquist")
)
