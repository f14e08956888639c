package rlc

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-rlc/component/eseries"
	"github.com/cwbudde/algo-rlc/dsp/core"
)

// DefaultSuggestions is the number of candidates Suggest returns by default.
const DefaultSuggestions = 5

// Candidate is a standard-value component pair and the cutoff it produces.
type Candidate struct {
	R             float64
	X             float64
	Cutoff        float64
	RelativeError float64
}

// Range is a closed magnitude window [Min, Max].
type Range struct {
	Min, Max float64
}

// SuggestConfig controls the candidate search.
type SuggestConfig struct {
	Count    int
	Series   eseries.Series
	Resistor Range
	// Reactive overrides the topology default when Max > 0.
	Reactive Range
}

// SuggestOption mutates a SuggestConfig.
type SuggestOption func(*SuggestConfig)

// DefaultResistorRange is the resistor window searched for both topologies.
var DefaultResistorRange = Range{Min: 10, Max: 1e6}

// DefaultReactiveRange returns the reactive-component window for t:
// 1 µH to 100 mH for RL and 1 pF to 100 µF for RC.
func DefaultReactiveRange(t Topology) Range {
	if t == RL {
		return Range{Min: 1e-6, Max: 0.1}
	}
	return Range{Min: 1e-12, Max: 1e-4}
}

// DefaultSuggestConfig returns the E12, top-5 configuration.
func DefaultSuggestConfig() SuggestConfig {
	return SuggestConfig{
		Count:    DefaultSuggestions,
		Series:   eseries.E12,
		Resistor: DefaultResistorRange,
	}
}

// WithCount sets the number of candidates returned.
func WithCount(n int) SuggestOption {
	return func(cfg *SuggestConfig) {
		if n > 0 {
			cfg.Count = n
		}
	}
}

// WithSeries selects the preferred-number series.
func WithSeries(s eseries.Series) SuggestOption {
	return func(cfg *SuggestConfig) {
		cfg.Series = s
	}
}

// WithResistorRange overrides the resistor window.
func WithResistorRange(min, max float64) SuggestOption {
	return func(cfg *SuggestConfig) {
		if min > 0 && max >= min {
			cfg.Resistor = Range{Min: min, Max: max}
		}
	}
}

// WithReactiveRange overrides the reactive-component window.
func WithReactiveRange(min, max float64) SuggestOption {
	return func(cfg *SuggestConfig) {
		if min > 0 && max >= min {
			cfg.Reactive = Range{Min: min, Max: max}
		}
	}
}

// ApplySuggestOptions applies zero or more options to the default config.
func ApplySuggestOptions(opts ...SuggestOption) SuggestConfig {
	cfg := DefaultSuggestConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Suggest returns the standard-value pairs whose cutoff is closest to
// target, ordered by ascending relative error. Exact ties keep the
// resistor-major enumeration order.
func Suggest(t Topology, target float64, opts ...SuggestOption) ([]Candidate, error) {
	if !t.Valid() {
		return nil, ErrUnknownTopology
	}
	if !(target > 0) || math.IsInf(target, 0) {
		return nil, ErrInvalidTarget
	}

	cfg := ApplySuggestOptions(opts...)
	reactive := cfg.Reactive
	if reactive.Max <= 0 {
		reactive = DefaultReactiveRange(t)
	}

	rVals := eseries.GenerateSeries(cfg.Series, cfg.Resistor.Min, cfg.Resistor.Max)
	xVals := eseries.GenerateSeries(cfg.Series, reactive.Min, reactive.Max)

	combos := make([]Candidate, 0, len(rVals)*len(xVals))
	for _, r := range rVals {
		for _, x := range xVals {
			fc := Cutoff(t, r, x)
			combos = append(combos, Candidate{
				R:             r,
				X:             x,
				Cutoff:        fc,
				RelativeError: core.RelativeError(fc, target),
			})
		}
	}

	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].RelativeError < combos[j].RelativeError
	})

	if len(combos) > cfg.Count {
		combos = append([]Candidate(nil), combos[:cfg.Count]...)
	}
	return combos, nil
}
