package eseries

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Decade bounds searched by the generators (inclusive).
const (
	MinExponent = -12
	MaxExponent = 12
)

// ErrUnknownSeries is returned by ParseSeries for unrecognized names.
var ErrUnknownSeries = errors.New("eseries: unknown series")

// Series identifies a preferred-number series.
type Series int

const (
	E12 Series = iota
	E6
	E24
)

var (
	e6Mantissas  = []float64{1.0, 1.5, 2.2, 3.3, 4.7, 6.8}
	e12Mantissas = []float64{1.0, 1.2, 1.5, 1.8, 2.2, 2.7, 3.3, 3.9, 4.7, 5.6, 6.8, 8.2}
	e24Mantissas = []float64{
		1.0, 1.1, 1.2, 1.3, 1.5, 1.6, 1.8, 2.0, 2.2, 2.4, 2.7, 3.0,
		3.3, 3.6, 3.9, 4.3, 4.7, 5.1, 5.6, 6.2, 6.8, 7.5, 8.2, 9.1,
	}
)

// String returns the conventional series name ("E12").
func (s Series) String() string {
	switch s {
	case E6:
		return "E6"
	case E12:
		return "E12"
	case E24:
		return "E24"
	default:
		return "Series(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseSeries parses a series name such as "E12" or "e24".
func ParseSeries(name string) (Series, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "E6":
		return E6, nil
	case "E12", "":
		return E12, nil
	case "E24":
		return E24, nil
	default:
		return E12, ErrUnknownSeries
	}
}

// Mantissas returns a copy of the per-decade mantissas of s in ascending
// order. Unknown series return nil.
func (s Series) Mantissas() []float64 {
	var m []float64
	switch s {
	case E6:
		m = e6Mantissas
	case E12:
		m = e12Mantissas
	case E24:
		m = e24Mantissas
	default:
		return nil
	}
	return append([]float64(nil), m...)
}

// Generate returns the E12 values v with min <= v <= max, ascending.
func Generate(min, max float64) []float64 {
	return GenerateSeries(E12, min, max)
}

// GenerateSeries returns the values of s within [min, max], ascending.
// The caller guarantees 0 < min <= max; no validation is performed.
func GenerateSeries(s Series, min, max float64) []float64 {
	mantissas := s.Mantissas()
	var vals []float64
	for exp := MinExponent; exp <= MaxExponent; exp++ {
		mult := math.Pow(10, float64(exp))
		for _, m := range mantissas {
			v := roundSignificant(m * mult)
			if v >= min && v <= max {
				vals = append(vals, v)
			}
		}
	}
	sort.Float64s(vals)
	return vals
}

// Nearest returns the value of s closest to v on a logarithmic scale.
// Non-positive or non-finite inputs are returned unchanged.
func Nearest(s Series, v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	mantissas := s.Mantissas()
	if len(mantissas) == 0 {
		return v
	}

	exp := math.Floor(math.Log10(v))
	best := v
	bestDist := math.Inf(1)
	// Neighbouring decades cover values just below 1.0 and above the last mantissa.
	for e := exp - 1; e <= exp+1; e++ {
		mult := math.Pow(10, e)
		for _, m := range mantissas {
			c := roundSignificant(m * mult)
			d := math.Abs(math.Log10(c / v))
			if d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	return best
}

func roundSignificant(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 12, 64), 64)
	if err != nil {
		return v
	}
	return r
}
