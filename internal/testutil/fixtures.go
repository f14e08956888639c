package testutil

import (
	"math"
	"math/rand"
)

// LogUniform returns n deterministic values spread log-uniformly over
// [lo, hi]. The same seed always yields the same values.
func LogUniform(seed int64, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	span := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(rng.Float64()*span)
	}
	return out
}
