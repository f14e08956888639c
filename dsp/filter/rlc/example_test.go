package rlc_test

import (
	"fmt"

	"github.com/cwbudde/algo-rlc/dsp/filter/rlc"
)

func ExampleSolve() {
	// Cutoff of a 1 kΩ / 100 nF RC filter.
	res, err := rlc.Solve(rlc.RC, rlc.PartialSpec{
		R: rlc.Known(1e3),
		X: rlc.Known(100e-9),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s = %.2f Hz\n", res.Name, res.Value)

	// Only one value known.
	_, err = rlc.Solve(rlc.RL, rlc.PartialSpec{R: rlc.Known(100)})
	fmt.Println(err)
	// Output:
	// f = 1591.55 Hz
	// rlc: need 2 values
}

func ExampleSuggest() {
	cands, err := rlc.Suggest(rlc.RC, 1000, rlc.WithCount(1))
	if err != nil {
		fmt.Println(err)
		return
	}
	c := cands[0]
	fmt.Printf("R=%g C=%g fc=%.1f err=%.4f\n", c.R, c.X, c.Cutoff, c.RelativeError)
	// Output:
	// R=33 C=4.7e-06 fc=1026.1 err=0.0261
}
