package rlc

import (
	"strconv"

	"github.com/cwbudde/algo-rlc/dsp/core"
)

// ConsistencyTolerance is the relative tolerance Solve accepts between a
// supplied cutoff and the one implied by R and X.
const ConsistencyTolerance = 1e-6

// Result is the single quantity computed by Solve.
type Result struct {
	// Name is "R", "L", "C" or "f".
	Name  string
	Value float64
}

// String formats the result as "name=value".
func (r Result) String() string {
	return r.Name + "=" + strconv.FormatFloat(r.Value, 'g', 6, 64)
}

// Solve computes the missing quantity of spec for topology t.
//
// Unknowns are resolved in the fixed order R, X, f. When all three
// quantities are known, the cutoff implied by R and X is recomputed and
// returned if it matches the supplied one; otherwise ErrInconsistent is
// returned.
func Solve(t Topology, spec PartialSpec) (Result, error) {
	if spec.Known() < 2 {
		return Result{}, ErrInsufficientInputs
	}
	if !t.Valid() {
		return Result{}, ErrInvalidCombination
	}

	r, x, f := spec.R.Value, spec.X.Value, spec.F.Value

	switch {
	case !spec.R.Valid:
		if t == RL {
			return finite("R", f*Tau*x)
		}
		if x == 0 || f == 0 {
			return Result{}, ErrCalculation
		}
		return finite("R", 1/(Tau*x*f))

	case !spec.X.Valid:
		name := t.ReactiveName()
		if f == 0 {
			return Result{}, ErrCalculation
		}
		if t == RL {
			return finite(name, r/(Tau*f))
		}
		if r == 0 {
			return Result{}, ErrCalculation
		}
		return finite(name, 1/(Tau*r*f))

	case !spec.F.Valid:
		return solveCutoff(t, r, x)

	default:
		res, err := solveCutoff(t, r, x)
		if err != nil {
			return Result{}, err
		}
		if core.RelativeError(res.Value, f) > ConsistencyTolerance {
			return Result{}, ErrInconsistent
		}
		return res, nil
	}
}

func solveCutoff(t Topology, r, x float64) (Result, error) {
	if x == 0 || (t == RC && r == 0) {
		return Result{}, ErrCalculation
	}
	return finite("f", Cutoff(t, r, x))
}

func finite(name string, v float64) (Result, error) {
	if !core.IsFinite(v) {
		return Result{}, ErrCalculation
	}
	return Result{Name: name, Value: v}, nil
}
