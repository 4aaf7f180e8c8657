package check

import (
	"math"
)

// ProbTolerance is the tolerance used when checking that probabilities
// sum to 1
const ProbTolerance = 1e-9

// Discount checks that a discount factor is in [0, 1]
func Discount(gamma float64) error {
	if math.IsNaN(gamma) || gamma < 0 || gamma > 1 {
		return Configf("discount", gamma, "must be in [0, 1]")
	}
	return nil
}

// Tolerance checks that a convergence threshold is positive
func Tolerance(theta float64) error {
	if math.IsNaN(theta) || theta <= 0 {
		return Configf("tolerance", theta, "must be > 0")
	}
	return nil
}

// Epsilon checks that an exploration rate is in [0, 1]
func Epsilon(e float64) error {
	if math.IsNaN(e) || e < 0 || e > 1 {
		return Configf("epsilon", e, "must be in [0, 1]")
	}
	return nil
}

// StepSize checks that a learning rate is in (0, 1]
func StepSize(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 || alpha > 1 {
		return Configf("step size", alpha, "must be in (0, 1]")
	}
	return nil
}

// NStep checks that the number of steps in an n-step return is at
// least 1
func NStep(n int) error {
	if n < 1 {
		return Configf("n", n, "must be >= 1")
	}
	return nil
}

// Exploration checks that the exploration bonus coefficient of a
// UCB-style rule is positive
func Exploration(c float64) error {
	if math.IsNaN(c) || c <= 0 {
		return Configf("exploration coefficient", c, "must be > 0")
	}
	return nil
}

// Positive checks that an integer cap (e.g. episodes, sweeps) is at
// least 1
func Positive(param string, n int) error {
	if n < 1 {
		return Configf(param, n, "must be >= 1")
	}
	return nil
}

// Distribution checks that probs is a probability vector: each entry in
// [0, 1] and the entries summing to 1 within ProbTolerance
func Distribution(param string, probs []float64) error {
	if len(probs) == 0 {
		return Configf(param, probs, "empty probability vector")
	}
	var sum float64
	for i, p := range probs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return Configf(param, probs, "entry %d = %v outside [0, 1]", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > ProbTolerance*float64(len(probs)) {
		return Configf(param, probs, "sums to %v, not 1", sum)
	}
	return nil
}

// Index returns an IndexError if i is not in [0, n)
func Index(kind string, i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Kind: kind, Index: i, Len: n}
	}
	return nil
}

// MustIndex panics with an IndexError if i is not in [0, n). Table
// lookups use it the way gonum's mat package panics on bad access.
func MustIndex(kind string, i, n int) {
	if err := Index(kind, i, n); err != nil {
		panic(err)
	}
}
