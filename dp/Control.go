package dp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/policy"
	"sfneuman.com/tabular/utils/logutils"
)

// Iteration is the result of policy iteration
type Iteration struct {
	Policy     *policy.Deterministic
	V          *mat.VecDense
	Iterations int // improvement steps taken
	Sweeps     int // evaluation sweeps over all iterations
	Converged  bool
}

// PolicyIteration finds an optimal policy by alternating policy
// evaluation with greedy policy improvement, starting from the uniform
// random policy. Each evaluation is warm started from the values of the
// previous one. Iteration stops once improvement leaves every state's
// greedy action unchanged.
//
// Greedy actions are chosen with lowest-index tie-breaking, where
// action values within cfg.Tolerance of the maximum are ties. If
// cfg.MaxIterations improvement steps are taken without the policy
// becoming stable, the last policy and values are returned together
// with an error wrapping check.ErrNonConvergence.
func PolicyIteration(m environment.Model, cfg Config) (Iteration, error) {
	if err := cfg.Validate(); err != nil {
		return Iteration{}, fmt.Errorf("policyIteration: %w", err)
	}

	mod := newModel(m)
	v := mat.NewVecDense(mod.states, nil)

	var pi policy.Policy = policy.NewUniform(mod.states, mod.actions)
	var greedy *policy.Deterministic
	result := Iteration{Converged: true}

	for i := 1; i <= cfg.MaxIterations; i++ {
		eval := mod.evaluate(pi, cfg, v)
		result.Sweeps += eval.Sweeps
		result.Converged = result.Converged && eval.Converged

		q := mod.qFromV(v, cfg.Discount)
		improved := policy.GreedyWithin(q, cfg.Tolerance)
		result.Policy, result.V, result.Iterations = improved, v, i

		if greedy != nil && stable(q, greedy, cfg.Tolerance) {
			return result, nil
		}
		greedy = improved
		pi = improved
	}

	result.Converged = false
	logutils.Warnf("policyIteration: policy not stable after %d iterations",
		cfg.MaxIterations)
	return result, fmt.Errorf("policyIteration: %d iterations: %w",
		cfg.MaxIterations, check.ErrNonConvergence)
}

// stable returns whether the action of pi in every state is greedy
// with respect to q, to within tol
func stable(q *mat.Dense, pi *policy.Deterministic, tol float64) bool {
	states, _ := q.Dims()
	for s := 0; s < states; s++ {
		row := q.RawRowView(s)
		if row[pi.Action(s)] < floats.Max(row)-tol {
			return false
		}
	}
	return true
}

// Optimal is the result of value iteration
type Optimal struct {
	V         *mat.VecDense
	Policy    *policy.Deterministic
	Sweeps    int
	Delta     float64
	Converged bool
}

// ValueIteration finds the optimal state values by iterating the
// Bellman optimality operator from zero until the largest change in a
// sweep is less than cfg.Tolerance, then extracts the greedy policy
// with the same tie-breaking as PolicyIteration. Reaching
// cfg.MaxSweeps is reported through Converged and a warning.
func ValueIteration(m environment.Model, cfg Config) (Optimal, error) {
	if err := cfg.Validate(); err != nil {
		return Optimal{}, fmt.Errorf("valueIteration: %w", err)
	}

	mod := newModel(m)
	v := mat.NewVecDense(mod.states, nil)
	values := make([]float64, mod.actions)

	result := Optimal{V: v}
	for sweep := 1; sweep <= cfg.MaxSweeps; sweep++ {
		var delta float64
		for s := 0; s < mod.states; s++ {
			if mod.terminal[s] {
				v.SetVec(s, 0)
				continue
			}
			for a := range values {
				values[a] = mod.backup(v, s, a, cfg.Discount)
			}
			best := floats.Max(values)
			delta = math.Max(delta, math.Abs(best-v.AtVec(s)))
			v.SetVec(s, best)
		}

		result.Sweeps, result.Delta = sweep, delta
		if delta < cfg.Tolerance {
			result.Converged = true
			break
		}
	}

	if !result.Converged {
		logutils.Warnf("valueIteration: no convergence after %d sweeps "+
			"(delta = %v)", cfg.MaxSweeps, result.Delta)
	}

	result.Policy = policy.GreedyWithin(mod.qFromV(v, cfg.Discount),
		cfg.Tolerance)
	return result, nil
}
