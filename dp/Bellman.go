// Package dp implements dynamic programming for finite MDPs given by
// explicit transition and reward tensors: policy evaluation, policy
// iteration, and value iteration.
//
// Every sweep updates states in increasing index order in place
// (Gauss-Seidel), so that later states in a sweep already see the
// updated values of earlier states. Terminal states are held at zero.
package dp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/policy"
	"sfneuman.com/tabular/utils/logutils"
	"sfneuman.com/tabular/utils/matutils"
)

// model caches the tensors of an environment.Model for the lifetime of
// one algorithm run
type model struct {
	states, actions int
	p, r            []*mat.Dense
	terminal        []bool
}

func newModel(m environment.Model) *model {
	terminal := make([]bool, m.NumStates())
	for s := range terminal {
		terminal[s] = m.IsTerminal(s)
	}
	return &model{
		states:   m.NumStates(),
		actions:  m.NumActions(),
		p:        m.TransitionTensor(),
		r:        m.RewardTensor(),
		terminal: terminal,
	}
}

// backup returns Σ_s' P(s'|s,a) (R(s,a,s') + γV(s'))
func (m *model) backup(v mat.Vector, s, a int, gamma float64) float64 {
	var q float64
	for next, prob := range m.p[s].RawRowView(a) {
		if prob == 0 {
			continue
		}
		q += prob * (m.r[s].At(a, next) + gamma*v.AtVec(next))
	}
	return q
}

// Backup returns the one-step lookahead value of taking action a in
// state s and then following the values v:
//
//	Σ_s' P(s'|s,a) (R(s,a,s') + γ v(s'))
//
// Next states with zero probability are skipped.
func Backup(m environment.Model, v mat.Vector, s, a int, gamma float64) float64 {
	check.MustIndex("state", s, m.NumStates())
	check.MustIndex("action", a, m.NumActions())
	return newModel(m).backup(v, s, a, gamma)
}

// QFromV returns the action values of v under the one-step Bellman
// expectation. Rows of terminal states are zero.
func QFromV(m environment.Model, v mat.Vector, gamma float64) *mat.Dense {
	return newModel(m).qFromV(v, gamma)
}

func (m *model) qFromV(v mat.Vector, gamma float64) *mat.Dense {
	q := mat.NewDense(m.states, m.actions, nil)
	for s := 0; s < m.states; s++ {
		if m.terminal[s] {
			continue
		}
		for a := 0; a < m.actions; a++ {
			q.Set(s, a, m.backup(v, s, a, gamma))
		}
	}
	return q
}

// Evaluation is the result of policy evaluation
type Evaluation struct {
	V         *mat.VecDense
	Sweeps    int
	Delta     float64 // largest change in the final sweep
	Converged bool
}

// Evaluate computes the state values of pi by iterating the Bellman
// expectation operator from zero until the largest change in a sweep is
// less than cfg.Tolerance. If cfg.MaxSweeps is reached first, the last
// values are returned with Converged set to false and a warning is
// logged.
//
// Actions which pi takes with zero probability are skipped.
func Evaluate(m environment.Model, pi policy.Policy, cfg Config) (Evaluation, error) {
	if err := cfg.Validate(); err != nil {
		return Evaluation{}, fmt.Errorf("evaluate: %w", err)
	}
	if err := checkPolicy(m, pi); err != nil {
		return Evaluation{}, fmt.Errorf("evaluate: %w", err)
	}

	v := mat.NewVecDense(m.NumStates(), nil)
	return newModel(m).evaluate(pi, cfg, v), nil
}

// evaluate runs policy evaluation in place on v
func (m *model) evaluate(pi policy.Policy, cfg Config, v *mat.VecDense) Evaluation {
	var delta float64
	for sweep := 1; sweep <= cfg.MaxSweeps; sweep++ {
		delta = 0
		for s := 0; s < m.states; s++ {
			if m.terminal[s] {
				v.SetVec(s, 0)
				continue
			}

			var value float64
			for a := 0; a < m.actions; a++ {
				prob := pi.Prob(s, a)
				if prob == 0 {
					continue
				}
				value += prob * m.backup(v, s, a, cfg.Discount)
			}

			delta = math.Max(delta, math.Abs(value-v.AtVec(s)))
			v.SetVec(s, value)
		}

		if delta < cfg.Tolerance {
			return Evaluation{V: v, Sweeps: sweep, Delta: delta, Converged: true}
		}
	}

	logutils.Warnf("evaluate: no convergence after %d sweeps (delta = %v)",
		cfg.MaxSweeps, delta)
	return Evaluation{V: v, Sweeps: cfg.MaxSweeps, Delta: delta}
}

// Residual returns the largest change that one synchronous application
// of the Bellman expectation operator for pi would make to v, ignoring
// terminal states. It is zero exactly at the fixed point.
func Residual(m environment.Model, pi policy.Policy, v mat.Vector,
	gamma float64) float64 {
	mod := newModel(m)
	backedUp := mat.VecDenseCopyOf(v)
	for s := 0; s < mod.states; s++ {
		if mod.terminal[s] {
			continue
		}
		var value float64
		for a := 0; a < mod.actions; a++ {
			if prob := pi.Prob(s, a); prob != 0 {
				value += prob * mod.backup(v, s, a, gamma)
			}
		}
		backedUp.SetVec(s, value)
	}
	return matutils.MaxAbsDiff(backedUp, v)
}

func checkPolicy(m environment.Model, pi policy.Policy) error {
	if pi.NumStates() != m.NumStates() || pi.NumActions() != m.NumActions() {
		return check.Configf("policy", fmt.Sprintf("(%d, %d)", pi.NumStates(),
			pi.NumActions()), "must have shape (%d, %d)", m.NumStates(),
			m.NumActions())
	}
	return nil
}
