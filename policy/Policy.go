// Package policy implements tabular policies: deterministic policies
// which take one action per state, stochastic policies given by a
// row-stochastic matrix, and ε-greedy action selection over a live
// action-value table.
package policy

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/check"
)

// Policy is a mapping from states 0..NumStates()-1 to distributions
// over actions 0..NumActions()-1
type Policy interface {
	// Prob returns π(action | state)
	Prob(state, action int) float64
	NumStates() int
	NumActions() int
}

// Probs returns the action distribution of p in state
func Probs(p Policy, state int) []float64 {
	probs := make([]float64, p.NumActions())
	for a := range probs {
		probs[a] = p.Prob(state, a)
	}
	return probs
}

// Matrix returns p as a (states, actions) row-stochastic matrix
func Matrix(p Policy) *mat.Dense {
	m := mat.NewDense(p.NumStates(), p.NumActions(), nil)
	for s := 0; s < p.NumStates(); s++ {
		m.SetRow(s, Probs(p, s))
	}
	return m
}

// Deterministic is a policy which always takes the same action in a
// given state
type Deterministic struct {
	actions    []int
	numActions int
}

// NewDeterministic returns a new Deterministic policy taking
// actions[s] in state s
func NewDeterministic(actions []int, numActions int) (*Deterministic, error) {
	if err := check.Positive("actions", numActions); err != nil {
		return nil, err
	}
	for s, a := range actions {
		if err := check.Index("action", a, numActions); err != nil {
			return nil, fmt.Errorf("newDeterministic: state %d: %w", s, err)
		}
	}

	a := make([]int, len(actions))
	copy(a, actions)
	return &Deterministic{a, numActions}, nil
}

// Prob returns 1 if action is the action taken in state and 0
// otherwise
func (d *Deterministic) Prob(state, action int) float64 {
	check.MustIndex("state", state, len(d.actions))
	check.MustIndex("action", action, d.numActions)
	if d.actions[state] == action {
		return 1
	}
	return 0
}

// Action returns the action taken in state
func (d *Deterministic) Action(state int) int {
	check.MustIndex("state", state, len(d.actions))
	return d.actions[state]
}

// Actions returns the action taken in each state
func (d *Deterministic) Actions() []int {
	a := make([]int, len(d.actions))
	copy(a, d.actions)
	return a
}

// Matrix returns the policy as one-hot rows
func (d *Deterministic) Matrix() *mat.Dense {
	return Matrix(d)
}

// NumStates returns the number of states
func (d *Deterministic) NumStates() int {
	return len(d.actions)
}

// NumActions returns the number of actions
func (d *Deterministic) NumActions() int {
	return d.numActions
}

// Equal returns whether two deterministic policies take the same action
// in every state
func (d *Deterministic) Equal(other *Deterministic) bool {
	if len(d.actions) != len(other.actions) || d.numActions != other.numActions {
		return false
	}
	for s := range d.actions {
		if d.actions[s] != other.actions[s] {
			return false
		}
	}
	return true
}

// Greedy returns the deterministic policy which takes argmax_a q[s, a]
// in each state s. Ties are broken by taking the lowest action index.
func Greedy(q *mat.Dense) *Deterministic {
	states, numActions := q.Dims()
	actions := make([]int, states)
	for s := range actions {
		actions[s] = floats.MaxIdx(q.RawRowView(s))
	}
	return &Deterministic{actions, numActions}
}

// GreedyWithin is Greedy with ties taken to be any action values within
// tol of the maximum. Value tables computed to a tolerance rarely hold
// exact ties, so callers comparing policies from different solvers
// should use this with the tolerance the values were computed to.
func GreedyWithin(q *mat.Dense, tol float64) *Deterministic {
	states, numActions := q.Dims()
	actions := make([]int, states)
	for s := range actions {
		actions[s] = ArgMaxWithin(q.RawRowView(s), tol)
	}
	return &Deterministic{actions, numActions}
}

// ArgMaxWithin returns the lowest index whose value is within tol of
// the maximum of values
func ArgMaxWithin(values []float64, tol float64) int {
	max := floats.Max(values)
	for i, v := range values {
		if v >= max-tol {
			return i
		}
	}
	return 0
}

// GreedyFrom returns the deterministic policy taking the most probable
// action of p in each state, with ties broken by lowest action index
func GreedyFrom(p Policy) *Deterministic {
	actions := make([]int, p.NumStates())
	for s := range actions {
		actions[s] = floats.MaxIdx(Probs(p, s))
	}
	return &Deterministic{actions, p.NumActions()}
}
