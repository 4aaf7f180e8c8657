// Package tabular implements finite Markov Decision Processes given by
// explicit transition and reward tensors, together with a simulator
// which samples episodes from those same tensors.
package tabular

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/check"
)

// MDP is a finite Markov Decision Process. P[s].At(a, s') is the
// probability of transitioning to s' after taking action a in state s
// and R[s].At(a, s') the expected reward of that transition.
//
// An MDP is immutable after construction.
type MDP struct {
	states, actions int
	p, r            []*mat.Dense
	terminal        []bool
	terminals       []int
}

// New returns a new MDP with transition tensor p, reward tensor r, and
// terminal states terminals. The tensors are copied.
//
// Every row p[s].RawRowView(a) must be a probability distribution.
// Terminal states must be absorbing with zero reward under every
// action.
func New(p, r []*mat.Dense, terminals []int) (*MDP, error) {
	if len(p) == 0 {
		return nil, check.Configf("transition tensor", len(p),
			"must have at least one state")
	}
	if len(p) != len(r) {
		return nil, check.Configf("reward tensor", len(r),
			"must have %d states to match transitions", len(p))
	}

	states := len(p)
	actions, _ := p[0].Dims()
	if actions == 0 {
		return nil, check.Configf("transition tensor", actions,
			"must have at least one action")
	}

	m := &MDP{
		states:   states,
		actions:  actions,
		p:        make([]*mat.Dense, states),
		r:        make([]*mat.Dense, states),
		terminal: make([]bool, states),
	}

	for s := 0; s < states; s++ {
		if rows, cols := p[s].Dims(); rows != actions || cols != states {
			return nil, check.Configf(fmt.Sprintf("P[%d]", s),
				fmt.Sprintf("(%d, %d)", rows, cols), "must have shape (%d, %d)",
				actions, states)
		}
		if rows, cols := r[s].Dims(); rows != actions || cols != states {
			return nil, check.Configf(fmt.Sprintf("R[%d]", s),
				fmt.Sprintf("(%d, %d)", rows, cols), "must have shape (%d, %d)",
				actions, states)
		}

		m.p[s] = mat.DenseCopyOf(p[s])
		m.r[s] = mat.DenseCopyOf(r[s])

		for a := 0; a < actions; a++ {
			param := fmt.Sprintf("P[%d][%d]", s, a)
			if err := check.Distribution(param, m.p[s].RawRowView(a)); err != nil {
				return nil, err
			}
			for next := 0; next < states; next++ {
				if rew := m.r[s].At(a, next); math.IsNaN(rew) || math.IsInf(rew, 0) {
					return nil, check.Configf(fmt.Sprintf("R[%d][%d][%d]", s, a,
						next), rew, "must be finite")
				}
			}
		}
	}

	for _, t := range terminals {
		if err := check.Index("terminal state", t, states); err != nil {
			return nil, fmt.Errorf("new: %w", err)
		}
		if m.terminal[t] {
			continue
		}
		for a := 0; a < actions; a++ {
			if math.Abs(m.p[t].At(a, t)-1) > check.ProbTolerance {
				return nil, check.Configf(fmt.Sprintf("P[%d][%d]", t, a),
					m.p[t].RawRowView(a), "terminal state must be absorbing")
			}
			if m.r[t].At(a, t) != 0 {
				return nil, check.Configf(fmt.Sprintf("R[%d][%d][%d]", t, a, t),
					m.r[t].At(a, t), "terminal state must have zero reward")
			}
		}
		m.terminal[t] = true
		m.terminals = append(m.terminals, t)
	}

	return m, nil
}

// NumStates returns the number of states
func (m *MDP) NumStates() int {
	return m.states
}

// NumActions returns the number of actions
func (m *MDP) NumActions() int {
	return m.actions
}

// IsTerminal returns whether state is terminal. It panics with a
// *check.IndexError if state is out of range.
func (m *MDP) IsTerminal(state int) bool {
	check.MustIndex("state", state, m.states)
	return m.terminal[state]
}

// Terminals returns the terminal states in the order they were given
func (m *MDP) Terminals() []int {
	t := make([]int, len(m.terminals))
	copy(t, m.terminals)
	return t
}

// NonTerminals returns the non-terminal states in increasing order
func (m *MDP) NonTerminals() []int {
	states := make([]int, 0, m.states-len(m.terminals))
	for s := 0; s < m.states; s++ {
		if !m.terminal[s] {
			states = append(states, s)
		}
	}
	return states
}

// Prob returns P(next | state, action)
func (m *MDP) Prob(state, action, next int) float64 {
	m.mustIndex(state, action, next)
	return m.p[state].At(action, next)
}

// Reward returns R(state, action, next)
func (m *MDP) Reward(state, action, next int) float64 {
	m.mustIndex(state, action, next)
	return m.r[state].At(action, next)
}

// TransitionTensor returns a copy of the transition tensor
func (m *MDP) TransitionTensor() []*mat.Dense {
	return copyTensor(m.p)
}

// RewardTensor returns a copy of the reward tensor
func (m *MDP) RewardTensor() []*mat.Dense {
	return copyTensor(m.r)
}

func (m *MDP) mustIndex(state, action, next int) {
	check.MustIndex("state", state, m.states)
	check.MustIndex("action", action, m.actions)
	check.MustIndex("next state", next, m.states)
}

func copyTensor(t []*mat.Dense) []*mat.Dense {
	c := make([]*mat.Dense, len(t))
	for i := range t {
		c[i] = mat.DenseCopyOf(t[i])
	}
	return c
}
