package tabular

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/check"
)

// Outcome is one possible result of taking an action in a state: the
// next state is Next with probability Prob, paying Reward.
type Outcome struct {
	Prob   float64
	Next   int
	Reward float64
}

// FromOutcomes constructs an MDP from the sparse view, where
// outcomes[s][a] lists the possible results of taking action a in
// state s. Outcomes with the same next state are merged: their
// probabilities are summed and their rewards averaged, weighted by
// probability. A terminal state whose outcome lists are empty is made
// absorbing.
func FromOutcomes(states, actions int, outcomes [][][]Outcome,
	terminals []int) (*MDP, error) {
	if err := check.Positive("states", states); err != nil {
		return nil, err
	}
	if err := check.Positive("actions", actions); err != nil {
		return nil, err
	}
	if len(outcomes) != states {
		return nil, check.Configf("outcomes", len(outcomes),
			"must list outcomes for %d states", states)
	}

	isTerminal := make(map[int]bool, len(terminals))
	for _, t := range terminals {
		isTerminal[t] = true
	}

	p := make([]*mat.Dense, states)
	r := make([]*mat.Dense, states)
	for s := 0; s < states; s++ {
		p[s] = mat.NewDense(actions, states, nil)
		r[s] = mat.NewDense(actions, states, nil)

		if len(outcomes[s]) == 0 && isTerminal[s] {
			for a := 0; a < actions; a++ {
				p[s].Set(a, s, 1)
			}
			continue
		}
		if len(outcomes[s]) != actions {
			return nil, check.Configf(fmt.Sprintf("outcomes[%d]", s),
				len(outcomes[s]), "must list outcomes for %d actions", actions)
		}

		for a := 0; a < actions; a++ {
			if len(outcomes[s][a]) == 0 && isTerminal[s] {
				p[s].Set(a, s, 1)
				continue
			}
			for _, o := range outcomes[s][a] {
				if err := check.Index("next state", o.Next, states); err != nil {
					return nil, fmt.Errorf("fromOutcomes: state %d action %d: %w",
						s, a, err)
				}
				p[s].Set(a, o.Next, p[s].At(a, o.Next)+o.Prob)

				// Accumulate probability-weighted rewards, normalised below
				r[s].Set(a, o.Next, r[s].At(a, o.Next)+o.Prob*o.Reward)
			}
			for next := 0; next < states; next++ {
				if prob := p[s].At(a, next); prob > 0 {
					r[s].Set(a, next, r[s].At(a, next)/prob)
				}
			}
		}
	}

	return New(p, r, terminals)
}

// Outcomes returns the sparse view of taking action in state: every
// next state with non-zero probability, in increasing order of state
// index.
func (m *MDP) Outcomes(state, action int) []Outcome {
	check.MustIndex("state", state, m.states)
	check.MustIndex("action", action, m.actions)

	var outcomes []Outcome
	for next, prob := range m.p[state].RawRowView(action) {
		if prob > 0 {
			outcomes = append(outcomes, Outcome{
				Prob:   prob,
				Next:   next,
				Reward: m.r[state].At(action, next),
			})
		}
	}
	return outcomes
}

// AllOutcomes returns the full sparse view of the MDP, indexed as
// [state][action]
func (m *MDP) AllOutcomes() [][][]Outcome {
	all := make([][][]Outcome, m.states)
	for s := range all {
		all[s] = make([][]Outcome, m.actions)
		for a := range all[s] {
			all[s][a] = m.Outcomes(s, a)
		}
	}
	return all
}
