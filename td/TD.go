// Package td implements temporal-difference prediction of state values
// from sampled episodes: TD(0) and n-step TD, each with either online or
// backward-sweep update ordering.
package td

import (
	"fmt"
	"math"

	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/table"
	"sfneuman.com/tabular/utils/intutils"
	"sfneuman.com/tabular/utils/logutils"
)

// TD0 estimates the state values of the policy selectAction into v with
// the update V(s) ← V(s) + α(R + γV(s') - V(s)). Transitions into a
// terminal state use the target R.
func TD0[S comparable](env environment.Environment[S],
	selectAction func(S) int, cfg Config, v table.Values[S]) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, fmt.Errorf("td0: %w", err)
	}
	return predict[S](env, selectAction, cfg, 1, v)
}

// NStep estimates the state values of the policy selectAction into v
// with n-step TD, where n is cfg.N. The target of the state visited at
// time τ is
//
//	G = R_{τ+1} + γR_{τ+2} + ... + γ^{m-1}R_{τ+m} + γ^m V(S_{τ+m})
//
// with m = min(n, T-τ). The bootstrap term is dropped when S_{τ+m} is
// terminal, so states within n steps of termination use the Monte Carlo
// return. With n = 1 NStep is TD0.
func NStep[S comparable](env environment.Environment[S],
	selectAction func(S) int, cfg Config, v table.Values[S]) (Stats, error) {
	if err := check.NStep(cfg.N); err != nil {
		return Stats{}, fmt.Errorf("nStep: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Stats{}, fmt.Errorf("nStep: %w", err)
	}
	return predict[S](env, selectAction, cfg, cfg.N, v)
}

// trajectory stores an episode as it is sampled. states[t] is S_t and
// rewards[t] is R_t, with rewards[0] unused.
type trajectory[S comparable] struct {
	states  []S
	rewards []float64

	// end is the index of the final state once the episode has ended.
	// terminal records whether it is a terminal state or the state in
	// which the episode was truncated.
	end      int
	terminal bool
}

// target returns the n-step target of the state visited at time tau
func (tr *trajectory[S]) target(tau, n int, gamma float64,
	v table.Values[S]) float64 {
	last := intutils.Min(tau+n, tr.end)

	var g float64
	discount := 1.0
	for k := tau + 1; k <= last; k++ {
		g += discount * tr.rewards[k]
		discount *= gamma
	}
	if last < tr.end || !tr.terminal {
		g += discount * v.At(tr.states[last])
	}
	return g
}

func predict[S comparable](env environment.Environment[S],
	selectAction func(S) int, cfg Config, n int, v table.Values[S]) (Stats,
	error) {
	limit := environment.NewStepLimit[S](cfg.MaxSteps)
	update := func(tr *trajectory[S], tau int) {
		s := tr.states[tau]
		g := tr.target(tau, n, cfg.Discount, v)
		v.Add(s, cfg.StepSize*(g-v.At(s)))
	}

	var stats Stats
	for i := 0; i < cfg.Episodes; i++ {
		step := env.Reset()
		tr := &trajectory[S]{
			states:  []S{step.State},
			rewards: []float64{0},
			end:     math.MaxInt,
		}

		for t := 0; ; t++ {
			if t < tr.end {
				next, _, err := env.Step(selectAction(tr.states[t]))
				if err != nil {
					return stats, fmt.Errorf("predict: episode %d: step %d: %w",
						i, t, err)
				}
				limit.End(&next)

				tr.states = append(tr.states, next.State)
				tr.rewards = append(tr.rewards, next.Reward)
				if next.Last() {
					tr.end = t + 1
					tr.terminal = next.Terminal()
				}
			}

			if cfg.Ordering == BackwardSweep {
				if t+1 >= tr.end {
					break
				}
				continue
			}

			tau := t - n + 1
			if tau >= 0 {
				update(tr, tau)
			}
			if tau >= tr.end-1 {
				break
			}
		}

		if cfg.Ordering == BackwardSweep {
			for tau := tr.end - 1; tau >= 0; tau-- {
				update(tr, tau)
			}
		}

		stats.Episodes++
		stats.Steps += tr.end
		if !tr.terminal {
			stats.Truncated++
		}
	}

	if stats.Truncated > 0 {
		logutils.Warnf("td: %d of %d episodes truncated at the step limit, "+
			"bootstrapping from the last state", stats.Truncated, stats.Episodes)
	}
	return stats, nil
}
