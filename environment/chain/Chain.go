// Package chain implements small episodic environments whose states
// are named by strings: the deterministic A -> B -> C -> T chain, a
// two-state loop, and one-step problems with Bernoulli rewards.
package chain

import (
	"fmt"

	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/environment/tabular"
)

// Terminal is the label of the terminal state of every environment in
// this package
const Terminal = "T"

// Chain is an episodic environment over string states backed by a
// tabular MDP
type Chain struct {
	*tabular.Labeled[string]
	sim *tabular.Simulator
}

// Simulator returns the index-addressed simulator underlying the chain
func (c *Chain) Simulator() *tabular.Simulator {
	return c.sim
}

// New returns the deterministic chain A -> B -> C -> T. There is a
// single action. Moving from A and from B pays 0 and moving from C into
// T pays +1. Episodes always start in A.
func New() *Chain {
	outcomes := [][][]tabular.Outcome{
		{{{Prob: 1, Next: 1, Reward: 0}}},
		{{{Prob: 1, Next: 2, Reward: 0}}},
		{{{Prob: 1, Next: 3, Reward: 1}}},
		nil,
	}
	c, err := build(outcomes, 1, []string{"A", "B", "C", Terminal}, 0)
	if err != nil {
		panic(fmt.Sprintf("new: %v", err))
	}
	return c
}

// NewLoop returns the two-state loop: from A the single action stays in
// A with probability p and moves to B otherwise, paying 0 either way.
// From B the episode ends in T with reward +1. Episodes start in A.
//
// Under discount γ the true values are V(B) = 1 and
// V(A) = (1-p)γ / (1-pγ).
func NewLoop(p float64, seed uint64) (*Chain, error) {
	if err := check.Distribution("p", []float64{p, 1 - p}); err != nil {
		return nil, err
	}
	if p == 1 {
		return nil, check.Configf("p", p, "episodes would never leave A")
	}

	var fromA []tabular.Outcome
	if p > 0 {
		fromA = append(fromA, tabular.Outcome{Prob: p, Next: 0, Reward: 0})
	}
	fromA = append(fromA, tabular.Outcome{Prob: 1 - p, Next: 1, Reward: 0})

	outcomes := [][][]tabular.Outcome{
		{fromA},
		{{{Prob: 1, Next: 2, Reward: 1}}},
		nil,
	}
	return build(outcomes, 1, []string{"A", "B", Terminal}, seed)
}

// NewOneStep returns a one-step episodic problem with one action per
// entry of rewardProbs. Taking action a from the start state S ends the
// episode with reward 1 with probability rewardProbs[a] and reward 0
// otherwise. The two outcomes are the terminal states W and L.
func NewOneStep(rewardProbs []float64, seed uint64) (*Chain, error) {
	if len(rewardProbs) == 0 {
		return nil, check.Configf("reward probabilities", rewardProbs,
			"at least one action is needed")
	}

	fromS := make([][]tabular.Outcome, len(rewardProbs))
	for a, p := range rewardProbs {
		if err := check.Distribution(fmt.Sprintf("reward probability %d", a),
			[]float64{p, 1 - p}); err != nil {
			return nil, err
		}
		fromS[a] = []tabular.Outcome{
			{Prob: p, Next: 1, Reward: 1},
			{Prob: 1 - p, Next: 2, Reward: 0},
		}
	}

	outcomes := [][][]tabular.Outcome{fromS, nil, nil}
	return build(outcomes, len(rewardProbs), []string{"S", "W", "L"}, seed)
}

// build constructs a Chain which always starts in state 0
func build(outcomes [][][]tabular.Outcome, actions int, labels []string,
	seed uint64) (*Chain, error) {
	terminals := make([]int, 0, 2)
	for s := range outcomes {
		if outcomes[s] == nil {
			terminals = append(terminals, s)
		}
	}

	m, err := tabular.FromOutcomes(len(outcomes), actions, outcomes, terminals)
	if err != nil {
		return nil, err
	}

	sim, err := tabular.NewSimulator(m, environment.SingleStart[int]{State: 0},
		1.0, seed)
	if err != nil {
		return nil, err
	}

	labeled, err := tabular.NewLabeled(sim, labels)
	if err != nil {
		return nil, err
	}
	return &Chain{Labeled: labeled, sim: sim}, nil
}
