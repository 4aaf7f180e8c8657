// Package qlearning implements the tabular Q-Learning algorithm.
//
// The Q-Learning algorithm is a special case of the Expected Sarsa
// algorithm. This package implements the same functionality as the
// esarsa package with a target ε of 0, but bootstraps directly from the
// maximum action value in the next state.
package qlearning

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/policy"
	"sfneuman.com/tabular/table"
	"sfneuman.com/tabular/timestep"
	"sfneuman.com/tabular/utils/logutils"
)

// QLearning implements the Q-Learning algorithm with an ε-greedy
// behaviour policy
type QLearning struct {
	q         *table.Matrix
	behaviour *policy.EGreedy[int]

	learningRate float64
	lastStep     timestep.TimeStep[int]
	transition   timestep.Transition[int]
	observed     bool
}

// New creates a new QLearning agent for env with action values
// initialized to zero
func New(env environment.Enumerable, config Config, seed uint64) (*QLearning,
	error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	q := table.NewMatrix(env.NumStates(), env.NumActions())
	behaviour, err := policy.NewEGreedy[int](q, config.Epsilon, seed)
	if err != nil {
		return nil, fmt.Errorf("new: invalid behaviour policy: %w", err)
	}

	return &QLearning{
		q:            q,
		behaviour:    behaviour,
		learningRate: config.LearningRate,
	}, nil
}

// SelectAction selects an action from the behaviour policy
func (q *QLearning) SelectAction(t timestep.TimeStep[int]) int {
	return q.behaviour.SelectAction(t.State)
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearning) ObserveFirst(t timestep.TimeStep[int]) error {
	if !t.First() {
		logutils.Warnf("observeFirst: should only be called on the first "+
			"timestep (current timestep = %d)", t.Number)
	}
	q.lastStep = t
	q.observed = false
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (q *QLearning) Observe(action int, nextStep timestep.TimeStep[int]) error {
	if err := check.Index("action", action, q.q.NumActions()); err != nil {
		return fmt.Errorf("observe: %w", err)
	}
	q.transition = timestep.NewTransition(q.lastStep, action, nextStep)
	q.lastStep = nextStep
	q.observed = true
	return nil
}

// Step updates the action values using the most recent transition
func (q *QLearning) Step() error {
	if !q.observed {
		return fmt.Errorf("step: no transition observed")
	}

	t := q.transition
	q.q.Add(t.State, t.Action, q.learningRate*q.TdError(t))
	return nil
}

// TdError returns the TD error of the greedy target on a transition.
// Transitions into terminal states do not bootstrap.
func (q *QLearning) TdError(t timestep.Transition[int]) float64 {
	target := t.Reward
	if !t.Terminal {
		target += t.Discount * floats.Max(q.q.Row(t.NextState))
	}
	return target - q.q.At(t.State, t.Action)
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearning) EndEpisode() {
	q.observed = false
}

// ActionValues returns the learned action value table
func (q *QLearning) ActionValues() *table.Matrix {
	return q.q
}

// Greedy returns the greedy policy with respect to the learned action
// values
func (q *QLearning) Greedy() *policy.Deterministic {
	return policy.Greedy(q.q.RawMatrix())
}
