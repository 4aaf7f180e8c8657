// Package esarsa implements the online tabular Expected Sarsa algorithm
// with ε-greedy behaviour and target policies.
//
// With a target ε of 0 Expected Sarsa is Q-learning. With target ε
// equal to behaviour ε it is on-policy Expected Sarsa.
package esarsa

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

// ESarsa implements the online Expected Sarsa algorithm. Actions
// selected by this algorithm are enumerated as 0, 1, ..., N-1 where N
// is the number of actions in the environment.
type ESarsa struct {
	q         *table.Matrix
	behaviour *policy.EGreedy[int]
	targetE   float64

	learningRate float64
	step         timestep.TimeStep[int]
	action       int
	nextStep     timestep.TimeStep[int]
	observed     bool
}

// New creates a new ESarsa agent for env with action values
// initialized to zero
func New(env environment.Enumerable, config Config, seed uint64) (*ESarsa,
	error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	q := table.NewMatrix(env.NumStates(), env.NumActions())
	behaviour, err := policy.NewEGreedy[int](q, config.BehaviourE, seed)
	if err != nil {
		return nil, fmt.Errorf("new: invalid behaviour policy: %w", err)
	}

	return &ESarsa{
		q:            q,
		behaviour:    behaviour,
		targetE:      config.TargetE,
		learningRate: config.LearningRate,
	}, nil
}

// SelectAction selects an action from the behaviour policy
func (e *ESarsa) SelectAction(t timestep.TimeStep[int]) int {
	return e.behaviour.SelectAction(t.State)
}

// ObserveFirst observes and records the first episodic timestep
func (e *ESarsa) ObserveFirst(t timestep.TimeStep[int]) error {
	if !t.First() {
		logutils.Warnf("observeFirst: should only be called on the first "+
			"timestep (current timestep = %d)", t.Number)
	}
	e.step = timestep.TimeStep[int]{}
	e.nextStep = t
	e.observed = false
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (e *ESarsa) Observe(action int, nextStep timestep.TimeStep[int]) error {
	if err := check.Index("action", action, e.q.NumActions()); err != nil {
		return fmt.Errorf("observe: %w", err)
	}
	e.step = e.nextStep
	e.action = action
	e.nextStep = nextStep
	e.observed = true
	return nil
}

// targetProbabilities returns the probability of each action in the
// next state under the ε-greedy target policy
func (e *ESarsa) targetProbabilities(actionValues []float64) []float64 {
	probs := make([]float64, len(actionValues))
	epsProb := e.targetE / float64(len(probs))
	for i := range probs {
		probs[i] = epsProb
	}
	probs[floats.MaxIdx(actionValues)] += 1 - e.targetE
	return probs
}

// Step updates the action values using the most recent transition. The
// target does not bootstrap from terminal states.
func (e *ESarsa) Step() error {
	if !e.observed {
		return fmt.Errorf("step: no transition observed")
	}

	target := e.nextStep.Reward
	if !e.nextStep.Terminal() {
		actionValues := e.q.Row(e.nextStep.State)
		expectedQ := floats.Dot(e.targetProbabilities(actionValues),
			actionValues)
		target += e.nextStep.Discount * expectedQ
	}

	state := e.step.State
	e.q.Add(state, e.action,
		e.learningRate*(target-e.q.At(state, e.action)))
	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (e *ESarsa) EndEpisode() {
	e.observed = false
}

// ActionValues returns the learned action value table
func (e *ESarsa) ActionValues() *table.Matrix {
	return e.q
}
