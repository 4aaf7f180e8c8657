// Package montecarlo implements Monte Carlo prediction and control from
// sampled episodes: first- and every-visit prediction, control with
// exploring starts, on-policy ε-greedy control, and off-policy
// evaluation and control with importance sampling.
//
// Every algorithm works with any comparable state type. Dense tables
// from package table serve integer-indexed environments such as
// gridworlds and map tables serve environments with labelled states.
package montecarlo

import (
	"fmt"

	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/timestep"
)

// Step is one step of an episode: the state, the action taken in it,
// and the reward which followed
type Step[S comparable] struct {
	State  S
	Action int
	Reward float64
}

// Episode is a sequence of steps ending in a terminal state, or cut
// short at a step limit if Truncated is set
type Episode[S comparable] struct {
	Steps     []Step[S]
	Truncated bool
}

// Len returns the number of steps in the episode
func (e Episode[S]) Len() int {
	return len(e.Steps)
}

// Rewards returns the rewards of the episode in order
func (e Episode[S]) Rewards() []float64 {
	rewards := make([]float64, len(e.Steps))
	for t, step := range e.Steps {
		rewards[t] = step.Reward
	}
	return rewards
}

// Returns returns the discounted return from each step of the episode
func (e Episode[S]) Returns(gamma float64) []float64 {
	return Returns(e.Rewards(), gamma)
}

// Returns computes the discounted return G_t = R_{t+1} + γG_{t+1} at
// every step t of a reward sequence in a single backward pass, where
// rewards[t] is R_{t+1} and the return after the last reward is zero.
func Returns(rewards []float64, gamma float64) []float64 {
	returns := make([]float64, len(rewards))
	var g float64
	for t := len(rewards) - 1; t >= 0; t-- {
		g = rewards[t] + gamma*g
		returns[t] = g
	}
	return returns
}

// Generate resets env and samples an episode, choosing actions with
// selectAction. Episodes which have not ended after maxSteps steps are
// truncated.
func Generate[S comparable](env environment.Environment[S],
	selectAction func(S) int, maxSteps int) (Episode[S], error) {
	return Rollout[S](env, env.Reset(), selectAction, maxSteps)
}

// Rollout samples an episode from env, which must be at the timestep
// start, choosing actions with selectAction. Episodes which have not
// ended after maxSteps steps are truncated.
func Rollout[S comparable](env environment.Environment[S],
	start timestep.TimeStep[S], selectAction func(S) int,
	maxSteps int) (Episode[S], error) {
	limit := environment.NewStepLimit[S](maxSteps)

	var episode Episode[S]
	step := start
	for !step.Last() {
		state := step.State
		action := selectAction(state)

		next, _, err := env.Step(action)
		if err != nil {
			return episode, fmt.Errorf("rollout: step %d: %w", step.Number, err)
		}
		limit.End(&next)

		episode.Steps = append(episode.Steps, Step[S]{state, action, next.Reward})
		step = next
	}

	episode.Truncated = !step.Terminal()
	return episode, nil
}
