// Package environment outlines the interfaces and structs needed to
// implement concrete finite environments
package environment

import (
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/timestep"
)

// Model gives tensor access to a finite MDP. States are indexed
// 0..NumStates()-1 and actions 0..NumActions()-1.
//
// TransitionTensor()[s].At(a, s') is P(s' | s, a) and
// RewardTensor()[s].At(a, s') is the expected reward R(s, a, s'). Each
// call returns a fresh copy which the caller may modify.
type Model interface {
	NumStates() int
	NumActions() int
	IsTerminal(state int) bool
	TransitionTensor() []*mat.Dense
	RewardTensor() []*mat.Dense
}

// Environment gives sampling access to an episodic environment whose
// states are identified by values of type S. An Environment starts
// ready to use; Reset begins a new episode.
type Environment[S comparable] interface {
	Reset() timestep.TimeStep[S]

	// Step takes an action in the environment, returning the next
	// timestep and whether the episode has ended. Taking an action in a
	// terminal state leaves the state unchanged with zero reward.
	Step(action int) (timestep.TimeStep[S], bool, error)
	NumActions() int
}

// Restarter is an Environment which can begin an episode in an
// arbitrary state, as needed by exploring starts
type Restarter[S comparable] interface {
	Environment[S]
	ResetTo(state S) (timestep.TimeStep[S], error)
}

// Enumerable is an Environment over integer states which also exposes
// its state space, so that tables can be sized and start states chosen
type Enumerable interface {
	Restarter[int]
	NumStates() int
	IsTerminal(state int) bool
}

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter[S comparable] interface {
	Start() S
}

// Ender determines when an episode should be ended, modifying the
// timestep so that its StepType field is timestep.Last and its EndType
// records why
type Ender[S comparable] interface {
	End(*timestep.TimeStep[S]) bool
}
