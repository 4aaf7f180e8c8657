// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes why an episode ended. An episode either reaches a
// terminal state or is cut off by a step limit.
type EndType int

const (
	TerminalStateReached EndType = iota
	Timeout
)

func (e EndType) String() string {
	if e == Timeout {
		return "Timeout"
	}
	return "TerminalStateReached"
}

// TimeStep packages together a single timestep in an environment. The
// type parameter S is the type used to identify states: int for
// index-addressed tabular environments, or any other comparable type
// for environments whose states are labels.
type TimeStep[S comparable] struct {
	StepType StepType
	Reward   float64
	Discount float64
	State    S
	Number   int
	endType  EndType
}

// New returns a new TimeStep
func New[S comparable](t StepType, r, d float64, s S, n int) TimeStep[S] {
	return TimeStep[S]{StepType: t, Reward: r, Discount: d, State: s,
		Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep[S]) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep[S]) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep[S]) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the reason the episode ended. It only has meaning on the
// last step of an episode.
func (t *TimeStep[S]) SetEnd(e EndType) {
	t.endType = e
}

// End returns the reason the episode ended
func (t *TimeStep[S]) End() EndType {
	return t.endType
}

// Terminal returns whether the TimeStep is the last step of an episode
// because a terminal state was reached. A step which was cut off by a
// step limit is Last but not Terminal, and its state may still be
// bootstrapped from.
func (t *TimeStep[S]) Terminal() bool {
	return t.Last() && t.endType == TerminalStateReached
}

func (t TimeStep[S]) String() string {
	str := "TimeStep | Type: %v  |  State: %v  |  Reward:  %.2f  |  " +
		"Discount: %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.State, t.Reward, t.Discount,
		t.Number)
}

// Transition packages a single (S, A, R, S') transition
type Transition[S comparable] struct {
	State     S
	Action    int
	Reward    float64
	Discount  float64
	NextState S
	Terminal  bool
}

// NewTransition creates a new Transition from the TimeStep in which an
// action was taken and the TimeStep that followed
func NewTransition[S comparable](step TimeStep[S], action int,
	next TimeStep[S]) Transition[S] {
	return Transition[S]{
		State:     step.State,
		Action:    action,
		Reward:    next.Reward,
		Discount:  next.Discount,
		NextState: next.State,
		Terminal:  next.Terminal(),
	}
}
