package tabular

import (
	"fmt"

	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/timestep"
)

// Labeled exposes a Simulator through states identified by labels of
// any comparable type, such as strings. Label i names state i of the
// underlying MDP.
type Labeled[S comparable] struct {
	sim    *Simulator
	labels []S
	index  map[S]int
}

// NewLabeled returns a new Labeled environment. There must be exactly
// one distinct label per state of sim.
func NewLabeled[S comparable](sim *Simulator, labels []S) (*Labeled[S], error) {
	if len(labels) != sim.NumStates() {
		return nil, check.Configf("labels", len(labels),
			"must name each of the %d states", sim.NumStates())
	}

	index := make(map[S]int, len(labels))
	for i, l := range labels {
		if _, ok := index[l]; ok {
			return nil, check.Configf("labels", l, "duplicate label")
		}
		index[l] = i
	}

	l := make([]S, len(labels))
	copy(l, labels)
	return &Labeled[S]{sim: sim, labels: l, index: index}, nil
}

// Reset begins a new episode
func (l *Labeled[S]) Reset() timestep.TimeStep[S] {
	return l.label(l.sim.Reset())
}

// ResetTo begins a new episode in the given state
func (l *Labeled[S]) ResetTo(state S) (timestep.TimeStep[S], error) {
	i, ok := l.index[state]
	if !ok {
		return timestep.TimeStep[S]{}, fmt.Errorf("resetTo: unknown state %v",
			state)
	}
	step, err := l.sim.ResetTo(i)
	if err != nil {
		return timestep.TimeStep[S]{}, err
	}
	return l.label(step), nil
}

// Step takes one action in the environment
func (l *Labeled[S]) Step(action int) (timestep.TimeStep[S], bool, error) {
	step, done, err := l.sim.Step(action)
	if err != nil {
		return timestep.TimeStep[S]{}, false, err
	}
	return l.label(step), done, nil
}

// NumActions returns the number of actions
func (l *Labeled[S]) NumActions() int {
	return l.sim.NumActions()
}

// States returns the state labels in index order
func (l *Labeled[S]) States() []S {
	s := make([]S, len(l.labels))
	copy(s, l.labels)
	return s
}

// Index returns the index of the state with the given label
func (l *Labeled[S]) Index(state S) (int, bool) {
	i, ok := l.index[state]
	return i, ok
}

// Label returns the label of state index i
func (l *Labeled[S]) Label(i int) S {
	check.MustIndex("state", i, len(l.labels))
	return l.labels[i]
}

// IsTerminal returns whether the labelled state is terminal. Unknown
// labels are not terminal.
func (l *Labeled[S]) IsTerminal(state S) bool {
	i, ok := l.index[state]
	return ok && l.sim.IsTerminal(i)
}

// Model returns the underlying MDP
func (l *Labeled[S]) Model() *MDP {
	return l.sim.MDP
}

func (l *Labeled[S]) label(step timestep.TimeStep[int]) timestep.TimeStep[S] {
	labelled := timestep.New(step.StepType, step.Reward, step.Discount,
		l.labels[step.State], step.Number)
	labelled.SetEnd(step.End())
	return labelled
}
