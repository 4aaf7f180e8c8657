package environment

import (
	"sfneuman.com/tabular/timestep"
)

// FunctionEnder ends an episode whenever a function of the state
// returns true.
type FunctionEnder[S comparable] struct {
	end     func(S) bool
	endType timestep.EndType
}

// NewFunctionEnder returns a new FunctionEnder which ends episodes with
// end type endType when f returns true.
func NewFunctionEnder[S comparable](f func(S) bool,
	endType timestep.EndType) Ender[S] {
	return &FunctionEnder[S]{f, endType}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended, End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is the appropriate ending
// type.
func (f *FunctionEnder[S]) End(t *timestep.TimeStep[S]) bool {
	if f.end(t.State) {
		t.StepType = timestep.Last
		t.SetEnd(f.endType)
		return true
	}
	return false
}
