package environment

import "sfneuman.com/tabular/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits. Episodes ended this way are marked as timeouts so
// that learners still bootstrap from the final state.
type StepLimit[S comparable] struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit[S comparable](episodeSteps int) StepLimit[S] {
	return StepLimit[S]{episodeSteps}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode termination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is timestep.Timeout
func (s StepLimit[S]) End(t *timestep.TimeStep[S]) bool {
	if t.Number >= s.episodeSteps && !t.Last() {
		t.StepType = timestep.Last
		t.SetEnd(timestep.Timeout)
		return true
	}
	return false
}
