// Package agent defines the interface of online tabular agents
package agent

import (
	"sfneuman.com/tabular/table"
	"sfneuman.com/tabular/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values, and a
// Policy which chooses actions in each state. The Learner and Policy
// share the same action value table so that updates made by the
// Learner are immediately reflected in the actions the Policy chooses.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep[int]) error

	// Observe records that an action lead to some timestep
	Observe(action int, nextStep timestep.TimeStep[int]) error

	// Step performs a single update to the learner using the most
	// recently observed transition
	Step() error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents the behaviour policy of an agent
type Policy interface {
	SelectAction(t timestep.TimeStep[int]) int
}

// Valuer is an Agent whose learned action values can be inspected
type Valuer interface {
	Agent
	ActionValues() *table.Matrix
}

// TdErrorer is a Learner that can return the TD error of some
// transition
type TdErrorer interface {
	Learner
	TdError(t timestep.Transition[int]) float64
}
