package esarsa

import (
	"fmt"

	"sfneuman.com/tabular/agent"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
)

func init() {
	// Register Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.EGreedyESarsa, Config{})
}

// Config represents a configuration for the ESarsa agent
type Config struct {
	BehaviourE   float64 `json:"behaviourEpsilon"` // ε of behaviour policy
	TargetE      float64 `json:"targetEpsilon"`    // ε of target policy
	LearningRate float64 `json:"learningRate"`
}

// CreateAgent creates the agent from the Config. Action values are
// always initialized to zero using this function.
func (c Config) CreateAgent(env environment.Enumerable,
	seed uint64) (agent.Agent, error) {
	return New(env, c, seed)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*ESarsa)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if err := check.Epsilon(c.BehaviourE); err != nil {
		return fmt.Errorf("behaviour: %w", err)
	}
	if err := check.Epsilon(c.TargetE); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	return check.StepSize(c.LearningRate)
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.EGreedyESarsa
}
