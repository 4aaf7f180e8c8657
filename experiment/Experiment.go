// Package experiment implements functionality for running an agent
// online in a gridworld and tracking what happens
package experiment

import (
	"fmt"

	"golang.org/x/exp/rand"
	"sfneuman.com/tabular/agent"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/environment/gridworld"
	"sfneuman.com/tabular/experiment/tracker"
)

// Experiment outlines structs that can run experiments. Experiments
// send each environment TimeStep to their Trackers, which record data
// in memory. The Run() method runs episodes until the maximum timestep
// limit is reached. The RunEpisode() method runs a single episode.
type Experiment interface {
	Run() error

	// RunEpisode returns whether or not the maximum timestep limit has
	// been reached
	RunEpisode() (bool, error)

	// Register adds a new tracker.Tracker to the (possibly already
	// running) experiment. Useful if you want to track data only after
	// a specified event.
	Register(t tracker.Tracker)
}

// Type is the kind of an Experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment
type Config struct {
	Type     Type    `json:"type"`
	MaxSteps int     `json:"maxSteps"`
	Discount float64 `json:"discount"`

	// EpisodeSteps cuts episodes which have not ended after this many
	// steps. If zero, episodes are only ended by the environment.
	EpisodeSteps int `json:"episodeSteps"`

	EnvConf   gridworld.Config  `json:"environment"`
	AgentConf agent.TypedConfig `json:"agent"`
}

// Validate checks that the configuration is valid
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return check.Configf("type", c.Type, "no such experiment type")
	}
	if err := check.Positive("max steps", c.MaxSteps); err != nil {
		return err
	}
	if err := check.Discount(c.Discount); err != nil {
		return err
	}
	if c.EpisodeSteps < 0 {
		return check.Configf("episode steps", c.EpisodeSteps, "must be >= 0")
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if c.AgentConf.Config == nil {
		return check.Configf("agent", nil, "no agent configured")
	}
	if err := c.AgentConf.Validate(); err != nil {
		return fmt.Errorf("agent: %w", err)
	}
	return nil
}

// CreateExp creates the experiment described by the Config, returning
// it along with the agent it runs
func (c Config) CreateExp(seed uint64, t ...tracker.Tracker) (*Online,
	agent.Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("createExp: %w", err)
	}

	g, err := gridworld.New(c.EnvConf)
	if err != nil {
		return nil, nil, fmt.Errorf("createExp: %w", err)
	}
	seeds := rand.New(rand.NewSource(seed))
	envSeed, agentSeed := seeds.Uint64(), seeds.Uint64()

	env, err := g.NewSimulator(c.Discount, envSeed)
	if err != nil {
		return nil, nil, fmt.Errorf("createExp: %w", err)
	}
	if c.EpisodeSteps > 0 {
		env.AddEnder(environment.NewStepLimit[int](c.EpisodeSteps))
	}

	a, err := c.AgentConf.CreateAgent(env, agentSeed)
	if err != nil {
		return nil, nil, fmt.Errorf("createExp: could not create agent: %w",
			err)
	}

	return NewOnline(env, a, c.MaxSteps, t...), a, nil
}
