package montecarlo

import (
	"sfneuman.com/tabular/check"
)

// Config configures the Monte Carlo algorithms
type Config struct {
	Discount float64 `json:"discount"`
	Episodes int     `json:"episodes"`

	// MaxSteps truncates episodes which have not ended after this many
	// steps. Truncated episodes still update the tables, using the
	// rewards observed before truncation.
	MaxSteps int `json:"maxSteps"`

	// Epsilon is the exploration rate of ε-greedy action selection
	Epsilon float64 `json:"epsilon"`

	// StepSize is the constant step size of value updates. If zero,
	// values are sample averages of the observed returns.
	StepSize float64 `json:"stepSize"`

	// FirstVisit restricts updates to the first occurrence of each
	// state, or state-action pair, in an episode
	FirstVisit bool `json:"firstVisit"`

	Seed uint64 `json:"seed"`
}

// DefaultConfig returns a configuration for first-visit, sample-average
// Monte Carlo with γ = 0.9
func DefaultConfig() Config {
	return Config{
		Discount:   0.9,
		Episodes:   2000,
		MaxSteps:   1000,
		Epsilon:    0.1,
		StepSize:   0,
		FirstVisit: true,
	}
}

// Validate checks that the configuration is valid
func (c Config) Validate() error {
	if err := check.Discount(c.Discount); err != nil {
		return err
	}
	if err := check.Positive("episodes", c.Episodes); err != nil {
		return err
	}
	if err := check.Positive("max steps", c.MaxSteps); err != nil {
		return err
	}
	if err := check.Epsilon(c.Epsilon); err != nil {
		return err
	}
	if c.StepSize != 0 {
		return check.StepSize(c.StepSize)
	}
	return nil
}

// Stats summarises the episodes used by an algorithm
type Stats struct {
	Episodes  int
	Truncated int
	Steps     int
}

func (s *Stats) add(length int, truncated bool) {
	s.Episodes++
	s.Steps += length
	if truncated {
		s.Truncated++
	}
}
