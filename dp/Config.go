package dp

import (
	"fmt"

	"sfneuman.com/tabular/check"
)

// Config configures the dynamic programming algorithms
type Config struct {
	Discount  float64 `json:"discount"`
	Tolerance float64 `json:"tolerance"`

	// MaxSweeps caps the number of sweeps of a single policy evaluation
	// or value iteration run
	MaxSweeps int `json:"maxSweeps"`

	// MaxIterations caps the number of improvement steps of policy
	// iteration
	MaxIterations int `json:"maxIterations"`
}

// DefaultConfig returns an undiscounted configuration with a tolerance
// of 1e-8
func DefaultConfig() Config {
	return Config{
		Discount:      1.0,
		Tolerance:     1e-8,
		MaxSweeps:     10000,
		MaxIterations: 1000,
	}
}

// Validate checks that the configuration is valid
func (c Config) Validate() error {
	if err := check.Discount(c.Discount); err != nil {
		return err
	}
	if err := check.Tolerance(c.Tolerance); err != nil {
		return err
	}
	if err := check.Positive("max sweeps", c.MaxSweeps); err != nil {
		return err
	}
	return check.Positive("max iterations", c.MaxIterations)
}

func (c Config) String() string {
	return fmt.Sprintf("γ = %v  |  θ = %v  |  max sweeps = %d  |  "+
		"max iterations = %d", c.Discount, c.Tolerance, c.MaxSweeps,
		c.MaxIterations)
}
