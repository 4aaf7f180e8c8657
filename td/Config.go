package td

import (
	"fmt"

	"sfneuman.com/tabular/check"
)

// Ordering determines when the updates of an episode are applied
type Ordering string

const (
	// Online applies each update as soon as its target is available
	Online Ordering = "online"

	// BackwardSweep stores the whole episode and then applies its
	// updates from the last visited state to the first, so that the
	// updated value of a later state is used in the target of an earlier
	// one
	BackwardSweep Ordering = "backward"
)

// Config configures TD prediction
type Config struct {
	Discount float64  `json:"discount"`
	StepSize float64  `json:"stepSize"`
	Episodes int      `json:"episodes"`
	MaxSteps int      `json:"maxSteps"`
	Ordering Ordering `json:"ordering"`

	// N is the number of rewards in the targets of NStep. TD0 ignores
	// it.
	N int `json:"n"`
}

// DefaultConfig returns a configuration for online TD(0) prediction
// with γ = 0.9 and α = 0.1
func DefaultConfig() Config {
	return Config{
		Discount: 0.9,
		StepSize: 0.1,
		Episodes: 3000,
		MaxSteps: 1000,
		Ordering: Online,
		N:        1,
	}
}

// Validate checks that the configuration is valid. The number of steps
// N is checked by NStep.
func (c Config) Validate() error {
	if err := check.Discount(c.Discount); err != nil {
		return err
	}
	if err := check.StepSize(c.StepSize); err != nil {
		return err
	}
	if err := check.Positive("episodes", c.Episodes); err != nil {
		return err
	}
	if err := check.Positive("max steps", c.MaxSteps); err != nil {
		return err
	}
	switch c.Ordering {
	case Online, BackwardSweep:
		return nil
	default:
		return check.Configf("ordering", c.Ordering, "must be %q or %q",
			Online, BackwardSweep)
	}
}

func (c Config) String() string {
	return fmt.Sprintf("td.Config{γ=%v, α=%v, episodes=%v, ordering=%v, n=%v}",
		c.Discount, c.StepSize, c.Episodes, c.Ordering, c.N)
}

// Stats summarises the episodes used by a prediction run
type Stats struct {
	Episodes  int
	Truncated int
	Steps     int
}
