package gridworld

import (
	"fmt"
	"math"

	"sfneuman.com/tabular/check"
)

// Position is a (row, column) cell of a gridworld. Row 0 is the top
// row.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Config configures a GridWorld. Configurations are JSON serializable.
//
// Moving into the boundary or a wall leaves the agent in place and
// costs StepReward only if ChargeWallBump is set. Entering a goal pays
// GoalReward, plus StepReward if ChargeCostOnTerminalEntry is set.
// Every other move pays StepReward.
type Config struct {
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Goals      []Position `json:"goals"`
	Walls      []Position `json:"walls,omitempty"`
	StepReward float64    `json:"stepReward"`
	GoalReward float64    `json:"goalReward"`

	ChargeCostOnTerminalEntry bool `json:"chargeCostOnTerminalEntry"`
	ChargeWallBump            bool `json:"chargeWallBump"`

	// Start is the starting cell of sampled episodes. If nil, episodes
	// start uniformly at random in a non-goal, non-wall cell.
	Start *Position `json:"start,omitempty"`
}

// DefaultConfig returns the 4x4 gridworld with a goal in the top right
// corner, a step cost of -1, and no cost on the transition entering the
// goal
func DefaultConfig() Config {
	return Config{
		Rows:                      4,
		Cols:                      4,
		Goals:                     []Position{{0, 3}},
		StepReward:                -1,
		GoalReward:                0,
		ChargeCostOnTerminalEntry: false,
		ChargeWallBump:            true,
	}
}

// MonteCarloConfig returns the 4x4 gridworld used for sampled control:
// no step cost, a +1 bonus for entering the goal in the top right
// corner, and episodes starting in the bottom left corner
func MonteCarloConfig() Config {
	return Config{
		Rows:                      4,
		Cols:                      4,
		Goals:                     []Position{{0, 3}},
		StepReward:                0,
		GoalReward:                1,
		ChargeCostOnTerminalEntry: true,
		ChargeWallBump:            true,
		Start:                     &Position{3, 0},
	}
}

// Validate checks that the configuration describes a valid gridworld
func (c Config) Validate() error {
	if err := check.Positive("rows", c.Rows); err != nil {
		return err
	}
	if err := check.Positive("cols", c.Cols); err != nil {
		return err
	}
	if len(c.Goals) == 0 {
		return check.Configf("goals", c.Goals, "at least one goal is needed")
	}
	for _, r := range []float64{c.StepReward, c.GoalReward} {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return check.Configf("reward", r, "must be finite")
		}
	}

	occupied := make(map[Position]string)
	for _, g := range c.Goals {
		if err := c.inBounds("goal", g); err != nil {
			return err
		}
		occupied[g] = "goal"
	}
	for _, w := range c.Walls {
		if err := c.inBounds("wall", w); err != nil {
			return err
		}
		if occupied[w] == "goal" {
			return check.Configf("wall", w, "cell is already a goal")
		}
		occupied[w] = "wall"
	}

	if c.Start != nil {
		if err := c.inBounds("start", *c.Start); err != nil {
			return err
		}
		if kind, ok := occupied[*c.Start]; ok {
			return check.Configf("start", *c.Start, "cell is a %s", kind)
		}
	} else if len(occupied) == c.Rows*c.Cols {
		return check.Configf("walls", c.Walls, "no free cell to start in")
	}

	return nil
}

func (c Config) inBounds(param string, p Position) error {
	if err := check.Index(param+" row", p.Row, c.Rows); err != nil {
		return err
	}
	return check.Index(param+" col", p.Col, c.Cols)
}
