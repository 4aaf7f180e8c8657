// Package gridworld implements deterministic 2D gridworld environments
// as finite MDPs
package gridworld

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/environment/tabular"
	"sfneuman.com/tabular/utils/matutils"
)

// Actions available in a gridworld
const (
	Right int = iota
	Left
	Down
	Up
)

// NumActions is the number of actions in a gridworld
const NumActions = 4

// deltas holds the (row, col) change of each action
var deltas = [NumActions][2]int{
	Right: {0, 1},
	Left:  {0, -1},
	Down:  {1, 0},
	Up:    {-1, 0},
}

var arrows = [NumActions]string{
	Right: "→",
	Left:  "←",
	Down:  "↓",
	Up:    "↑",
}

// GridWorld is a deterministic gridworld. States are the cells of the
// grid, indexed in row-major order so that cell (row, col) is state
// row*cols + col.
//
// Goals are terminal. Walls are unreachable; they are represented as
// absorbing zero-reward states so that value tables keep the shape of
// the grid.
type GridWorld struct {
	*tabular.MDP
	config Config
	goal   []bool
	wall   []bool
}

// New returns a new GridWorld
func New(c Config) (*GridWorld, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	states := c.Rows * c.Cols
	g := &GridWorld{
		config: c,
		goal:   make([]bool, states),
		wall:   make([]bool, states),
	}

	var terminals []int
	for _, p := range c.Goals {
		s := p.Row*c.Cols + p.Col
		if !g.goal[s] {
			terminals = append(terminals, s)
		}
		g.goal[s] = true
	}
	for _, p := range c.Walls {
		s := p.Row*c.Cols + p.Col
		if !g.wall[s] {
			terminals = append(terminals, s)
		}
		g.wall[s] = true
	}

	p := make([]*mat.Dense, states)
	r := make([]*mat.Dense, states)
	for s := 0; s < states; s++ {
		p[s] = mat.NewDense(NumActions, states, nil)
		r[s] = mat.NewDense(NumActions, states, nil)

		for a := 0; a < NumActions; a++ {
			if g.goal[s] || g.wall[s] {
				p[s].Set(a, s, 1)
				continue
			}
			next, reward := g.move(s, a)
			p[s].Set(a, next, 1)
			r[s].Set(a, next, reward)
		}
	}

	m, err := tabular.New(p, r, terminals)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}
	g.MDP = m
	return g, nil
}

// move returns the next state and reward of taking action a in the
// non-terminal state s
func (g *GridWorld) move(s, a int) (int, float64) {
	row, col := g.Cell(s)
	nextRow, nextCol := row+deltas[a][0], col+deltas[a][1]

	if nextRow < 0 || nextRow >= g.config.Rows || nextCol < 0 ||
		nextCol >= g.config.Cols || g.wall[g.Index(nextRow, nextCol)] {
		if g.config.ChargeWallBump {
			return s, g.config.StepReward
		}
		return s, 0
	}

	next := g.Index(nextRow, nextCol)
	if g.goal[next] {
		if g.config.ChargeCostOnTerminalEntry {
			return next, g.config.GoalReward + g.config.StepReward
		}
		return next, g.config.GoalReward
	}
	return next, g.config.StepReward
}

// Dims gets the rows and columns of the GridWorld
func (g *GridWorld) Dims() (r, c int) {
	return g.config.Rows, g.config.Cols
}

// Config returns the configuration of the GridWorld
func (g *GridWorld) Config() Config {
	return g.config
}

// Index returns the state index of cell (row, col)
func (g *GridWorld) Index(row, col int) int {
	return row*g.config.Cols + col
}

// Cell returns the (row, col) cell of a state
func (g *GridWorld) Cell(s int) (row, col int) {
	return s / g.config.Cols, s % g.config.Cols
}

// IsGoal returns whether a state is a goal
func (g *GridWorld) IsGoal(s int) bool {
	return g.goal[s]
}

// IsWall returns whether a state is a wall
func (g *GridWorld) IsWall(s int) bool {
	return g.wall[s]
}

// Manhattan returns the Manhattan distance from s to the nearest goal
func (g *GridWorld) Manhattan(s int) int {
	row, col := g.Cell(s)
	best := -1
	for _, p := range g.config.Goals {
		d := abs(p.Row-row) + abs(p.Col-col)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// Grid reshapes a value table indexed by state into a rows x cols
// matrix for display
func (g *GridWorld) Grid(values mat.Vector) *mat.Dense {
	return matutils.Reshape(values, g.config.Rows, g.config.Cols)
}

// Arrows converts a deterministic policy, given as one action per
// state, into a grid of arrows. Goals are shown as "G" and walls as
// "#".
func (g *GridWorld) Arrows(actions []int) [][]string {
	grid := make([][]string, g.config.Rows)
	for row := range grid {
		grid[row] = make([]string, g.config.Cols)
		for col := range grid[row] {
			s := g.Index(row, col)
			switch {
			case g.goal[s]:
				grid[row][col] = "G"
			case g.wall[s]:
				grid[row][col] = "#"
			default:
				grid[row][col] = arrows[actions[s]]
			}
		}
	}
	return grid
}

// NewSimulator returns a Simulator of the GridWorld which starts
// episodes in the configured start cell, or uniformly at random in a
// free cell if none is configured
func (g *GridWorld) NewSimulator(discount float64,
	seed uint64) (*tabular.Simulator, error) {
	var starter environment.Starter[int]
	if g.config.Start != nil {
		starter = environment.SingleStart[int]{
			State: g.Index(g.config.Start.Row, g.config.Start.Col),
		}
	}
	return tabular.NewSimulator(g.MDP, starter, discount, seed)
}

func (g *GridWorld) String() string {
	var b strings.Builder
	for row := 0; row < g.config.Rows; row++ {
		for col := 0; col < g.config.Cols; col++ {
			s := g.Index(row, col)
			switch {
			case g.goal[s]:
				b.WriteString("G")
			case g.wall[s]:
				b.WriteString("#")
			case g.config.Start != nil && *g.config.Start == (Position{Row: row, Col: col}):
				b.WriteString("S")
			default:
				b.WriteString(".")
			}
		}
		if row < g.config.Rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
