package gridworld

import (
	"fmt"

	"github.com/samuelfneumann/gomaze"
	"sfneuman.com/tabular/check"
)

// Generator names an algorithm which generates perfect mazes
type Generator string

// Available maze generators
const (
	Backtracking Generator = "backtracking"
	Wilson       Generator = "wilson"
	AldousBroder Generator = "aldousBroder"
	BinaryTree   Generator = "binaryTree"
)

func (g Generator) initer(seed int64) (gomaze.Initer, error) {
	switch g {
	case Backtracking:
		return gomaze.NewBacktracking(seed), nil
	case Wilson:
		return gomaze.NewWilson(seed), nil
	case AldousBroder:
		return gomaze.NewAldousBroder(seed), nil
	case BinaryTree:
		return gomaze.NewBinaryTree(seed), nil
	}
	return nil, check.Configf("generator", g, "unknown maze generator")
}

// MazeConfig returns the Config of a gridworld laid out as a perfect
// maze of rows x cols rooms, generated by gen from seed. Rooms sit on
// the even cells of a (2rows-1) x (2cols-1) gridworld, and the cells
// between two rooms are walls unless the maze links the rooms. Episodes
// start in the top left room and the goal is the bottom right room.
//
// Rewards are those of DefaultConfig, so that the value of a room
// under the optimal policy is one more than the negative length of its
// path to the goal.
func MazeConfig(rows, cols int, gen Generator, seed uint64) (Config, error) {
	if err := check.Positive("maze rows", rows); err != nil {
		return Config{}, err
	}
	if err := check.Positive("maze cols", cols); err != nil {
		return Config{}, err
	}
	if rows*cols < 2 {
		return Config{}, check.Configf("maze", fmt.Sprintf("%dx%d", rows, cols),
			"at least two rooms are needed")
	}
	init, err := gen.initer(int64(seed))
	if err != nil {
		return Config{}, fmt.Errorf("mazeConfig: %w", err)
	}

	// Negative positions place the start top left and the goal bottom
	// right
	maze, err := gomaze.NewMaze(rows, cols, -1, -1, -1, -1, init, false)
	if err != nil {
		return Config{}, fmt.Errorf("mazeConfig: %w", err)
	}

	c := DefaultConfig()
	c.Rows, c.Cols = 2*rows-1, 2*cols-1
	c.Walls = nil

	for _, room := range maze.Cells() {
		row, col := 2*room.Row(), 2*room.Col()
		if room.Col() < cols-1 && !room.CanMoveEast() {
			c.Walls = append(c.Walls, Position{row, col + 1})
		}
		if room.Row() < rows-1 {
			if !room.CanMoveSouth() {
				c.Walls = append(c.Walls, Position{row + 1, col})
			}
			if room.Col() < cols-1 {
				c.Walls = append(c.Walls, Position{row + 1, col + 1})
			}
		}
	}

	goalRow, goalCol := maze.Goal()
	c.Goals = []Position{{2 * goalRow, 2 * goalCol}}
	startRow, startCol := maze.Start()
	c.Start = &Position{2 * startRow, 2 * startCol}

	return c, c.Validate()
}

// NewMaze returns a gridworld laid out as a maze, as described by
// MazeConfig
func NewMaze(rows, cols int, gen Generator, seed uint64) (*GridWorld, error) {
	c, err := MazeConfig(rows, cols, gen, seed)
	if err != nil {
		return nil, fmt.Errorf("newMaze: %w", err)
	}
	return New(c)
}
