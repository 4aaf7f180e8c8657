package main

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/environment/gridworld"
)

func formatValue(x float64) string {
	if x < 0 {
		return " -" + fmt.Sprintf("%05.2f", -x)
	}
	return fmt.Sprintf(" %05.2f", x)
}

// printValues prints the state values v of g as a grid
func printValues(w io.Writer, g *gridworld.GridWorld, v mat.Vector) {
	grid := g.Grid(v)
	rows, cols := grid.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			s := g.Index(r, c)
			cell := formatValue(grid.At(r, c))
			switch {
			case g.IsGoal(s):
				fmt.Fprint(w, au.Green(cell))
			case g.IsWall(s):
				fmt.Fprint(w, au.Red(cell))
			default:
				fmt.Fprint(w, au.Blue(cell))
			}
			fmt.Fprint(w, au.White("|"))
		}
		fmt.Fprintln(w)
	}
}

// printArrows prints the deterministic policy actions of g as a grid
// of arrows
func printArrows(w io.Writer, g *gridworld.GridWorld, actions []int) {
	for _, row := range g.Arrows(actions) {
		for _, cell := range row {
			switch cell {
			case "G":
				fmt.Fprint(w, au.Green(" G "))
			case "#":
				fmt.Fprint(w, au.Red(" # "))
			default:
				fmt.Fprint(w, au.Bold(" "+cell+" "))
			}
		}
		fmt.Fprintln(w)
	}
}

// loadGridWorld builds the gridworld described by the JSON file at
// path, or by def if path is empty
func loadGridWorld(path string, def gridworld.Config) (*gridworld.GridWorld,
	error) {
	c := def
	if path != "" {
		c = gridworld.Config{}
		if err := readJSON(path, &c); err != nil {
			return nil, err
		}
	}
	return gridworld.New(c)
}
