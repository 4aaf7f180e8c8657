package gridworld

import (
	"testing"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/check"
)

func TestDefaultTransitions(t *testing.T) {
	g, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if g.NumStates() != 16 || g.NumActions() != NumActions {
		t.Fatalf("unexpected dims %d, %d", g.NumStates(), g.NumActions())
	}

	goal := g.Index(0, 3)
	if !g.IsTerminal(goal) || !g.IsGoal(goal) {
		t.Errorf("goal should be terminal")
	}

	tests := []struct {
		name         string
		row, col, a  int
		nextRow      int
		nextCol      int
		wantedReward float64
	}{
		{"move right", 1, 1, Right, 1, 2, -1},
		{"bump top", 0, 0, Up, 0, 0, -1},
		{"bump left", 2, 0, Left, 2, 0, -1},
		{"enter goal", 0, 2, Right, 0, 3, 0},
		{"enter goal from below", 1, 3, Up, 0, 3, 0},
		{"move down", 0, 0, Down, 1, 0, -1},
	}

	for _, test := range tests {
		s := g.Index(test.row, test.col)
		next := g.Index(test.nextRow, test.nextCol)
		if p := g.Prob(s, test.a, next); p != 1 {
			t.Errorf("%s: P = %v, want 1", test.name, p)
		}
		if r := g.Reward(s, test.a, next); r != test.wantedReward {
			t.Errorf("%s: R = %v, want %v", test.name, r, test.wantedReward)
		}
	}
}

func TestTerminalEntryAndWallBumpFlags(t *testing.T) {
	c := DefaultConfig()
	c.ChargeCostOnTerminalEntry = true
	c.ChargeWallBump = false
	c.GoalReward = 5
	g, err := New(c)
	if err != nil {
		t.Fatal(err)
	}

	s, goal := g.Index(0, 2), g.Index(0, 3)
	if r := g.Reward(s, Right, goal); r != 4 {
		t.Errorf("charged goal entry reward = %v, want 4", r)
	}

	corner := g.Index(3, 0)
	if r := g.Reward(corner, Down, corner); r != 0 {
		t.Errorf("uncharged wall bump reward = %v, want 0", r)
	}
}

func TestWalls(t *testing.T) {
	c := DefaultConfig()
	c.Walls = []Position{{1, 1}}
	g, err := New(c)
	if err != nil {
		t.Fatal(err)
	}

	s, wall := g.Index(1, 0), g.Index(1, 1)
	if g.Prob(s, Right, s) != 1 {
		t.Errorf("moving into a wall should stay in place")
	}
	if !g.IsWall(wall) || !g.IsTerminal(wall) {
		t.Errorf("walls should be absorbing")
	}

	arrows := g.Arrows(make([]int, g.NumStates()))
	if arrows[1][1] != "#" || arrows[0][3] != "G" || arrows[0][0] != "→" {
		t.Errorf("unexpected arrows %v", arrows)
	}
}

func TestConfigValidation(t *testing.T) {
	bad := []Config{
		{Rows: 0, Cols: 4, Goals: []Position{{0, 0}}},
		{Rows: 4, Cols: 4},
		{Rows: 4, Cols: 4, Goals: []Position{{4, 0}}},
		{Rows: 2, Cols: 2, Goals: []Position{{0, 0}}, Walls: []Position{{0, 0}}},
		{Rows: 2, Cols: 2, Goals: []Position{{0, 0}}, Start: &Position{0, 0}},
	}
	for i, c := range bad {
		if _, err := New(c); err == nil {
			t.Errorf("case %d: expected error", i)
		} else if !check.IsConfig(err) && !check.IsIndex(err) {
			t.Errorf("case %d: unexpected error type %v", i, err)
		}
	}
}

func TestGridAndManhattan(t *testing.T) {
	g, err := New(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	values := mat.NewVecDense(16, nil)
	for s := 0; s < 16; s++ {
		values.SetVec(s, float64(s))
	}
	grid := g.Grid(values)
	if grid.At(2, 1) != float64(g.Index(2, 1)) {
		t.Errorf("grid is not row-major")
	}

	if d := g.Manhattan(g.Index(3, 0)); d != 6 {
		t.Errorf("Manhattan from bottom left = %v, want 6", d)
	}
}

func TestMonteCarloSimulator(t *testing.T) {
	g, err := New(MonteCarloConfig())
	if err != nil {
		t.Fatal(err)
	}
	sim, err := g.NewSimulator(0.9, 1)
	if err != nil {
		t.Fatal(err)
	}

	step := sim.Reset()
	if step.State != g.Index(3, 0) {
		t.Errorf("episodes should start bottom left, got %v", step.State)
	}

	// Up three times then right three times reaches the goal
	actions := []int{Up, Up, Up, Right, Right, Right}
	var done bool
	for _, a := range actions {
		step, done, err = sim.Step(a)
		if err != nil {
			t.Fatal(err)
		}
	}
	if !done || step.Reward != 1 || step.State != g.Index(0, 3) {
		t.Errorf("expected to reach goal with reward 1: %v", step)
	}
}
