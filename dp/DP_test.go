package dp

import (
	"io"
	"math"
	"os"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/environment/chain"
	"sfneuman.com/tabular/environment/gridworld"
	"sfneuman.com/tabular/environment/tabular"
	"sfneuman.com/tabular/policy"
	"sfneuman.com/tabular/utils/logutils"
	"sfneuman.com/tabular/utils/matutils"
)

func TestMain(m *testing.M) {
	logutils.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newGridWorld(t testing.TB, c gridworld.Config) *gridworld.GridWorld {
	t.Helper()
	g, err := gridworld.New(c)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newRandomMDP(t testing.TB, seed uint64) *tabular.MDP {
	t.Helper()
	m, err := tabular.Random(6, 3, r1.Interval{Min: -1, Max: 1}, seed)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestEvaluateChain(t *testing.T) {
	c := chain.New()
	cfg := DefaultConfig()
	cfg.Discount = 0.9

	eval, err := Evaluate(c.Model(), policy.NewUniform(4, 1), cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.81, 0.9, 1, 0}
	for s, w := range want {
		if !scalar.EqualWithinAbs(eval.V.AtVec(s), w, 1e-12) {
			t.Errorf("V(%v) = %v, want %v", c.Label(s), eval.V.AtVec(s), w)
		}
	}
	if !eval.Converged {
		t.Errorf("evaluation of the chain should converge")
	}
}

// TestFixedPoint checks that evaluating again from converged values
// changes them by less than the tolerance
func TestFixedPoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Discount = 0.9
	cfg.Tolerance = 1e-10

	for seed := uint64(0); seed < 5; seed++ {
		m := newRandomMDP(t, seed)
		pi := policy.NewRandom(m.NumStates(), m.NumActions(), seed)

		eval, err := Evaluate(m, pi, cfg)
		if err != nil {
			t.Fatal(err)
		}

		v := mat.VecDenseCopyOf(eval.V)
		again := newModel(m).evaluate(pi, cfg, v)
		if again.Sweeps != 1 {
			t.Errorf("seed %d: re-evaluation took %d sweeps", seed, again.Sweeps)
		}
		if d := matutils.MaxAbsDiff(v, eval.V); d >= cfg.Tolerance {
			t.Errorf("seed %d: values moved by %v at the fixed point", seed, d)
		}
		if r := Residual(m, pi, eval.V, cfg.Discount); r > 1e-8 {
			t.Errorf("seed %d: Bellman residual %v", seed, r)
		}
	}
}

func TestTerminalInvariant(t *testing.T) {
	configs := []gridworld.Config{gridworld.DefaultConfig(),
		gridworld.MonteCarloConfig()}
	configs[1].Walls = []gridworld.Position{{Row: 1, Col: 1}, {Row: 2, Col: 2}}

	for i, c := range configs {
		g := newGridWorld(t, c)
		cfg := DefaultConfig()
		cfg.Discount = 0.9

		eval, err := Evaluate(g, policy.NewUniform(g.NumStates(), g.NumActions()), cfg)
		if err != nil {
			t.Fatal(err)
		}
		iter, err := PolicyIteration(g, cfg)
		if err != nil {
			t.Fatal(err)
		}
		opt, err := ValueIteration(g, cfg)
		if err != nil {
			t.Fatal(err)
		}

		for s := 0; s < g.NumStates(); s++ {
			if !g.IsTerminal(s) {
				continue
			}
			for name, v := range map[string]*mat.VecDense{"evaluate": eval.V,
				"policy iteration": iter.V, "value iteration": opt.V} {
				if v.AtVec(s) != 0 {
					t.Errorf("config %d, %s: V(%d) = %v for terminal", i, name,
						s, v.AtVec(s))
				}
			}
		}
	}
}

// assertEquivalent checks that two solutions agree on values to within
// tol and that each policy's action is optimal in every state
func assertEquivalent(t *testing.T, name string, m environment.Model,
	gamma float64, iter Iteration, opt Optimal, tol float64) {
	t.Helper()
	if d := matutils.MaxAbsDiff(iter.V, opt.V); d > tol {
		t.Errorf("%s: policy and value iteration values differ by %v", name, d)
	}

	q := QFromV(m, opt.V, gamma)
	for s := 0; s < m.NumStates(); s++ {
		row := q.RawRowView(s)
		best := floats.Max(row)
		piAction, viAction := iter.Policy.Action(s), opt.Policy.Action(s)
		if row[piAction] < best-tol || row[viAction] < best-tol {
			t.Errorf("%s: state %d: actions %d (PI) and %d (VI) are not both "+
				"optimal: %v", name, s, piAction, viAction, row)
		}
	}
}

func TestPolicyValueIterationEquivalence(t *testing.T) {
	cfg := DefaultConfig()
	g := newGridWorld(t, gridworld.DefaultConfig())

	iter, err := PolicyIteration(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	opt, err := ValueIteration(g, cfg)
	if err != nil {
		t.Fatal(err)
	}
	assertEquivalent(t, "gridworld", g, cfg.Discount, iter, opt, 1e-6)

	if !iter.Policy.Equal(opt.Policy) {
		t.Errorf("gridworld policies differ:\nPI %v\nVI %v",
			g.Arrows(iter.Policy.Actions()), g.Arrows(opt.Policy.Actions()))
	}

	cfg.Discount = 0.9
	cfg.Tolerance = 1e-10
	for seed := uint64(10); seed < 15; seed++ {
		m := newRandomMDP(t, seed)
		iter, err := PolicyIteration(m, cfg)
		if err != nil {
			t.Fatal(err)
		}
		opt, err := ValueIteration(m, cfg)
		if err != nil {
			t.Fatal(err)
		}
		assertEquivalent(t, "random MDP", m, cfg.Discount, iter, opt, 1e-6)
	}
}

// TestValueIterationMaze checks that in a generated maze the greedy
// policy follows the unique path from the start to the goal and that
// the start's value is one more than the negative path length
func TestValueIterationMaze(t *testing.T) {
	g, err := gridworld.NewMaze(4, 5, gridworld.Backtracking, 21)
	if err != nil {
		t.Fatal(err)
	}
	opt, err := ValueIteration(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !opt.Converged {
		t.Fatalf("value iteration did not converge in %d sweeps", opt.Sweeps)
	}

	start := g.Index(g.Config().Start.Row, g.Config().Start.Col)
	visited := make(map[int]bool)
	s, steps := start, 0
	for !g.IsGoal(s) {
		if visited[s] || g.IsWall(s) {
			t.Fatalf("greedy path revisits or enters %d after %d steps", s,
				steps)
		}
		visited[s] = true
		s = g.Outcomes(s, opt.Policy.Action(s))[0].Next
		steps++
	}

	if want := -float64(steps - 1); math.Abs(opt.V.AtVec(start)-want) > 1e-6 {
		t.Errorf("V(start) = %v, want %v for a path of %d steps",
			opt.V.AtVec(start), want, steps)
	}
}

// TestMonotonicity checks that with a uniform step cost charged on
// every move, optimal values increase strictly as the Manhattan
// distance to the goal decreases
func TestMonotonicity(t *testing.T) {
	c := gridworld.DefaultConfig()
	c.Rows, c.Cols = 5, 6
	c.Goals = []gridworld.Position{{Row: 1, Col: 4}}
	c.ChargeCostOnTerminalEntry = true
	g := newGridWorld(t, c)

	opt, err := ValueIteration(g, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !opt.Converged {
		t.Fatalf("value iteration did not converge")
	}

	for s := 0; s < g.NumStates(); s++ {
		if want := -float64(g.Manhattan(s)); opt.V.AtVec(s) != want {
			t.Errorf("V*(%d) = %v, want %v", s, opt.V.AtVec(s), want)
		}
		for other := 0; other < g.NumStates(); other++ {
			if g.Manhattan(s) < g.Manhattan(other) &&
				opt.V.AtVec(s) <= opt.V.AtVec(other) {
				t.Errorf("V*(%d) = %v not greater than V*(%d) = %v", s,
					opt.V.AtVec(s), other, opt.V.AtVec(other))
			}
		}
	}
}

func TestZeroProbabilityActionsSkipped(t *testing.T) {
	g := newGridWorld(t, gridworld.DefaultConfig())

	// Always moving up then right reaches the goal from every cell
	actions := make([]int, g.NumStates())
	for s := range actions {
		if row, _ := g.Cell(s); row > 0 {
			actions[s] = gridworld.Up
		} else {
			actions[s] = gridworld.Right
		}
	}
	pi, err := policy.NewDeterministic(actions, gridworld.NumActions)
	if err != nil {
		t.Fatal(err)
	}

	eval, err := Evaluate(g, pi, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for s := 0; s < g.NumStates(); s++ {
		if g.IsTerminal(s) {
			continue
		}
		// The step into the goal is free in the default gridworld
		want := -float64(g.Manhattan(s) - 1)
		if eval.V.AtVec(s) != want {
			t.Errorf("V(%d) = %v, want %v", s, eval.V.AtVec(s), want)
		}
	}
}

func TestNonConvergence(t *testing.T) {
	g := newGridWorld(t, gridworld.DefaultConfig())
	cfg := DefaultConfig()
	cfg.MaxSweeps = 1

	eval, err := Evaluate(g, policy.NewUniform(g.NumStates(), g.NumActions()), cfg)
	if err != nil {
		t.Fatalf("sweep cap should not be an error: %v", err)
	}
	if eval.Converged || eval.Sweeps != 1 {
		t.Errorf("expected unconverged single sweep, got %+v", eval)
	}

	opt, err := ValueIteration(g, cfg)
	if err != nil || opt.Converged {
		t.Errorf("expected soft non-convergence, got %v, %v", opt.Converged, err)
	}

	cfg = DefaultConfig()
	cfg.MaxIterations = 1
	iter, err := PolicyIteration(g, cfg)
	if !check.IsNonConvergence(err) {
		t.Errorf("expected ErrNonConvergence, got %v", err)
	}
	if iter.Policy == nil || iter.V == nil {
		t.Errorf("last policy and values should be returned")
	}
}

func TestConfigErrors(t *testing.T) {
	g := newGridWorld(t, gridworld.DefaultConfig())
	uniform := policy.NewUniform(g.NumStates(), g.NumActions())

	bad := []Config{
		{Discount: 1.5, Tolerance: 1e-8, MaxSweeps: 10, MaxIterations: 10},
		{Discount: 0.9, Tolerance: 0, MaxSweeps: 10, MaxIterations: 10},
		{Discount: 0.9, Tolerance: 1e-8, MaxSweeps: 0, MaxIterations: 10},
	}
	for i, cfg := range bad {
		if _, err := Evaluate(g, uniform, cfg); !check.IsConfig(err) {
			t.Errorf("case %d: Evaluate: expected ConfigError, got %v", i, err)
		}
		if _, err := PolicyIteration(g, cfg); !check.IsConfig(err) {
			t.Errorf("case %d: PolicyIteration: expected ConfigError, got %v", i, err)
		}
		if _, err := ValueIteration(g, cfg); !check.IsConfig(err) {
			t.Errorf("case %d: ValueIteration: expected ConfigError, got %v", i, err)
		}
	}

	if _, err := Evaluate(g, policy.NewUniform(3, 4), DefaultConfig()); !check.IsConfig(err) {
		t.Errorf("expected ConfigError for mismatched policy, got %v", err)
	}
}

func TestBackupAndQFromV(t *testing.T) {
	c := chain.New()
	v := mat.NewVecDense(4, []float64{0.81, 0.9, 1, 0})
	if got := Backup(c.Model(), v, 1, 0, 0.9); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("Backup = %v, want 0.9", got)
	}
	q := QFromV(c.Model(), v, 0.9)
	if q.At(3, 0) != 0 || math.Abs(q.At(2, 0)-1) > 1e-12 {
		t.Errorf("QFromV wrong:\n%v", matutils.Format(q))
	}
}

func BenchmarkEvaluate(b *testing.B) {
	c := gridworld.DefaultConfig()
	c.Rows, c.Cols = 10, 10
	g := newGridWorld(b, c)
	pi := policy.NewUniform(g.NumStates(), g.NumActions())
	cfg := DefaultConfig()
	cfg.Discount = 0.9

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(g, pi, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
