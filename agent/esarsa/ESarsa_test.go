package esarsa

import (
	"math"
	"testing"

	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment/gridworld"
	"sfneuman.com/tabular/timestep"
)

func newAgent(t *testing.T, config Config) *ESarsa {
	t.Helper()
	g, err := gridworld.New(gridworld.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	sim, err := g.NewSimulator(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	e, err := New(sim, config, 0)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestStep(t *testing.T) {
	e := newAgent(t, Config{BehaviourE: 0.1, TargetE: 0.2, LearningRate: 0.5})
	q := e.ActionValues()
	q.Set(6, 0, 2)
	q.Set(6, 1, 4)

	if err := e.ObserveFirst(timestep.New(timestep.First, 0, 0.9, 5, 0)); err != nil {
		t.Fatal(err)
	}
	if err := e.Observe(1, timestep.New(timestep.Mid, 1, 0.9, 6, 1)); err != nil {
		t.Fatal(err)
	}
	if err := e.Step(); err != nil {
		t.Fatal(err)
	}

	// Target probabilities in state 6 are [0.05 0.85 0.05 0.05]
	expected := 0.05*2 + 0.85*4
	want := 0.5 * (1 + 0.9*expected)
	if math.Abs(q.At(5, 1)-want) > 1e-12 {
		t.Errorf("Q(5, 1) = %v, want %v", q.At(5, 1), want)
	}

	// Transitions into terminal states do not bootstrap
	q.Set(3, 0, 100)
	if err := e.Observe(0, timestep.New(timestep.Last, -1, 0.9, 3, 2)); err != nil {
		t.Fatal(err)
	}
	if err := e.Step(); err != nil {
		t.Fatal(err)
	}
	if want := 2 + 0.5*(-1-2); q.At(6, 0) != want {
		t.Errorf("Q(6, 0) = %v, want %v", q.At(6, 0), want)
	}
}

func TestStepBeforeObserve(t *testing.T) {
	e := newAgent(t, Config{BehaviourE: 0.1, LearningRate: 0.5})
	if err := e.ObserveFirst(timestep.New(timestep.First, 0, 1, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := e.Step(); err == nil {
		t.Errorf("expected error stepping without a transition")
	}
	if err := e.Observe(4, timestep.New(timestep.Mid, 0, 1, 1, 1)); !check.IsIndex(err) {
		t.Errorf("expected IndexError for action 4, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	bad := []Config{
		{BehaviourE: -0.1, LearningRate: 0.1},
		{BehaviourE: 0.1, TargetE: 1.1, LearningRate: 0.1},
		{BehaviourE: 0.1, LearningRate: 0},
	}
	for i, c := range bad {
		if err := c.Validate(); !check.IsConfig(err) {
			t.Errorf("case %d: expected ConfigError, got %v", i, err)
		}
	}

	var c Config
	if !c.ValidAgent(newAgent(t, Config{LearningRate: 1})) {
		t.Errorf("ESarsa should be a valid agent for Config")
	}
}
