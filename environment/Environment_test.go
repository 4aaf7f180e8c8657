package environment

import (
	"testing"

	"sfneuman.com/tabular/timestep"
)

func TestUniformStarterCoversStates(t *testing.T) {
	states := []string{"A", "B", "C"}
	starter, err := NewUniformStarter(states, 11)
	if err != nil {
		t.Fatal(err)
	}

	counts := make(map[string]int)
	const samples = 3000
	for i := 0; i < samples; i++ {
		counts[starter.Start()]++
	}

	for _, s := range states {
		frac := float64(counts[s]) / samples
		if frac < 0.28 || frac > 0.39 {
			t.Errorf("state %v sampled with frequency %v, want ~1/3", s, frac)
		}
	}
	if len(counts) != len(states) {
		t.Errorf("sampled unknown states: %v", counts)
	}
}

func TestUniformStarterEmpty(t *testing.T) {
	if _, err := NewUniformStarter([]int{}, 1); err == nil {
		t.Errorf("expected error for empty state set")
	}
}

func TestStepLimit(t *testing.T) {
	ender := NewStepLimit[int](3)

	step := timestep.New(timestep.Mid, 0, 1, 5, 2)
	if ender.End(&step) {
		t.Errorf("ended before step limit")
	}

	step = timestep.New(timestep.Mid, 0, 1, 5, 3)
	if !ender.End(&step) {
		t.Fatalf("did not end at step limit")
	}
	if !step.Last() || step.Terminal() || step.End() != timestep.Timeout {
		t.Errorf("step limit should mark a timeout: %v", step)
	}
}

func TestFunctionEnder(t *testing.T) {
	ender := NewFunctionEnder(func(s string) bool { return s == "T" },
		timestep.TerminalStateReached)

	step := timestep.New(timestep.Mid, 1, 1, "T", 1)
	if !ender.End(&step) || !step.Terminal() {
		t.Errorf("function ender should end on T: %v", step)
	}

	step = timestep.New(timestep.Mid, 1, 1, "A", 1)
	if ender.End(&step) {
		t.Errorf("function ender should not end on A")
	}
}
