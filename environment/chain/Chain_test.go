package chain

import (
	"math"
	"testing"

	"sfneuman.com/tabular/check"
)

func TestChainEpisode(t *testing.T) {
	c := New()

	step := c.Reset()
	if step.State != "A" {
		t.Fatalf("chain should start in A, got %v", step.State)
	}

	wantStates := []string{"B", "C", Terminal}
	wantRewards := []float64{0, 0, 1}
	for i := range wantStates {
		var done bool
		var err error
		step, done, err = c.Step(0)
		if err != nil {
			t.Fatal(err)
		}
		if step.State != wantStates[i] || step.Reward != wantRewards[i] {
			t.Errorf("step %d: got (%v, %v), want (%v, %v)", i, step.State,
				step.Reward, wantStates[i], wantRewards[i])
		}
		if done != (i == len(wantStates)-1) {
			t.Errorf("step %d: done = %v", i, done)
		}
	}

	m := c.Model()
	if m.NumStates() != 4 || !m.IsTerminal(3) {
		t.Errorf("chain model has wrong shape or terminal")
	}
}

func TestLoop(t *testing.T) {
	if _, err := NewLoop(1, 1); !check.IsConfig(err) {
		t.Errorf("p = 1 should be rejected, got %v", err)
	}
	if _, err := NewLoop(-0.2, 1); !check.IsConfig(err) {
		t.Errorf("p < 0 should be rejected, got %v", err)
	}

	c, err := NewLoop(0.5, 3)
	if err != nil {
		t.Fatal(err)
	}

	// The number of steps spent in A is geometric with mean 1/(1-p)
	const episodes = 5000
	var inA int
	for i := 0; i < episodes; i++ {
		step := c.Reset()
		for {
			if step.State == "A" {
				inA++
			}
			var done bool
			step, done, err = c.Step(0)
			if err != nil {
				t.Fatal(err)
			}
			if done {
				break
			}
		}
	}
	if mean := float64(inA) / episodes; math.Abs(mean-2) > 0.1 {
		t.Errorf("mean steps in A = %v, want ~2", mean)
	}
}

func TestOneStep(t *testing.T) {
	c, err := NewOneStep([]float64{0.3, 0.7}, 9)
	if err != nil {
		t.Fatal(err)
	}
	if c.NumActions() != 2 {
		t.Fatalf("NumActions = %d, want 2", c.NumActions())
	}

	const trials = 10000
	var wins float64
	for i := 0; i < trials; i++ {
		c.Reset()
		step, done, err := c.Step(1)
		if err != nil {
			t.Fatal(err)
		}
		if !done {
			t.Fatalf("one-step episode did not end")
		}
		wins += step.Reward
	}
	if freq := wins / trials; math.Abs(freq-0.7) > 0.03 {
		t.Errorf("win frequency of action 1 = %v, want ~0.7", freq)
	}

	if _, err := NewOneStep([]float64{1.2}, 1); !check.IsConfig(err) {
		t.Errorf("expected ConfigError for probability > 1, got %v", err)
	}
}
