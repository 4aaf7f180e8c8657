package policy

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/table"
)

func TestGreedyTieBreak(t *testing.T) {
	q := mat.NewDense(3, 3, []float64{
		1, 1, 0,
		0, 2, 2,
		-1, -1, -1,
	})
	p := Greedy(q)
	want := []int{0, 1, 0}
	for s, a := range want {
		if p.Action(s) != a {
			t.Errorf("state %d: greedy action %d, want %d", s, p.Action(s), a)
		}
	}

	m := p.Matrix()
	if m.At(1, 1) != 1 || m.At(1, 2) != 0 {
		t.Errorf("one-hot matrix wrong:\n%v", mat.Formatted(m))
	}
}

func TestEpsilonSoft(t *testing.T) {
	q := mat.NewDense(2, 4, []float64{
		0, 3, 1, 0,
		5, 5, 0, 0,
	})
	p, err := NewEpsilonSoft(q, 0.2)
	if err != nil {
		t.Fatal(err)
	}

	for s := 0; s < 2; s++ {
		if sum := floats.Sum(p.Row(s)); !scalar.EqualWithinAbs(sum, 1, 1e-12) {
			t.Errorf("row %d sums to %v", s, sum)
		}
	}
	if got := p.Prob(0, 1); !scalar.EqualWithinAbs(got, 0.85, 1e-12) {
		t.Errorf("greedy probability = %v, want 0.85", got)
	}
	if got := p.Prob(0, 0); !scalar.EqualWithinAbs(got, 0.05, 1e-12) {
		t.Errorf("non-greedy probability = %v, want 0.05", got)
	}
	if got := p.Prob(1, 0); !scalar.EqualWithinAbs(got, 0.85, 1e-12) {
		t.Errorf("tied greedy probability = %v, want 0.85", got)
	}

	if GreedyFrom(p).Action(0) != 1 {
		t.Errorf("GreedyFrom should recover the greedy action")
	}

	if _, err := NewEpsilonSoft(q, 1.5); !check.IsConfig(err) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestStochasticValidation(t *testing.T) {
	if _, err := NewStochastic(mat.NewDense(1, 2, []float64{0.7, 0.7})); !check.IsConfig(err) {
		t.Errorf("expected ConfigError, got %v", err)
	}
	if _, err := NewDeterministic([]int{0, 3}, 3); !check.IsIndex(err) {
		t.Errorf("expected IndexError, got %v", err)
	}

	r := NewRandom(4, 3, 1)
	for s := 0; s < 4; s++ {
		if err := check.Distribution("row", r.Row(s)); err != nil {
			t.Errorf("random policy row invalid: %v", err)
		}
	}
}

func TestSampler(t *testing.T) {
	p, err := NewStochastic(mat.NewDense(1, 2, []float64{0.2, 0.8}))
	if err != nil {
		t.Fatal(err)
	}
	sampler := NewSampler(3)

	const samples = 10000
	var ones float64
	for i := 0; i < samples; i++ {
		ones += float64(sampler.Sample(p, 0))
	}
	if freq := ones / samples; freq < 0.77 || freq > 0.83 {
		t.Errorf("frequency of action 1 = %v, want ~0.8", freq)
	}
}

func TestEGreedyFollowsTable(t *testing.T) {
	q := table.NewMapQ[string](3)
	p, err := NewEGreedy[string](q, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	if a := p.SelectAction("A"); a != 0 {
		t.Errorf("all-zero row should select action 0, got %d", a)
	}
	q.Set("A", 2, 1)
	if a := p.SelectAction("A"); a != 2 {
		t.Errorf("greedy selection should follow table updates, got %d", a)
	}

	if err := p.SetEpsilon(1); err != nil {
		t.Fatal(err)
	}
	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		counts[p.SelectAction("A")]++
	}
	for a, c := range counts {
		if c < 850 || c > 1150 {
			t.Errorf("ε = 1 should be uniform over all actions: action %d "+
				"chosen %d times", a, c)
		}
	}
}
