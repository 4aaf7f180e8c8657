// Package bandit implements multi-armed Bernoulli bandits and the
// ε-greedy, UCB1, and Thompson sampling strategies for playing them.
package bandit

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/tabular/check"
)

// Bernoulli is a K-armed bandit whose arm a pays 1 with probability
// probs[a] and 0 otherwise
type Bernoulli struct {
	probs []float64
	arms  []distuv.Bernoulli
	seed  uint64
}

// NewBernoulli returns a new Bernoulli bandit. Every probability must
// be in [0, 1].
func NewBernoulli(probs []float64, seed uint64) (*Bernoulli, error) {
	if len(probs) == 0 {
		return nil, check.Configf("probs", probs, "at least one arm is needed")
	}

	source := rand.NewSource(seed)
	arms := make([]distuv.Bernoulli, len(probs))
	for a, p := range probs {
		if err := check.Distribution(fmt.Sprintf("arm %d", a),
			[]float64{p, 1 - p}); err != nil {
			return nil, err
		}
		arms[a] = distuv.Bernoulli{P: p, Src: source}
	}

	p := make([]float64, len(probs))
	copy(p, probs)
	return &Bernoulli{probs: p, arms: arms, seed: seed}, nil
}

// Arms returns the number of arms
func (b *Bernoulli) Arms() int {
	return len(b.probs)
}

// Pull pulls an arm and returns the reward
func (b *Bernoulli) Pull(arm int) (float64, error) {
	if err := check.Index("arm", arm, len(b.arms)); err != nil {
		return 0, fmt.Errorf("pull: %w", err)
	}
	return b.arms[arm].Rand(), nil
}

// Mean returns the expected reward of an arm
func (b *Bernoulli) Mean(arm int) float64 {
	check.MustIndex("arm", arm, len(b.probs))
	return b.probs[arm]
}

// BestArm returns the arm with the highest expected reward, the lowest
// such arm on ties
func (b *Bernoulli) BestArm() int {
	return floats.MaxIdx(b.probs)
}

// OptimalMean returns the highest expected reward of any arm
func (b *Bernoulli) OptimalMean() float64 {
	return floats.Max(b.probs)
}

// PseudoRegret returns the expected reward lost by pulling arm instead
// of the best arm
func (b *Bernoulli) PseudoRegret(arm int) float64 {
	return b.OptimalMean() - b.Mean(arm)
}

func (b *Bernoulli) String() string {
	return fmt.Sprintf("Bernoulli Bandit | Arms: %v  |  Seed: %d", b.probs,
		b.seed)
}
