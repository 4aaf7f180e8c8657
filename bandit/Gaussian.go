package bandit

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/tabular/check"
)

// Bandit is a stationary K-armed bandit
type Bandit interface {
	Arms() int
	Pull(arm int) (float64, error)

	// PseudoRegret returns the expected reward lost by pulling arm
	// instead of the best arm
	PseudoRegret(arm int) float64
}

// Gaussian is a K-armed bandit whose arm a pays a reward drawn from a
// normal distribution with mean means[a] and unit variance
type Gaussian struct {
	means []float64
	arms  []distuv.Normal
	seed  uint64
}

// NewGaussian returns a new Gaussian bandit with the given arm means
func NewGaussian(means []float64, seed uint64) (*Gaussian, error) {
	if len(means) == 0 {
		return nil, check.Configf("means", means, "at least one arm is needed")
	}
	for a, m := range means {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return nil, check.Configf(fmt.Sprintf("arm %d", a), m,
				"mean must be finite")
		}
	}

	source := rand.NewSource(seed)
	arms := make([]distuv.Normal, len(means))
	for a, m := range means {
		arms[a] = distuv.Normal{Mu: m, Sigma: 1, Src: source}
	}

	mu := make([]float64, len(means))
	copy(mu, means)
	return &Gaussian{means: mu, arms: arms, seed: seed}, nil
}

// NewRandomGaussian returns a Gaussian bandit whose arm means are drawn
// from a standard normal distribution
func NewRandomGaussian(arms int, seed uint64) (*Gaussian, error) {
	if err := check.Positive("arms", arms); err != nil {
		return nil, err
	}
	seeds := rand.New(rand.NewSource(seed))
	prior := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seeds.Uint64())}

	means := make([]float64, arms)
	for a := range means {
		means[a] = prior.Rand()
	}
	return NewGaussian(means, seeds.Uint64())
}

// Arms returns the number of arms
func (g *Gaussian) Arms() int {
	return len(g.means)
}

// Pull pulls an arm and returns the reward
func (g *Gaussian) Pull(arm int) (float64, error) {
	if err := check.Index("arm", arm, len(g.arms)); err != nil {
		return 0, fmt.Errorf("pull: %w", err)
	}
	return g.arms[arm].Rand(), nil
}

// Mean returns the expected reward of an arm
func (g *Gaussian) Mean(arm int) float64 {
	check.MustIndex("arm", arm, len(g.means))
	return g.means[arm]
}

// BestArm returns the arm with the highest expected reward
func (g *Gaussian) BestArm() int {
	return floats.MaxIdx(g.means)
}

// PseudoRegret returns the expected reward lost by pulling arm instead
// of the best arm
func (g *Gaussian) PseudoRegret(arm int) float64 {
	return floats.Max(g.means) - g.Mean(arm)
}

func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian Bandit | Means: %.3f  |  Seed: %d", g.means,
		g.seed)
}

// GaussianThompson implements Thompson sampling for bandits with
// unit-variance Gaussian rewards. Each arm mean has a N(0, priorVar)
// prior, so that after n pulls with sample mean q its posterior is
// N(v·n·q, v) with v = 1 / (1/priorVar + n).
type GaussianThompson struct {
	averages
	priorVar float64
	src      rand.Source
}

// NewGaussianThompson returns a new Gaussian Thompson sampling strategy
func NewGaussianThompson(arms int, priorVar float64,
	seed uint64) (*GaussianThompson, error) {
	if err := check.Positive("arms", arms); err != nil {
		return nil, err
	}
	if priorVar <= 0 || math.IsInf(priorVar, 0) || math.IsNaN(priorVar) {
		return nil, check.Configf("prior variance", priorVar,
			"must be positive and finite")
	}
	return &GaussianThompson{
		averages: newAverages(arms),
		priorVar: priorVar,
		src:      rand.NewSource(seed),
	}, nil
}

// Posterior returns the posterior mean and variance of an arm's mean
func (g *GaussianThompson) Posterior(arm int) (mean, variance float64) {
	n := float64(g.n[arm])
	variance = 1 / (1/g.priorVar + n)
	return variance * n * g.q[arm], variance
}

// SelectArm selects an arm to pull
func (g *GaussianThompson) SelectArm() int {
	samples := make([]float64, len(g.q))
	for a := range samples {
		mean, variance := g.Posterior(a)
		posterior := distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance),
			Src: g.src}
		samples[a] = posterior.Rand()
	}
	return floats.MaxIdx(samples)
}

// Update updates the posterior of arm with reward
func (g *GaussianThompson) Update(arm int, reward float64) {
	g.update(arm, reward)
}
