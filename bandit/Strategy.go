package bandit

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/tabular/check"
)

// Strategy chooses which arm of a bandit to pull and learns from the
// rewards it receives
type Strategy interface {
	SelectArm() int
	Update(arm int, reward float64)
}

// averages holds sample-average estimates of arm values
type averages struct {
	q []float64
	n []int
}

func newAverages(arms int) averages {
	return averages{q: make([]float64, arms), n: make([]int, arms)}
}

func (a *averages) update(arm int, reward float64) {
	a.n[arm]++
	a.q[arm] += (reward - a.q[arm]) / float64(a.n[arm])
}

// Values returns the estimated value of each arm
func (a *averages) Values() []float64 {
	q := make([]float64, len(a.q))
	copy(q, a.q)
	return q
}

// EGreedy selects a uniformly random arm with probability ε and
// otherwise the arm with the highest sample-average reward, the lowest
// such arm on ties
type EGreedy struct {
	averages
	epsilon float64
	rng     *rand.Rand
}

// NewEGreedy returns a new ε-greedy strategy for a bandit with the
// given number of arms
func NewEGreedy(arms int, epsilon float64, seed uint64) (*EGreedy, error) {
	if err := check.Positive("arms", arms); err != nil {
		return nil, err
	}
	if err := check.Epsilon(epsilon); err != nil {
		return nil, err
	}
	return &EGreedy{
		averages: newAverages(arms),
		epsilon:  epsilon,
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// SelectArm selects an arm to pull
func (e *EGreedy) SelectArm() int {
	if e.rng.Float64() < e.epsilon {
		return e.rng.Intn(len(e.q))
	}
	return floats.MaxIdx(e.q)
}

// Update updates the value estimate of arm with reward
func (e *EGreedy) Update(arm int, reward float64) {
	e.update(arm, reward)
}

// UCB1 pulls each arm once, in order, and afterwards the arm
// maximizing Q(a) + c·sqrt(ln t / N(a)), where t is the number of the
// current pull counting from 1 and N(a) the number of times arm a has
// been pulled
type UCB1 struct {
	averages
	c     float64
	pulls int
}

// NewUCB1 returns a new UCB1 strategy with exploration coefficient c
func NewUCB1(arms int, c float64) (*UCB1, error) {
	if err := check.Positive("arms", arms); err != nil {
		return nil, err
	}
	if err := check.Exploration(c); err != nil {
		return nil, err
	}
	return &UCB1{averages: newAverages(arms), c: c}, nil
}

// SelectArm selects an arm to pull
func (u *UCB1) SelectArm() int {
	for a, n := range u.n {
		if n == 0 {
			return a
		}
	}
	return floats.MaxIdx(u.Scores())
}

// Scores returns the upper confidence bound of each arm for the next
// pull. Arms which have not been pulled have an infinite bound.
func (u *UCB1) Scores() []float64 {
	t := float64(u.pulls + 1)
	scores := make([]float64, len(u.q))
	for a := range scores {
		if u.n[a] == 0 {
			scores[a] = math.Inf(1)
			continue
		}
		scores[a] = u.q[a] + u.c*math.Sqrt(math.Log(t)/float64(u.n[a]))
	}
	return scores
}

// Update updates the value estimate of arm with reward
func (u *UCB1) Update(arm int, reward float64) {
	u.pulls++
	u.update(arm, reward)
}

// Thompson implements Thompson sampling for Bernoulli bandits. Each
// arm has a Beta(1 + successes, 1 + failures) posterior over its mean
// and the arm with the highest posterior sample is pulled.
type Thompson struct {
	alpha []float64
	beta  []float64
	src   rand.Source
}

// NewThompson returns a new Thompson sampling strategy with uniform
// priors
func NewThompson(arms int, seed uint64) (*Thompson, error) {
	if err := check.Positive("arms", arms); err != nil {
		return nil, err
	}
	alpha := make([]float64, arms)
	beta := make([]float64, arms)
	floats.AddConst(1, alpha)
	floats.AddConst(1, beta)
	return &Thompson{alpha: alpha, beta: beta, src: rand.NewSource(seed)}, nil
}

// SelectArm selects an arm to pull
func (t *Thompson) SelectArm() int {
	samples := make([]float64, len(t.alpha))
	for a := range samples {
		posterior := distuv.Beta{Alpha: t.alpha[a], Beta: t.beta[a],
			Src: t.src}
		samples[a] = posterior.Rand()
	}
	return floats.MaxIdx(samples)
}

// Update updates the posterior of arm with a reward in [0, 1]
func (t *Thompson) Update(arm int, reward float64) {
	t.alpha[arm] += reward
	t.beta[arm] += 1 - reward
}

// Values returns the posterior mean of each arm
func (t *Thompson) Values() []float64 {
	means := make([]float64, len(t.alpha))
	for a := range means {
		means[a] = t.alpha[a] / (t.alpha[a] + t.beta[a])
	}
	return means
}

func (t *Thompson) String() string {
	return fmt.Sprintf("Thompson | α: %v  |  β: %v", t.alpha, t.beta)
}
