package policy

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/table"
	"sfneuman.com/tabular/utils/floatutils"
)

// Sampler samples actions from tabular policies
type Sampler struct {
	source rand.Source
}

// NewSampler returns a new Sampler
func NewSampler(seed uint64) *Sampler {
	return &Sampler{rand.NewSource(seed)}
}

// Sample samples an action from p in state
func (s *Sampler) Sample(p Policy, state int) int {
	dist := distuv.NewCategorical(Probs(p, state), s.source)
	return int(dist.Rand())
}

// Func returns a function selecting actions from p
func (s *Sampler) Func(p Policy) func(int) int {
	return func(state int) int {
		return s.Sample(p, state)
	}
}

// EGreedy selects actions ε-greedily with respect to a live
// action-value table. With probability ε an action is chosen uniformly
// from all actions, the greedy action included. Otherwise the greedy
// action is taken, with ties broken by lowest action index. Since the
// table is read on every call, the policy follows updates to it.
type EGreedy[K comparable] struct {
	q       table.ActionValues[K]
	epsilon float64
	seed    rand.Source
}

// NewEGreedy returns a new EGreedy policy over q
func NewEGreedy[K comparable](q table.ActionValues[K], epsilon float64,
	seed uint64) (*EGreedy[K], error) {
	if err := check.Epsilon(epsilon); err != nil {
		return nil, err
	}
	return &EGreedy[K]{q, epsilon, rand.NewSource(seed)}, nil
}

// Probs returns the action probabilities in state
func (p *EGreedy[K]) Probs(state K) []float64 {
	probs := make([]float64, p.q.NumActions())
	epsilonSoft(probs, floatutils.ArgMax(p.q.Row(state)), p.epsilon)
	return probs
}

// SelectAction selects an action in state
func (p *EGreedy[K]) SelectAction(state K) int {
	// Construct a categorical distribution over actions using action
	// probabilities
	dist := distuv.NewCategorical(p.Probs(state), p.seed)
	return int(dist.Rand())
}

// Greedy returns the greedy action in state
func (p *EGreedy[K]) Greedy(state K) int {
	return floatutils.ArgMax(p.q.Row(state))
}

// Epsilon returns the exploration rate
func (p *EGreedy[K]) Epsilon() float64 {
	return p.epsilon
}

// SetEpsilon sets the exploration rate
func (p *EGreedy[K]) SetEpsilon(epsilon float64) error {
	if err := check.Epsilon(epsilon); err != nil {
		return err
	}
	p.epsilon = epsilon
	return nil
}
