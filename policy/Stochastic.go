package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/tabular/check"
)

// Stochastic is a policy given by a row-stochastic matrix with one row
// per state and one column per action
type Stochastic struct {
	p *mat.Dense
}

// NewStochastic returns a new Stochastic policy. Each row of p must be
// a probability distribution. The matrix is copied.
func NewStochastic(p *mat.Dense) (*Stochastic, error) {
	states, _ := p.Dims()
	for s := 0; s < states; s++ {
		if err := check.Distribution(fmt.Sprintf("π[%d]", s),
			p.RawRowView(s)); err != nil {
			return nil, err
		}
	}
	return &Stochastic{mat.DenseCopyOf(p)}, nil
}

// NewUniform returns the policy taking each action with equal
// probability in every state
func NewUniform(states, actions int) *Stochastic {
	p := mat.NewDense(states, actions, nil)
	for s := 0; s < states; s++ {
		for a := 0; a < actions; a++ {
			p.Set(s, a, 1/float64(actions))
		}
	}
	return &Stochastic{p}
}

// NewRandom returns a policy whose rows are uniform random weights
// normalised to sum to 1
func NewRandom(states, actions int, seed uint64) *Stochastic {
	unit := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(seed)}

	p := mat.NewDense(states, actions, nil)
	for s := 0; s < states; s++ {
		row := p.RawRowView(s)
		for a := range row {
			row[a] = unit.Rand() + 1e-6
		}
		floats.Scale(1/floats.Sum(row), row)
	}
	return &Stochastic{p}
}

// NewEpsilonSoft returns the ε-soft policy with respect to q: in each
// state the greedy action, with ties broken by lowest index, has
// probability 1-ε+ε/|A| and every other action ε/|A|.
func NewEpsilonSoft(q *mat.Dense, epsilon float64) (*Stochastic, error) {
	if err := check.Epsilon(epsilon); err != nil {
		return nil, err
	}

	states, actions := q.Dims()
	p := mat.NewDense(states, actions, nil)
	for s := 0; s < states; s++ {
		row := p.RawRowView(s)
		epsilonSoft(row, floats.MaxIdx(q.RawRowView(s)), epsilon)
	}
	return &Stochastic{p}, nil
}

// epsilonSoft fills probs with the ε-soft distribution around greedy
func epsilonSoft(probs []float64, greedy int, epsilon float64) {
	prob := epsilon / float64(len(probs))
	for i := range probs {
		probs[i] = prob
	}
	probs[greedy] += 1 - epsilon
}

// Prob returns π(action | state)
func (s *Stochastic) Prob(state, action int) float64 {
	check.MustIndex("state", state, s.NumStates())
	check.MustIndex("action", action, s.NumActions())
	return s.p.At(state, action)
}

// Row returns a copy of the action distribution in state
func (s *Stochastic) Row(state int) []float64 {
	check.MustIndex("state", state, s.NumStates())
	row := make([]float64, s.NumActions())
	copy(row, s.p.RawRowView(state))
	return row
}

// Matrix returns a copy of the policy matrix
func (s *Stochastic) Matrix() *mat.Dense {
	return mat.DenseCopyOf(s.p)
}

// NumStates returns the number of states
func (s *Stochastic) NumStates() int {
	r, _ := s.p.Dims()
	return r
}

// NumActions returns the number of actions
func (s *Stochastic) NumActions() int {
	_, c := s.p.Dims()
	return c
}
