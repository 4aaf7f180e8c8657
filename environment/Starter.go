package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// UniformStarter returns starting states sampled uniformly at random
// from a fixed set of states
type UniformStarter[S comparable] struct {
	states []S
	seed   uint64
	rand   distuv.Categorical
}

// NewUniformStarter returns a new UniformStarter sampling from states
func NewUniformStarter[S comparable](states []S,
	seed uint64) (*UniformStarter[S], error) {
	if len(states) == 0 {
		return nil, fmt.Errorf("newUniformStarter: no states to start from")
	}
	source := rand.NewSource(seed)

	// Create the weights for the uniform categorical distribution
	weights := make([]float64, len(states))
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	s := make([]S, len(states))
	copy(s, states)

	return &UniformStarter[S]{s, seed, distuv.NewCategorical(weights, source)}, nil
}

// Start returns a starting state
func (u *UniformStarter[S]) Start() S {
	return u.states[int(u.rand.Rand())]
}

// SingleStart always starts in the same state
type SingleStart[S comparable] struct {
	State S
}

// Start returns the starting state
func (s SingleStart[S]) Start() S {
	return s.State
}
