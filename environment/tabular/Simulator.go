package tabular

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/timestep"
)

// Simulator is the sampling view of an MDP. Next states are sampled
// from the rows of the MDP's transition tensor and rewards are read
// from its reward tensor, so that sampled episodes agree with the
// tensors used by model-based algorithms.
type Simulator struct {
	*MDP
	starter  environment.Starter[int]
	enders   []environment.Ender[int]
	discount float64
	seed     uint64

	// next[s][a] samples the next state after taking action a in state s
	next [][]distuv.Categorical

	current timestep.TimeStep[int]
}

// NewSimulator returns a new Simulator of m. If starter is nil,
// episodes start uniformly at random in a non-terminal state. The
// discount is reported in each timestep.
func NewSimulator(m *MDP, starter environment.Starter[int], discount float64,
	seed uint64) (*Simulator, error) {
	if err := check.Discount(discount); err != nil {
		return nil, err
	}

	// Each stream is seeded from one generator seeded with seed
	seeds := rand.New(rand.NewSource(seed))
	startSeed, nextSeed := seeds.Uint64(), seeds.Uint64()

	if starter == nil {
		nonTerminal := m.NonTerminals()
		if len(nonTerminal) == 0 {
			return nil, check.Configf("starter", nil,
				"every state is terminal and no starter was given")
		}
		var err error
		starter, err = environment.NewUniformStarter(nonTerminal, startSeed)
		if err != nil {
			return nil, fmt.Errorf("newSimulator: %w", err)
		}
	}

	// Categoricals share one source so that a single seed determines
	// every sampled transition
	source := rand.NewSource(nextSeed)
	next := make([][]distuv.Categorical, m.states)
	for s := range next {
		next[s] = make([]distuv.Categorical, m.actions)
		for a := range next[s] {
			next[s][a] = distuv.NewCategorical(m.p[s].RawRowView(a), source)
		}
	}

	sim := &Simulator{
		MDP:      m,
		starter:  starter,
		discount: discount,
		seed:     seed,
		next:     next,
	}
	sim.Reset()
	return sim, nil
}

// AddEnder adds an Ender which is consulted after every step
func (s *Simulator) AddEnder(e environment.Ender[int]) {
	s.enders = append(s.enders, e)
}

// Reset begins a new episode in a state drawn from the starter
func (s *Simulator) Reset() timestep.TimeStep[int] {
	s.current = timestep.New(timestep.First, 0, s.discount, s.starter.Start(), 0)
	return s.current
}

// ResetTo begins a new episode in the given state
func (s *Simulator) ResetTo(state int) (timestep.TimeStep[int], error) {
	if err := check.Index("state", state, s.states); err != nil {
		return timestep.TimeStep[int]{}, fmt.Errorf("resetTo: %w", err)
	}
	s.current = timestep.New(timestep.First, 0, s.discount, state, 0)
	return s.current, nil
}

// Current returns the most recent timestep
func (s *Simulator) Current() timestep.TimeStep[int] {
	return s.current
}

// Step takes one action in the environment, returning the next
// timestep and whether the episode has ended. Stepping from a terminal
// state leaves the state unchanged, pays no reward, and ends the
// episode.
func (s *Simulator) Step(action int) (timestep.TimeStep[int], bool, error) {
	if err := check.Index("action", action, s.actions); err != nil {
		return s.current, false, fmt.Errorf("step: %w", err)
	}

	state := s.current.State
	number := s.current.Number + 1
	if s.terminal[state] {
		s.current = timestep.New(timestep.Last, 0, s.discount, state, number)
		return s.current, true, nil
	}

	next := int(s.next[state][action].Rand())
	reward := s.r[state].At(action, next)

	stepType := timestep.Mid
	if s.terminal[next] {
		stepType = timestep.Last
	}
	s.current = timestep.New(stepType, reward, s.discount, next, number)

	for _, e := range s.enders {
		if s.current.Last() {
			break
		}
		e.End(&s.current)
	}

	return s.current, s.current.Last(), nil
}

// Discount returns the discount reported in each timestep
func (s *Simulator) Discount() float64 {
	return s.discount
}

func (s *Simulator) String() string {
	return fmt.Sprintf("Simulator | States: %d  |  Actions: %d  |  "+
		"Terminals: %v  |  Seed: %d", s.states, s.actions, s.terminals, s.seed)
}
