package montecarlo

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/tabular/check"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/policy"
	"sfneuman.com/tabular/table"
)

// Stochastic is a policy giving a distribution over actions in each
// state. *policy.EGreedy implements Stochastic.
type Stochastic[S comparable] interface {
	Probs(state S) []float64
}

// ProbsFunc adapts a function to the Stochastic interface
type ProbsFunc[S comparable] func(state S) []float64

// Probs returns f(state)
func (f ProbsFunc[S]) Probs(state S) []float64 {
	return f(state)
}

// FromPolicy adapts a tabular policy to the Stochastic interface
func FromPolicy(p policy.Policy) Stochastic[int] {
	return ProbsFunc[int](func(state int) []float64 {
		return policy.Probs(p, state)
	})
}

// Fixed returns the policy with the same action distribution in every
// state
func Fixed[S comparable](probs []float64) (Stochastic[S], error) {
	if err := check.Distribution("probs", probs); err != nil {
		return nil, err
	}
	p := make([]float64, len(probs))
	copy(p, probs)
	return ProbsFunc[S](func(S) []float64 { return p }), nil
}

// Sampler returns a function selecting actions by sampling from p
func Sampler[S comparable](p Stochastic[S], seed uint64) func(S) int {
	source := rand.NewSource(seed)
	return func(state S) int {
		return int(distuv.NewCategorical(p.Probs(state), source).Rand())
	}
}

// ImportanceRatio returns the product over the episode of
// target(a_t|s_t) / behaviour(a_t|s_t). An action which the behaviour
// policy takes with zero probability violates coverage and is an
// error.
func ImportanceRatio[S comparable](episode Episode[S], target,
	behaviour Stochastic[S]) (float64, error) {
	w := 1.0
	for t, step := range episode.Steps {
		b := behaviour.Probs(step.State)
		if err := check.Index("action", step.Action, len(b)); err != nil {
			return 0, fmt.Errorf("importanceRatio: step %d: %w", t, err)
		}
		if b[step.Action] == 0 {
			return 0, fmt.Errorf("importanceRatio: step %d: behaviour "+
				"never takes action %d in state %v", t, step.Action, step.State)
		}
		w *= target.Probs(step.State)[step.Action] / b[step.Action]
	}
	return w, nil
}

// ISEstimate holds the ordinary and weighted importance sampling
// estimates of a value computed from the same batch of episodes
type ISEstimate struct {
	Ordinary float64
	Weighted float64
	Episodes int
}

// EvaluateOffPolicy estimates the value under target of the states the
// episodes start in, using episodes generated by behaviour. The
// ordinary estimate is the mean of w·G over episodes and the weighted
// estimate is Σ w·G / Σ w, where w is the importance ratio and G the
// return of each episode. If every ratio is zero the weighted estimate
// is zero.
func EvaluateOffPolicy[S comparable](episodes []Episode[S], target,
	behaviour Stochastic[S], gamma float64) (ISEstimate, error) {
	if err := check.Discount(gamma); err != nil {
		return ISEstimate{}, fmt.Errorf("evaluateOffPolicy: %w", err)
	}
	if len(episodes) == 0 {
		return ISEstimate{}, check.Configf("episodes", 0,
			"at least one episode is needed")
	}

	var weightedReturns, weights float64
	for i, episode := range episodes {
		w, err := ImportanceRatio(episode, target, behaviour)
		if err != nil {
			return ISEstimate{}, fmt.Errorf("evaluateOffPolicy: episode %d: %w",
				i, err)
		}

		var g float64
		if episode.Len() > 0 {
			g = episode.Returns(gamma)[0]
		}
		weightedReturns += w * g
		weights += w
	}

	est := ISEstimate{
		Ordinary: weightedReturns / float64(len(episodes)),
		Episodes: len(episodes),
	}
	if weights != 0 {
		est.Weighted = weightedReturns / weights
	}
	return est, nil
}

// OffPolicy learns the action values q of the greedy policy with
// respect to q using episodes generated by behaviour, with incremental
// weighted importance sampling. Each episode is processed backwards and
// processing stops at the first action which is not greedy, since the
// importance ratio of every earlier step is then zero.
//
// The behaviour policy must take every action with non-zero
// probability.
func OffPolicy[S comparable](env environment.Environment[S],
	behaviour Stochastic[S], cfg Config, q table.ActionValues[S]) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, fmt.Errorf("offPolicy: %w", err)
	}
	selectAction := Sampler(behaviour, cfg.Seed)

	// Cumulative sums of importance ratios of each pair
	c := make(map[pair[S]]float64)

	var stats Stats
	for i := 0; i < cfg.Episodes; i++ {
		episode, err := Generate[S](env, selectAction, cfg.MaxSteps)
		if err != nil {
			return stats, fmt.Errorf("offPolicy: episode %d: %w", i, err)
		}
		stats.add(episode.Len(), episode.Truncated)

		var g float64
		w := 1.0
		for t := episode.Len() - 1; t >= 0; t-- {
			step := episode.Steps[t]
			g = step.Reward + cfg.Discount*g

			k := pair[S]{step.State, step.Action}
			c[k] += w
			old := q.At(step.State, step.Action)
			q.Add(step.State, step.Action, w/c[k]*(g-old))

			if step.Action != floats.MaxIdx(q.Row(step.State)) {
				break
			}
			b := behaviour.Probs(step.State)[step.Action]
			if b == 0 {
				return stats, fmt.Errorf("offPolicy: episode %d: behaviour "+
					"never takes action %d in state %v", i, step.Action,
					step.State)
			}
			w /= b
		}
	}

	warnTruncated("offPolicy", stats)
	return stats, nil
}
