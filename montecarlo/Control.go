package montecarlo

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/floats"
	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/policy"
	"sfneuman.com/tabular/table"
)

// ExploringStarts learns the action values q of an optimal policy with
// Monte Carlo control using exploring starts. Each episode begins in a
// state drawn uniformly from starts with a uniformly random first
// action, after which actions are greedy with respect to the live table
// q, with ties broken by lowest action index.
//
// The greedy policy with respect to q is the learned policy.
func ExploringStarts[S comparable](env environment.Restarter[S], starts []S,
	cfg Config, q table.ActionValues[S]) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, fmt.Errorf("exploringStarts: %w", err)
	}
	seeds := rand.New(rand.NewSource(cfg.Seed))
	starter, err := environment.NewUniformStarter(starts, seeds.Uint64())
	if err != nil {
		return Stats{}, fmt.Errorf("exploringStarts: %w", err)
	}
	rng := rand.New(rand.NewSource(seeds.Uint64()))
	greedy := func(state S) int {
		return floats.MaxIdx(q.Row(state))
	}

	var stats Stats
	counts := make(map[pair[S]]int)
	for i := 0; i < cfg.Episodes; i++ {
		start, err := env.ResetTo(starter.Start())
		if err != nil {
			return stats, fmt.Errorf("exploringStarts: episode %d: %w", i, err)
		}

		// The first action is uniform, every later action greedy
		firstAction := rng.Intn(q.NumActions())
		first := true
		selectAction := func(state S) int {
			if first {
				first = false
				return firstAction
			}
			return greedy(state)
		}

		episode, err := Rollout[S](env, start, selectAction, cfg.MaxSteps)
		if err != nil {
			return stats, fmt.Errorf("exploringStarts: episode %d: %w", i, err)
		}
		stats.add(episode.Len(), episode.Truncated)
		updateQ(episode, cfg, q, counts)
	}

	warnTruncated("exploringStarts", stats)
	return stats, nil
}

// OnPolicy learns the action values q of the best ε-soft policy with
// on-policy Monte Carlo control. Every action is selected ε-greedily
// with respect to the live table q.
//
// The ε-greedy policy with respect to q is the learned policy.
func OnPolicy[S comparable](env environment.Environment[S], cfg Config,
	q table.ActionValues[S]) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, fmt.Errorf("onPolicy: %w", err)
	}
	behaviour, err := policy.NewEGreedy[S](q, cfg.Epsilon, cfg.Seed)
	if err != nil {
		return Stats{}, fmt.Errorf("onPolicy: %w", err)
	}

	var stats Stats
	counts := make(map[pair[S]]int)
	for i := 0; i < cfg.Episodes; i++ {
		episode, err := Generate[S](env, behaviour.SelectAction, cfg.MaxSteps)
		if err != nil {
			return stats, fmt.Errorf("onPolicy: episode %d: %w", i, err)
		}
		stats.add(episode.Len(), episode.Truncated)
		updateQ(episode, cfg, q, counts)
	}

	warnTruncated("onPolicy", stats)
	return stats, nil
}

// updateQ moves the action values of the pairs visited in episode
// towards their returns
func updateQ[S comparable](episode Episode[S], cfg Config,
	q table.ActionValues[S], counts map[pair[S]]int) {
	key := func(s Step[S]) pair[S] { return pair[S]{s.State, s.Action} }
	first := firstVisits(episode, key)

	var g float64
	for t := episode.Len() - 1; t >= 0; t-- {
		step := episode.Steps[t]
		g = step.Reward + cfg.Discount*g

		k := key(step)
		if cfg.FirstVisit && first[k] != t {
			continue
		}
		counts[k]++
		alpha := stepSize(cfg, counts[k])
		q.Add(step.State, step.Action, alpha*(g-q.At(step.State, step.Action)))
	}
}
