package montecarlo

import (
	"fmt"

	"sfneuman.com/tabular/environment"
	"sfneuman.com/tabular/table"
	"sfneuman.com/tabular/utils/logutils"
)

// Predict estimates the state values of the policy selectAction by
// averaging sampled returns into v. With cfg.FirstVisit only the first
// occurrence of each state in an episode is updated.
func Predict[S comparable](env environment.Environment[S],
	selectAction func(S) int, cfg Config, v table.Values[S]) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, fmt.Errorf("predict: %w", err)
	}

	var stats Stats
	counts := make(map[S]int)
	for i := 0; i < cfg.Episodes; i++ {
		episode, err := Generate[S](env, selectAction, cfg.MaxSteps)
		if err != nil {
			return stats, fmt.Errorf("predict: episode %d: %w", i, err)
		}
		stats.add(episode.Len(), episode.Truncated)

		first := firstVisits(episode, func(s Step[S]) S { return s.State })
		returns := episode.Returns(cfg.Discount)
		for t, step := range episode.Steps {
			if cfg.FirstVisit && first[step.State] != t {
				continue
			}
			counts[step.State]++
			alpha := stepSize(cfg, counts[step.State])
			v.Add(step.State, alpha*(returns[t]-v.At(step.State)))
		}
	}

	warnTruncated("predict", stats)
	return stats, nil
}

// pair is a state-action pair
type pair[S comparable] struct {
	state  S
	action int
}

// firstVisits maps each key of an episode to the first step at which
// it occurs
func firstVisits[S, K comparable](episode Episode[S],
	key func(Step[S]) K) map[K]int {
	first := make(map[K]int, episode.Len())
	for t, step := range episode.Steps {
		k := key(step)
		if _, ok := first[k]; !ok {
			first[k] = t
		}
	}
	return first
}

// stepSize returns the step size of the n-th update of a value
func stepSize(cfg Config, n int) float64 {
	if cfg.StepSize != 0 {
		return cfg.StepSize
	}
	return 1 / float64(n)
}

func warnTruncated(op string, stats Stats) {
	if stats.Truncated > 0 {
		logutils.Warnf("%s: %d of %d episodes truncated at the step limit",
			op, stats.Truncated, stats.Episodes)
	}
}
