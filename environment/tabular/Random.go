package tabular

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distuv"
	"sfneuman.com/tabular/check"
)

// Random returns a random continuing MDP with no terminal states.
// Transition rows are uniform random weights normalised to sum to 1 and
// rewards are drawn uniformly from the rewards interval.
func Random(states, actions int, rewards r1.Interval,
	seed uint64) (*MDP, error) {
	if err := check.Positive("states", states); err != nil {
		return nil, err
	}
	if err := check.Positive("actions", actions); err != nil {
		return nil, err
	}
	if rewards.Min > rewards.Max {
		return nil, check.Configf("rewards", rewards, "min exceeds max")
	}

	source := rand.NewSource(seed)
	unit := distuv.Uniform{Min: 0, Max: 1, Src: source}
	reward := distuv.Uniform{Min: rewards.Min, Max: rewards.Max, Src: source}

	p := make([]*mat.Dense, states)
	r := make([]*mat.Dense, states)
	for s := 0; s < states; s++ {
		p[s] = mat.NewDense(actions, states, nil)
		r[s] = mat.NewDense(actions, states, nil)

		for a := 0; a < actions; a++ {
			row := p[s].RawRowView(a)
			var sum float64
			for next := range row {
				// Keep every transition possible so rows never sum to 0
				row[next] = unit.Rand() + 1e-6
				sum += row[next]
			}
			for next := range row {
				row[next] /= sum
				if rewards.Min == rewards.Max {
					r[s].Set(a, next, rewards.Min)
				} else {
					r[s].Set(a, next, reward.Rand())
				}
			}
		}
	}

	return New(p, r, nil)
}
