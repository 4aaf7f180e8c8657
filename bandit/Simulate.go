package bandit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"sfneuman.com/tabular/check"
)

// Result records one run of a strategy on a bandit
type Result struct {
	Rewards []float64
	Choices []int

	// Pulls counts how often each arm was pulled
	Pulls []int

	// Regret is the cumulative pseudo-regret after each pull
	Regret []float64
}

// Simulate plays strategy on env for the given number of steps
func Simulate(env Bandit, strategy Strategy, steps int) (Result, error) {
	if err := check.Positive("steps", steps); err != nil {
		return Result{}, fmt.Errorf("simulate: %w", err)
	}

	r := Result{
		Rewards: make([]float64, steps),
		Choices: make([]int, steps),
		Pulls:   make([]int, env.Arms()),
		Regret:  make([]float64, steps),
	}

	var regret float64
	for t := 0; t < steps; t++ {
		arm := strategy.SelectArm()
		reward, err := env.Pull(arm)
		if err != nil {
			return r, fmt.Errorf("simulate: step %d: %w", t, err)
		}
		strategy.Update(arm, reward)

		regret += env.PseudoRegret(arm)
		r.Rewards[t] = reward
		r.Choices[t] = arm
		r.Pulls[arm]++
		r.Regret[t] = regret
	}
	return r, nil
}

// MeanRegret returns the mean cumulative pseudo-regret over runs at
// each step along with its standard error
func MeanRegret(runs []Result) (mean, stdErr []float64) {
	if len(runs) == 0 {
		return nil, nil
	}

	steps := len(runs[0].Regret)
	mean = make([]float64, steps)
	stdErr = make([]float64, steps)
	column := make([]float64, len(runs))
	for t := 0; t < steps; t++ {
		for i, run := range runs {
			column[i] = run.Regret[t]
		}
		m, std := stat.MeanStdDev(column, nil)
		mean[t] = m
		if len(runs) > 1 {
			stdErr[t] = stat.StdErr(std, float64(len(runs)))
		} else {
			stdErr[t] = math.NaN()
		}
	}
	return mean, stdErr
}
