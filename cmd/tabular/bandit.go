package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"sfneuman.com/tabular/bandit"
	"sfneuman.com/tabular/check"
)

var (
	banditProbs    []float64
	banditGaussian int
	banditSteps    int
	banditRuns     int
	banditEpsilon  float64
	banditExplore  float64
	banditPrior    float64
	banditStrategy string
)

// Bandit compares bandit strategies by their mean cumulative
// pseudo-regret over independent runs. If gaussian is positive, each
// run uses a Gaussian bandit with that many arms whose means are drawn
// from a standard normal distribution, otherwise a Bernoulli bandit
// with success probabilities probs.
func Bandit(probs []float64, gaussian, steps, runs int,
	strategies []string) error {
	if err := check.Positive("runs", runs); err != nil {
		return err
	}
	arms := len(probs)
	if gaussian > 0 {
		arms = gaussian
	}

	for _, name := range strategies {
		results := make([]bandit.Result, runs)
		seeds := rand.New(rand.NewSource(seed))
		for i := range results {
			b, err := newBandit(probs, gaussian, seeds.Uint64())
			if err != nil {
				return err
			}
			s, err := newStrategy(name, arms, gaussian > 0, seeds.Uint64())
			if err != nil {
				return err
			}
			if results[i], err = bandit.Simulate(b, s, steps); err != nil {
				return err
			}
		}

		mean, stdErr := bandit.MeanRegret(results)
		fmt.Printf("%-10s regret after %d steps: %s ± %.2f\n", name, steps,
			au.Bold(fmt.Sprintf("%.2f", mean[steps-1])), stdErr[steps-1])
	}
	return nil
}

func newBandit(probs []float64, gaussian int, seed uint64) (bandit.Bandit,
	error) {
	if gaussian > 0 {
		return bandit.NewRandomGaussian(gaussian, seed)
	}
	return bandit.NewBernoulli(probs, seed)
}

func newStrategy(name string, arms int, gaussian bool,
	seed uint64) (bandit.Strategy, error) {
	switch name {
	case "egreedy":
		return bandit.NewEGreedy(arms, banditEpsilon, seed)
	case "ucb":
		return bandit.NewUCB1(arms, banditExplore)
	case "thompson":
		if gaussian {
			return bandit.NewGaussianThompson(arms, banditPrior, seed)
		}
		return bandit.NewThompson(arms, seed)
	}
	return nil, fmt.Errorf("bandit: unknown strategy %q", name)
}

// BanditCommand returns the command comparing bandit strategies
func BanditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bandit",
		Short: "Compare ε-greedy, UCB1, and Thompson sampling on a bandit",
		RunE: func(cmd *cobra.Command, args []string) error {
			strategies := []string{banditStrategy}
			if banditStrategy == "all" {
				strategies = []string{"egreedy", "ucb", "thompson"}
			}
			return Bandit(banditProbs, banditGaussian, banditSteps,
				banditRuns, strategies)
		},
	}
	cmd.Flags().Float64SliceVar(&banditProbs, "probs",
		[]float64{0.2, 0.25, 0.3, 0.35, 0.5}, "success probability of each arm")
	cmd.Flags().IntVar(&banditGaussian, "gaussian", 0,
		"use a Gaussian bandit with this many arms instead of --probs")
	cmd.Flags().Float64Var(&banditPrior, "prior-var", 1,
		"prior variance of Gaussian Thompson sampling")
	cmd.Flags().IntVar(&banditSteps, "steps", 2000, "pulls per run")
	cmd.Flags().IntVar(&banditRuns, "runs", 100, "independent runs")
	cmd.Flags().Float64VarP(&banditEpsilon, "epsilon", "e", 0.1,
		"exploration rate of ε-greedy")
	cmd.Flags().Float64VarP(&banditExplore, "c", "c", 0.5,
		"exploration coefficient of UCB1")
	cmd.Flags().StringVarP(&banditStrategy, "strategy", "s", "all",
		"egreedy, ucb, thompson, or all")
	return cmd
}
