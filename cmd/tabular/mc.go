package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sfneuman.com/tabular/environment/gridworld"
	"sfneuman.com/tabular/montecarlo"
	"sfneuman.com/tabular/policy"
	"sfneuman.com/tabular/table"
	"sfneuman.com/tabular/utils/matutils"
)

var (
	mcMethod string
	mcGrid   string
	mcShowQ  bool
	mcConfig = montecarlo.DefaultConfig()
)

// MC runs Monte Carlo control on a gridworld and prints the greedy
// values and policy of the learned action values, preceded by the
// action values themselves if showQ is set
func MC(method, gridPath string, cfg montecarlo.Config, showQ bool) error {
	g, err := loadGridWorld(gridPath, gridworld.MonteCarloConfig())
	if err != nil {
		return err
	}
	sim, err := g.NewSimulator(cfg.Discount, cfg.Seed)
	if err != nil {
		return err
	}

	q := table.NewMatrix(g.NumStates(), g.NumActions())
	var stats montecarlo.Stats
	switch method {
	case "es":
		stats, err = montecarlo.ExploringStarts[int](sim, g.NonTerminals(), cfg, q)
	case "onpolicy":
		stats, err = montecarlo.OnPolicy[int](sim, cfg, q)
	default:
		return fmt.Errorf("mc: unknown method %q (want es or onpolicy)", method)
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d episodes, %d steps, %d truncated\n", method,
		stats.Episodes, stats.Steps, stats.Truncated)
	fmt.Println(g)
	fmt.Println()

	if showQ {
		fmt.Println(matutils.Format(q.RawMatrix()))
		fmt.Println()
	}
	values := matutils.RowMax(q.RawMatrix())
	printValues(os.Stdout, g, values)
	fmt.Println()
	printArrows(os.Stdout, g, policy.Greedy(q.RawMatrix()).Actions())
	return nil
}

// MCCommand returns the command running Monte Carlo control
func MCCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mc",
		Short: "Monte Carlo control on a gridworld",
		RunE: func(cmd *cobra.Command, args []string) error {
			mcConfig.Seed = seed
			return MC(mcMethod, mcGrid, mcConfig, mcShowQ)
		},
	}
	cmd.Flags().StringVarP(&mcMethod, "method", "m", "es",
		"es (exploring starts) or onpolicy (ε-greedy)")
	cmd.Flags().StringVar(&mcGrid, "grid", "",
		"JSON gridworld configuration (default 4x4, +1 goal top right)")
	cmd.Flags().BoolVarP(&mcShowQ, "q", "q", false,
		"print the learned action-value table")
	cmd.Flags().Float64Var(&mcConfig.Discount, "discount", mcConfig.Discount,
		"discount factor γ")
	cmd.Flags().IntVarP(&mcConfig.Episodes, "episodes", "n", mcConfig.Episodes,
		"number of episodes")
	cmd.Flags().IntVar(&mcConfig.MaxSteps, "max-steps", mcConfig.MaxSteps,
		"steps after which episodes are truncated")
	cmd.Flags().Float64VarP(&mcConfig.Epsilon, "epsilon", "e", mcConfig.Epsilon,
		"exploration rate of on-policy control")
	cmd.Flags().BoolVar(&mcConfig.FirstVisit, "first-visit",
		mcConfig.FirstVisit, "update only the first visit of each pair")
	return cmd
}
