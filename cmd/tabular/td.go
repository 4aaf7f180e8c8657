package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"sfneuman.com/tabular/environment/chain"
	"sfneuman.com/tabular/table"
	"sfneuman.com/tabular/td"
)

var (
	tdOrdering string
	tdConfig   = td.DefaultConfig()
)

// TD runs n-step TD prediction on the A -> B -> C -> T chain and prints
// the estimates next to the true values
func TD(cfg td.Config) error {
	c := chain.New()
	v := table.NewMap[string]()
	stats, err := td.NStep[string](c, func(string) int { return 0 }, cfg, v)
	if err != nil {
		return err
	}

	fmt.Printf("%d-step TD, %v ordering: %d episodes\n", cfg.N, cfg.Ordering,
		stats.Episodes)
	gamma := cfg.Discount
	for i, s := range []string{"A", "B", "C"} {
		truth := math.Pow(gamma, float64(2-i))
		fmt.Printf("V(%s) = %s  true %s\n", s, au.Blue(formatValue(v.At(s))),
			au.Green(formatValue(truth)))
	}
	return nil
}

// TDCommand returns the command running TD prediction on the chain
func TDCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "td",
		Short: "TD(0) and n-step TD prediction on the A -> B -> C chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			tdConfig.Ordering = td.Ordering(tdOrdering)
			return TD(tdConfig)
		},
	}
	cmd.Flags().IntVarP(&tdConfig.N, "n", "n", tdConfig.N,
		"number of rewards in each target")
	cmd.Flags().StringVar(&tdOrdering, "ordering", string(tdConfig.Ordering),
		"online or backward")
	cmd.Flags().Float64Var(&tdConfig.Discount, "discount", tdConfig.Discount,
		"discount factor γ")
	cmd.Flags().Float64VarP(&tdConfig.StepSize, "alpha", "a",
		tdConfig.StepSize, "step size α")
	cmd.Flags().IntVar(&tdConfig.Episodes, "episodes", tdConfig.Episodes,
		"number of episodes")
	return cmd
}
