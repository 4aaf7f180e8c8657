package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"sfneuman.com/tabular/dp"
	"sfneuman.com/tabular/environment/gridworld"
	"sfneuman.com/tabular/policy"
)

var (
	dpAlgorithm string
	dpGrid      string
	dpMazeRows  int
	dpMazeCols  int
	dpMazeGen   string
	dpConfig    = dp.DefaultConfig()
)

// DP runs policy or value iteration on a gridworld and prints the
// optimal values and policy
func DP(algorithm string, g *gridworld.GridWorld, cfg dp.Config) error {
	var (
		v  *mat.VecDense
		pi *policy.Deterministic
	)
	switch algorithm {
	case "pi":
		it, err := dp.PolicyIteration(g, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("policy iteration: %d improvements, %d sweeps\n",
			it.Iterations, it.Sweeps)
		v, pi = it.V, it.Policy

	case "vi":
		opt, err := dp.ValueIteration(g, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("value iteration: %d sweeps, final Δ %.3g\n", opt.Sweeps,
			opt.Delta)
		v, pi = opt.V, opt.Policy

	default:
		return fmt.Errorf("dp: unknown algorithm %q (want pi or vi)", algorithm)
	}

	fmt.Println(g)
	fmt.Println()
	printValues(os.Stdout, g, v)
	fmt.Println()
	printArrows(os.Stdout, g, pi.Actions())
	return nil
}

// dpGridWorld returns the generated maze if maze rows were given and
// the gridworld configured by --grid otherwise
func dpGridWorld() (*gridworld.GridWorld, error) {
	if dpMazeRows <= 0 {
		return loadGridWorld(dpGrid, gridworld.DefaultConfig())
	}
	cols := dpMazeCols
	if cols <= 0 {
		cols = dpMazeRows
	}
	return gridworld.NewMaze(dpMazeRows, cols, gridworld.Generator(dpMazeGen),
		seed)
}

// DPCommand returns the command running policy or value iteration
func DPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dp",
		Short: "Policy or value iteration on a gridworld",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := dpGridWorld()
			if err != nil {
				return err
			}
			return DP(dpAlgorithm, g, dpConfig)
		},
	}
	cmd.Flags().StringVarP(&dpAlgorithm, "algorithm", "a", "vi",
		"pi (policy iteration) or vi (value iteration)")
	cmd.Flags().StringVar(&dpGrid, "grid", "",
		"JSON gridworld configuration (default 4x4, goal top right)")
	cmd.Flags().IntVar(&dpMazeRows, "maze-rows", 0,
		"generate a maze with this many rows of rooms instead of --grid")
	cmd.Flags().IntVar(&dpMazeCols, "maze-cols", 0,
		"columns of rooms of a generated maze (default --maze-rows)")
	cmd.Flags().StringVar(&dpMazeGen, "maze-gen", string(gridworld.Backtracking),
		"maze generator: backtracking, wilson, aldousBroder, or binaryTree")
	cmd.Flags().Float64Var(&dpConfig.Discount, "discount", dpConfig.Discount,
		"discount factor γ")
	cmd.Flags().Float64Var(&dpConfig.Tolerance, "tolerance",
		dpConfig.Tolerance, "convergence threshold θ")
	cmd.Flags().IntVar(&dpConfig.MaxSweeps, "max-sweeps", dpConfig.MaxSweeps,
		"maximum sweeps per evaluation")
	return cmd
}
