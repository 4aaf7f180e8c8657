package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
	"sfneuman.com/tabular/agent"
	_ "sfneuman.com/tabular/agent/esarsa"
	_ "sfneuman.com/tabular/agent/qlearning"
	"sfneuman.com/tabular/environment/gridworld"
	"sfneuman.com/tabular/experiment"
	"sfneuman.com/tabular/experiment/tracker"
	"sfneuman.com/tabular/policy"
	"sfneuman.com/tabular/utils/intutils"
	"sfneuman.com/tabular/utils/matutils"
	"sfneuman.com/tabular/utils/progressbar"
)

var (
	agentConfig   string
	agentProgress bool
	agentLast     int
)

// Agent runs the online experiment described by the JSON file at
// configPath and prints a summary of the returns and the greedy policy
// the agent learned
func Agent(configPath string, last int, progress bool) error {
	var c experiment.Config
	if err := readJSON(configPath, &c); err != nil {
		return err
	}

	returns, lengths := tracker.NewReturn(), tracker.NewEpisodeLength()
	exp, a, err := c.CreateExp(seed, returns, lengths)
	if err != nil {
		return err
	}
	if progress {
		exp.ShowProgress(progressbar.NewManualProgressBar(os.Stderr, 40,
			c.MaxSteps))
	}
	if err := exp.Run(); err != nil {
		return err
	}

	r, l := returns.Data(), lengths.Data()
	fmt.Printf("%v: %d steps, %d episodes\n", c.AgentConf.Type, exp.Steps(),
		len(r))
	if n := len(r); n > 0 {
		last = intutils.Min(last, n)
		fmt.Printf("last %d episodes: mean return %s, mean length %.2f\n", last,
			au.Bold(fmt.Sprintf("%.2f", stat.Mean(r[n-last:], nil))),
			stat.Mean(l[n-last:], nil))
	}

	valuer, ok := a.(agent.Valuer)
	if !ok {
		return nil
	}
	g, err := gridworld.New(c.EnvConf)
	if err != nil {
		return err
	}
	q := valuer.ActionValues().RawMatrix()
	fmt.Println()
	printValues(os.Stdout, g, matutils.RowMax(q))
	fmt.Println()
	printArrows(os.Stdout, g, policy.Greedy(q).Actions())
	return nil
}

// AgentCommand returns the command running an online agent experiment
func AgentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run an online agent experiment from a JSON configuration",
		Long: "Run an online agent experiment from a JSON configuration.\n" +
			"Registered agent types: " + fmt.Sprint(agent.Registered()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Agent(agentConfig, agentLast, agentProgress)
		},
	}
	cmd.Flags().StringVarP(&agentConfig, "config", "c", "",
		"JSON experiment configuration")
	cmd.Flags().BoolVarP(&agentProgress, "progress", "p", false,
		"show a progress bar on stderr")
	cmd.Flags().IntVar(&agentLast, "last", 100,
		"number of final episodes to summarise")
	cmd.MarkFlagRequired("config")
	return cmd
}
