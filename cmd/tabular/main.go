// Command tabular runs the tabular reinforcement learning algorithms of
// this module on small gridworlds, chains, and bandits and prints what
// they learn.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"sfneuman.com/tabular/utils/logutils"
)

var (
	seed    uint64
	noColor bool
	quiet   bool

	// au colours terminal output. It is set before any subcommand runs.
	au aurora.Aurora
)

func main() {
	log.SetFlags(0)

	root := &cobra.Command{
		Use:   "tabular",
		Short: "Tabular dynamic programming, Monte Carlo, and TD learning",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			au = aurora.NewAurora(!noColor)
			if quiet {
				logutils.SetOutput(io.Discard)
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable coloured output")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress warnings")

	root.AddCommand(
		DPCommand(),
		MCCommand(),
		TDCommand(),
		BanditCommand(),
		AgentCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// readJSON decodes the JSON file at path into v
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("readJSON: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("readJSON: %v: %w", path, err)
	}
	return nil
}
