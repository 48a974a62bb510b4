package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/morphfst/internal/cli"
	"github.com/aretw0/morphfst/internal/presentation/tui"
	"github.com/aretw0/morphfst/internal/validator"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [KEY]",
	Short: "Summarise a stored transducer",
	Long:  `Prints the number of states, arcs and final states of the transducer stored under KEY (default: the configured fst).`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, eng, err := setup(cmd, cli.EngineOptions{})
		if err != nil {
			return err
		}
		defer eng.Close()

		key := cfg.FST
		if len(args) > 0 {
			key = args[0]
		}

		fst, err := eng.Inspect(cmd.Context(), key)
		if err != nil {
			return err
		}
		stats := fst.Stats()

		if verify, _ := cmd.Flags().GetBool("verify"); verify {
			if err := validator.ValidateAutomaton(fst); err != nil {
				return err
			}
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			err = enc.Encode(stats)
		case "yaml":
			err = yaml.NewEncoder(os.Stdout).Encode(stats)
		case "md", "markdown":
			md := tui.StatsMarkdown(key, stats)
			if tui.IsTerminal(os.Stdout) {
				if rendered, rerr := tui.NewRenderer()(md); rerr == nil {
					md = rendered
				}
			}
			_, err = fmt.Print(md)
		default:
			err = fmt.Errorf("unknown format %q (md, yaml or json)", format)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("format", "f", "md", "Output format: md, yaml or json")
	inspectCmd.Flags().Bool("verify", false, "Check that the transducer has the chain shape produced by generate")
}
