package main

import (
	"fmt"

	"github.com/aretw0/morphfst/internal/cli"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate INPUT OUTPUT",
	Short: "Build a transducer from a rules file and save it",
	Long: `Compiles every line of INPUT and saves the transducer under OUTPUT,
replacing any previous one. With the file store OUTPUT is a path.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]

		_, eng, err := setup(cmd, cli.EngineOptions{})
		if err != nil {
			return err
		}
		defer eng.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		stats, err := eng.Generate(ctx, input, output)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "FST saved to %s\n", output)
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "states=%d arcs=%d finals=%d\n", stats.States, stats.Arcs, stats.Finals)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolP("verbose", "v", false, "Print the size of the transducer")
}
