package main

import (
	"fmt"
	"io"

	"github.com/aretw0/morphfst/internal/cli"
	"github.com/aretw0/morphfst/pkg/realizer"
	"github.com/spf13/cobra"
)

var realizeCmd = &cobra.Command{
	Use:   "realize QUERY",
	Short: "Realize a WORD+TAG+... query",
	Long: `Realizes a query against the stored transducer. If the transducer does
not exist yet it is built from the rules file and saved first.

Prints "Output: <form>" on success and "Error: <reason>" on stderr otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRealize(cmd, args[0])
	},
}

func runRealize(cmd *cobra.Command, query string) error {
	cfg, eng, err := setup(cmd, cli.EngineOptions{})
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()

	out := cmd.OutOrStdout()
	exists, err := eng.Store().Exists(ctx, cfg.FST)
	if err != nil {
		return err
	}
	if !exists {
		fmt.Fprintln(out, "FST file not found. Generating from input file...")
	}
	built, err := eng.EnsureBuilt(ctx, cfg.Rules, cfg.FST)
	if err != nil {
		return err
	}
	if built {
		fmt.Fprintf(out, "FST saved to %s\n", cfg.FST)
	}

	tr, err := eng.Trace(ctx, cfg.FST, query)
	if trace, _ := cmd.Flags().GetBool("trace"); trace && tr != nil {
		printTrace(cmd.ErrOrStderr(), tr)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Output: %s\n", tr.Output)
	return nil
}

func printTrace(w io.Writer, tr *realizer.Trace) {
	for i, step := range tr.Steps {
		fmt.Fprintf(w, "%3d  %d --%c--> %d\n", i, step.From, step.Symbol, step.To)
	}
	fmt.Fprintf(w, "status: %s\n", tr.Status)
}

func init() {
	rootCmd.AddCommand(realizeCmd)
	realizeCmd.Flags().Bool("trace", false, "Print every consumed symbol")
}
