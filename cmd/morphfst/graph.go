package main

import (
	"fmt"

	"github.com/aretw0/morphfst/internal/cli"
	"github.com/aretw0/morphfst/internal/presentation/graph"
	"github.com/aretw0/morphfst/pkg/realizer"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the transducer as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph LR) of the stored transducer.
With --query the states visited by that query are highlighted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, eng, err := setup(cmd, cli.EngineOptions{})
		if err != nil {
			return err
		}
		defer eng.Close()

		fst, err := eng.Inspect(cmd.Context(), cfg.FST)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if query, _ := cmd.Flags().GetString("query"); query != "" {
			// The overlay is drawn for failed walks too.
			tr, _ := realizer.Walk(fst, query)
			overlay = graph.OverlayFromTrace(tr)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(fst, overlay, limit))
		return err
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("query", "", "Highlight the walk of this query")
	graphCmd.Flags().Int("limit", 200, "Render at most this many states (0 = all)")
}
