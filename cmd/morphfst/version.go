package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/morphfst"
	"github.com/aretw0/morphfst/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of morphfst",
	Run: func(cmd *cobra.Command, args []string) {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout, morphfst.Version)
			return
		}
		fmt.Printf("morphfst version %s\n", strings.TrimSpace(morphfst.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
