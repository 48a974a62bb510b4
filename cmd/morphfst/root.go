package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/morphfst/internal/cli"
	"github.com/aretw0/morphfst/internal/config"
	"github.com/aretw0/morphfst/internal/presentation/tui"
	"github.com/aretw0/morphfst/pkg/observability"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "morphfst [QUERY]",
	Short: "morphfst compiles morphology rules into a transducer and realizes word forms",
	Long: `morphfst turns a rule file of lemmas and tagged surface forms into a
finite-state transducer, stores it, and answers WORD+TAG+... queries by
walking it.

Called with a single QUERY it behaves like "morphfst realize QUERY": the
transducer is built from the rules file on first use.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runRealize(cmd, args[0])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Commands return their errors so that deferred cleanup runs before the exit.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (YAML or JSON, default ./"+config.DefaultPath+" if present)")
	pf.String("rules", "", "Rules file to build from when the transducer is missing")
	pf.String("fst", "", "Key (file name for the file store) of the transducer")
	pf.String("store", "", "Store driver: file, memory or redis")
	pf.String("store-dir", "", "Base directory of the file store")
	pf.String("redis-addr", "", "Redis address for the redis store")
	pf.Bool("cache", false, "Cache loaded transducers in memory")
	pf.Int("max-states", 0, "Refuse to build transducers larger than this (0 = unbounded)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.Bool("debug", false, "Enable debug logging of build and query events")

	rootCmd.Flags().Bool("trace", false, "Print every consumed symbol")
}

// loadConfig reads the config file and environment, then applies the flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("rules") {
		cfg.Rules, _ = flags.GetString("rules")
	}
	if flags.Changed("fst") {
		cfg.FST, _ = flags.GetString("fst")
	}
	if flags.Changed("store") {
		cfg.StoreDriver, _ = flags.GetString("store")
	}
	if flags.Changed("store-dir") {
		cfg.StoreDir, _ = flags.GetString("store-dir")
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("cache") {
		cfg.Cache, _ = flags.GetBool("cache")
	}
	if flags.Changed("max-states") {
		cfg.MaxStates, _ = flags.GetInt("max-states")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	return cfg, cfg.Validate()
}

// setup loads the config and builds the logger and engine for a command.
func setup(cmd *cobra.Command, opts cli.EngineOptions) (*config.Config, *cli.Engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")

	logger, err := cli.CreateLogger(os.Stderr, cfg, debug)
	if err != nil {
		return nil, nil, err
	}
	opts.Config = cfg
	opts.Logger = logger
	if debug {
		opts.Hooks = observability.Merge(opts.Hooks, cli.DebugHooks(logger))
	}

	eng, err := cli.CreateEngine(opts)
	if err != nil {
		return nil, nil, err
	}
	return cfg, eng, nil
}

// printError writes "Error: <err>", coloured when w is a terminal.
func printError(w io.Writer, err error) {
	msg := fmt.Sprintf("Error: %v", err)
	if f, ok := w.(*os.File); ok && tui.IsTerminal(f) {
		msg = tui.ErrorText(msg).String()
	}
	fmt.Fprintln(w, msg)
}
