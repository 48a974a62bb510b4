package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aretw0/morphfst"
	"github.com/aretw0/morphfst/internal/adapters/mcp"
	"github.com/aretw0/morphfst/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts morphfst as an MCP Server so that AI agents can realize word
forms as a tool.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		if transport != "stdio" && transport != "sse" {
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}

		cfg, eng, err := setup(cmd, cli.EngineOptions{Cache: true})
		if err != nil {
			return err
		}
		defer eng.Close()
		logger := eng.Logger()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		if _, err := eng.EnsureBuilt(ctx, cfg.Rules, cfg.FST); err != nil {
			return err
		}

		srv := mcp.NewServer(eng.Bind(cfg.FST), strings.TrimSpace(morphfst.Version), logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting morphfst MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
		case "sse":
			logger.Info("Starting morphfst MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil && err != http.ErrServerClosed {
				return fmt.Errorf("MCP server execution failed: %w", err)
			}
			logger.Info("MCP Server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
