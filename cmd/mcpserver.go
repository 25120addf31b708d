package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"testctl/internal/mcpserver"
	"testctl/pkg/logging"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve testctl over the Model Context Protocol (stdio)",
		Long: `Run an MCP server on stdin/stdout that exposes testctl to AI assistants.

Tools:
  testctl_list_checks  - List registered checks
  testctl_run_checks   - Run checks and return the summary as JSON
  testctl_clear_cache  - Drop every cached result

Configure it in your assistant's MCP settings with the command "testctl mcp-server".
Logs go to stderr so they never corrupt the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: runMCPServer,
	}
}

func runMCPServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	o, err := newOrchestrator(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := mcpserver.NewServer(o, rootCmd.Version)
	logging.Info("CLI", "Starting testctl MCP server (stdio transport)")
	return server.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}

// contextOf returns the command context, or Background when the command was
// not started through Execute.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
