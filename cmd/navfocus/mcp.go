package main

import (
	"log"
	"os"

	"github.com/aretw0/navfocus/internal/cli"
	"github.com/aretw0/navfocus/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Serves scenario replay as MCP tools over Standard Input/Output, so agents
can list the scenarios of --dir and replay them or inline YAML documents.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		logger, err := cli.NewLogger(opts.LogLevel)
		if err != nil {
			return err
		}

		ws, closeWs, err := cli.OpenWorkspace(cmd.Context(), opts, logger)
		if err != nil {
			return err
		}
		defer closeWs()

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("starting navfocus MCP server (stdio)")
		return mcp.NewServer(ws, logger).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
