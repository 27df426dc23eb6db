package cmd

import (
	"context"
	"os"

	"github.com/jkwon-dev/interviewkit/internal/mcpserver"
	"github.com/spf13/cobra"
)

// mcpServerCmd exposes question generation as an MCP tool for headless clients
var mcpServerCmd = &cobra.Command{
	Use:   "mcp-server",
	Short: "Start an MCP server exposing question generation",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := setupLogger()

		cfg, err := mcpserver.LoadConfig()
		if err != nil {
			logger.ErrorContext(ctx, "failed to load MCP config",
				"error", err,
			)
			os.Exit(1)
		}

		logger.InfoContext(ctx, "mcp server starting",
			"port", cfg.Port,
			"models", cfg.ModelList(),
			"endpoints", []string{"/mcp", "/health/live"},
		)

		srv, err := mcpserver.NewServer(ctx, cfg, logger)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create MCP server",
				"error", err,
			)
			os.Exit(1)
		}

		if err := srv.ListenAndServe(); err != nil {
			logger.ErrorContext(ctx, "failed to start MCP server",
				"error", err,
			)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpServerCmd)
}
