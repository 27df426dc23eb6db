package cmd

import (
	"context"
	"os"

	"github.com/jkwon-dev/interviewkit/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP API backing the interviewer tool
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the interview question HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := setupLogger()

		cfg, err := httpapi.LoadConfig()
		if err != nil {
			logger.ErrorContext(ctx, "failed to load server config",
				"error", err,
			)
			os.Exit(1)
		}

		logger.InfoContext(ctx, "server starting",
			"port", cfg.Port,
			"models", cfg.ModelList(),
			"session_cap", cfg.SessionCap,
			"endpoints", []string{"/api", "/health/live", "/health/ready"},
		)

		srv, err := httpapi.NewServer(ctx, cfg, logger)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create server",
				"error", err,
			)
			os.Exit(1)
		}

		if err := srv.ListenAndServe(); err != nil {
			logger.ErrorContext(ctx, "server stopped",
				"error", err,
			)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
