package cli

import (
	"github.com/spf13/cobra"

	"github.com/yashsidana/code-clarified/internal/server"
	"github.com/yashsidana/code-clarified/pkg/pipeline"
	"github.com/yashsidana/code-clarified/pkg/summarize"
)

// newServeCmd creates the serve command for running the HTTP API.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long:  `Serve starts the backend for the web frontend. The server exposes POST /api/v1/analyze and GET /healthz and shuts down gracefully on interrupt.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			c, err := cfg.Cache.OpenCache(ctx)
			if err != nil {
				return err
			}

			// The server runs without a summarizer when no key is
			// configured; analyze responses simply omit the summary.
			var summarizer pipeline.Summarizer
			if client, err := summarize.NewClient(cfg.Summarizer.SummarizeConfig()); err == nil {
				summarizer = client
			} else {
				logger.Warn("summarizer disabled", "err", err)
			}

			runner := pipeline.NewRunner(c, summarizer, logger)
			defer runner.Close()

			return server.New(cfg.Server, runner, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
