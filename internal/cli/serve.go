package cli

import (
	"github.com/spf13/cobra"

	"github.com/ByLCY/folio/internal/pipeline"
	"github.com/ByLCY/folio/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compose and render over HTTP",
		Long: `Start an HTTP server exposing:

  GET  /healthz  liveness probe
  GET  /kinds    registered element kinds
  POST /compose  {"layout"|"dsl", "record"} → composed entries
  POST /render   {"layout"|"dsl", "record"} → application/pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			srv := server.New(pipeline.NewRunner(cfg, logger), logger)
			return srv.Serve(ctx, cfg.Serve.Addr)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	return cmd
}
