package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/build-flow-labs/rely/internal/rely/config"
	"github.com/build-flow-labs/rely/internal/rely/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring API and web form",
		Long: `Starts an HTTP server exposing:

  GET /score_repo?repo_url=URL   JSON score for one repository
  GET /                          HTML form (owner and name)
  GET /health                    liveness check
  GET /status                    request counters`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := a.newService(ctx)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Config{
				Addr:            a.cfg.Addr,
				Version:         a.version,
				UpstreamTimeout: a.cfg.Timeout,
			}, svc, a.logger)
			if err != nil {
				return err
			}
			return srv.Start(ctx)
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	_ = a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
