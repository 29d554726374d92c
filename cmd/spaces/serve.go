package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/LyzrCore/spaces/internal/telemetry"
	"github.com/LyzrCore/spaces/internal/web"
	"github.com/LyzrCore/spaces/pkg/renderers/html"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve every app over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := root.runtime(cmd)
			if err != nil {
				return err
			}
			defer rt.close(context.Background())

			if addr == "" {
				addr = rt.cfg.Server.Addr
			}
			renderer, err := html.New(
				html.WithAssetsPrefix(rt.cfg.Server.Assets),
				html.WithTemplatesDir(rt.cfg.Server.Templates),
			)
			if err != nil {
				return err
			}
			metrics, err := telemetry.NewMetrics(otel.GetMeterProvider())
			if err != nil {
				return err
			}

			server := web.NewServer(rt.catalog, rt.registry, renderer,
				web.WithLogger(rt.logger),
				web.WithMetrics(metrics),
				web.WithAssetsPrefix(rt.cfg.Server.Assets),
				web.WithVersion(version),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Start(ctx, addr, rt.cfg.Server.Shutdown)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	return cmd
}
