package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/domrender/internal/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start an HTTP server that renders posted vnode documents.

Endpoints:
  POST /render    render the request body (JSON, YAML or MessagePack)
  GET  /healthz   liveness check
  GET  /metrics   Prometheus metrics (when metrics.enabled)

Examples:
  domrender serve
  domrender serve --addr 127.0.0.1:9090
  domrender serve --config domrender.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger, err := newLogger(cmd.ErrOrStderr(), override(flags.logLevel, cfg.Log.Level), override(flags.logFormat, cfg.Log.Format))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, server.WithLogger(logger)).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to domrender.yaml or domrender.json")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")

	return cmd
}
