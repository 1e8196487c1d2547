package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/internal/config"
	"github.com/vango-dev/fileroutes/internal/dev"
	"github.com/vango-dev/fileroutes/pkg/routetree"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr    string
		watch   bool
		noWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Serve the compiled routes for development",
		Long: `Serve the compiled routes and recompile them when route files change.

Every route answers with a description of the match. The server also exposes:

  /__routes      the current manifest, or the build errors
  /__routes/ws   WebSocket stream of tree and error updates
  /metrics       Prometheus metrics (unless metrics.enabled is false)

Examples:
  fileroutes serve
  fileroutes serve --addr=:8080 --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(cmd.Context(), cmd, flags, args)
			if err != nil {
				return err
			}
			cfg := p.config

			var (
				reg     *prometheus.Registry
				metrics *build.Metrics
			)
			if cfg.Metrics.Enabled {
				reg = prometheus.NewRegistry()
				reg.MustRegister(
					collectors.NewGoCollector(),
					collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
				)
				metrics = build.NewMetrics(reg, cfg.Metrics.Namespace)
			}

			builder := build.New(p.provider, routetree.NewCompiler(cfg.RouteConventions()), build.Options{
				Logger:  p.logger,
				Metrics: metrics,
			})

			opts := dev.ServerOptions{
				Config:   cfg,
				Builder:  builder,
				Addr:     addr,
				Registry: reg,
				Logger:   p.logger,
			}
			if cmd.Flags().Changed("watch") || cmd.Flags().Changed("no-watch") {
				w := watch && !noWatch
				opts.Watch = &w
			}

			out := cmd.OutOrStdout()
			listen := addr
			if listen == "" {
				listen = cfg.ServeAddress()
			}
			success(out, "Serving routes from %s", sourceLabel(p))
			info(out, "http://%s/__routes", listen)

			return dev.NewServer(opts).Start(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from fileroutes.json)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile when route files change")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable watching even if enabled in fileroutes.json")

	return cmd
}

func sourceLabel(p *project) string {
	if p.config.Source.Type == config.SourceS3 {
		return "s3://" + p.config.Source.Bucket + "/" + p.config.Source.Prefix
	}
	return p.config.RoutesPath()
}
