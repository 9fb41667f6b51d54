package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/internal/config"
	"github.com/vango-dev/outlet/internal/demo"
	outleterrors "github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/server"
	"github.com/vango-dev/outlet/pkg/telemetry"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		dir        string
		port       int
		host       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo application",
		Long: `Serve the demo application with outlet transitions.

Configuration is read from outlet.yaml, outlet.yml or outlet.json in
the working directory (or --dir), or from the file named by --config.
Without a file, defaults are used.

Examples:
  outlet serve
  outlet serve --port=8080
  outlet serve --config=deploy/outlet.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, dir)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory to search for outlet.yaml")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

// loadConfig reads the named file, or searches dir. A missing file in dir
// falls back to defaults; a missing named file is an error.
func loadConfig(path, dir string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(dir)
	if outleterrors.IsCode(err, "E141") {
		return config.New(), nil
	}
	return cfg, err
}

func runServe(cfg *config.Config) error {
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	routes := demo.Routes()
	for _, id := range cfg.RouteIDs() {
		if !routes.HasLayout(id) {
			logger.Warn("transition configured for unknown layout", "route_id", id)
		}
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics(telemetry.WithNamespace(cfg.Metrics.Namespace))
	}

	srv, err := server.New(&server.ServerConfig{
		Address: cfg.Address(),
		Title:   cfg.Name,
		Styles:  []string{demo.Styles},
		Router:  routes,
		SessionConfig: &server.SessionConfig{
			WriteTimeout:   cfg.WriteTimeout(),
			MaxMessageSize: cfg.Server.MaxMessageSize,
			Duplicates:     cfg.DuplicatePolicy(),
			Transitions:    cfg.TransitionFor,
		},
		Metrics: metrics,
		Tracing: telemetry.NewTracing(telemetry.WithTracerName(cfg.Name)),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	printBanner()
	success("Serving on http://%s/app", cfg.Address())
	if cfg.Path() != "" {
		info("config: %s", cfg.Path())
	}
	if metrics != nil {
		info("metrics: http://%s%s", cfg.Address(), server.MetricsPath)
	}
	return srv.Run()
}
