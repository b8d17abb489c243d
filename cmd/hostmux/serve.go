package main

import (
	"github.com/spf13/cobra"

	"github.com/rohanthewiz/hostmux"
	"github.com/rohanthewiz/hostmux/config"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		address    string
		logLevel   string
		logFormat  string
		metrics    bool
		routesPage bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the server",
		Long: `Start the server with the routes declared in the config file.
Flags override the corresponding config file settings.

Examples:
  hostmux serve --config routes.yaml
  hostmux serve --config routes.yaml --addr :9000 --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, address, logLevel, logFormat, metrics, routesPage, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")
	cmd.Flags().StringVarP(&address, "addr", "a", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: json or console")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics on /metrics")
	cmd.Flags().BoolVar(&routesPage, "routes-page", false, "Expose the registered routes on /routes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	return cmd
}

func runServe(configPath, address, logLevel, logFormat string, metrics, routesPage, verbose bool) error {
	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags win over file settings
	if address != "" {
		cfg.Server.Address = address
	}
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.Server.LogFormat = logFormat
	}
	if metrics {
		cfg.Server.Metrics = true
	}
	if verbose {
		cfg.Server.Verbose = true
	}

	logger, err := hostmux.NewLogger(cfg.Server.LogLevel, cfg.Server.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s := hostmux.NewServer(hostmux.ServerOptions{
		Address:              cfg.Server.Address,
		Verbose:              cfg.Server.Verbose,
		Logger:               logger,
		EnableMetrics:        cfg.Server.Metrics,
		SaveMatchedRoutePath: cfg.Server.SaveMatchedRoutePath,
	})

	s.Use(hostmux.RequestID)
	s.Use(hostmux.AccessLog(logger))

	// The standalone binary serves declared routes only, so there are no
	// named handlers to resolve against.
	if err = config.Apply(s, cfg, nil); err != nil {
		return err
	}

	if routesPage {
		s.Get("/routes", s.RoutesHandler())
	}

	return s.Run()
}
