package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rohanthewiz/hostmux"
	"github.com/rohanthewiz/hostmux/config"
)

func routesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the routes a config file declares",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML config file")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runRoutes(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Named handlers are resolved by the embedding program, not the CLI.
	// Stub them so the routes can be registered and listed.
	stubs := map[string]hostmux.Handler{}
	noop := func(ctx hostmux.Context) error { return nil }

	for _, route := range cfg.Routes {
		if route.Handler != "" {
			stubs[route.Handler] = noop
		}
	}

	s := hostmux.NewServer()
	if err = config.Apply(s, cfg, stubs); err != nil {
		return err
	}

	for _, route := range s.Routes() {
		fmt.Printf("%-25s %-7s %s\n", route.Host, route.Method, route.Path)
	}

	return nil
}
