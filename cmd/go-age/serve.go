package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/render"
	"github.com/tartampluch/go-age/internal/server"
)

func (a *app) newServeCmd() *cobra.Command {
	var settingsPath, port string
	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdShortServe,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadSettings(settingsPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed(config.FlagPort) {
				settings.Port = port
			}
			if err := settings.Validate(); err != nil {
				return err
			}
			if err := engine.ValidateReminder(settings.Sync.Reminder); err != nil {
				return err
			}
			settings.Sync.Password = a.lookupPassword(settings.Sync.Password, settings.Sync.User)

			srv, err := a.newServer(settings)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&settingsPath, config.FlagConfig, "", config.FlagDescConfig)
	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, config.FlagDescPort)
	return cmd
}

// newServer wires the HTTP server with a registry that also exposes runtime collectors.
func (a *app) newServer(settings config.Settings) (*server.Server, error) {
	reg := prometheus.NewRegistry()
	if err := registerRuntime(reg); err != nil {
		return nil, err
	}
	return server.New(settings,
		server.WithClock(a.clock),
		server.WithCatalog(render.NewCatalog()),
		server.WithLoader(&engine.Directory{Clock: a.clock, Fetcher: a.fetcher}),
		server.WithRegistry(reg),
	), nil
}

func registerRuntime(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("%s: %w", config.ErrMetricsInit, err)
		}
	}
	return nil
}
