package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/config"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/logging"
	"github.com/rgehrsitz/propcalc/internal/property"
	"github.com/rgehrsitz/propcalc/internal/server"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		port       int
		configPath string
		scenario   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Long: `Serve the analysis API over HTTP.

Query parameters use the configuration field names, for example
  GET /api/analysis?cost_price=230157.34&annual_interest_rate=0.04
Parameters left out take their value from --config (and --scenario) when given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSettings()
			if err != nil {
				return err
			}
			if port > 0 {
				s.Server.Port = port
			}
			log := newLogger(s)

			var defaults domain.LoanInputs
			if configPath != "" {
				cfg, err := loadConfiguration(configPath)
				if err != nil {
					return err
				}
				if defaults, err = config.ResolveScenario(cfg, scenario); err != nil {
					return err
				}
			}

			engine := calculation.NewEngine()
			engine.SetLogger(logging.NewEngineLogger(log))

			srvCfg := server.Config{
				Port:     s.Server.Port,
				Log:      log,
				Engine:   engine,
				Defaults: defaults,
				ZPIDs:    property.NewZillowScraper(s.Providers.ZillowBaseURL, s.ProviderTimeout()),
			}
			if s.Providers.RentCastAPIKey != "" {
				lookup, closeLookup := addressLookup(s, log)
				defer closeLookup()
				srvCfg.Lookup = lookup
			} else {
				log.Info().Msg("No RentCast API key configured, /api/property is disabled")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(srvCfg).Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default: from settings)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file supplying default inputs")
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "Scenario whose inputs become the defaults")
	return cmd
}
