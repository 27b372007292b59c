package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/propcalc/internal/config"
)

// setupValues holds the form fields; port is kept as text for the input
type setupValues struct {
	rentCastKey string
	rapidAPIKey string
	backend     string
	logLevel    string
	port        string
}

func newSetupForm(v *setupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("propcalc setup").
				Description("Provider keys are optional. Leave a key empty to disable that lookup."),
			huh.NewInput().
				Title("RentCast API key").
				EchoMode(huh.EchoModePassword).
				Value(&v.rentCastKey),
			huh.NewInput().
				Title("RapidAPI key (Zestimate)").
				EchoMode(huh.EchoModePassword).
				Value(&v.rapidAPIKey),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Lookup cache").
				Options(
					huh.NewOption("SQLite file", config.CacheSQLite),
					huh.NewOption("Redis", config.CacheRedis),
					huh.NewOption("In memory", config.CacheMemory),
					huh.NewOption("None", config.CacheNone),
				).
				Value(&v.backend),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.logLevel),
			huh.NewInput().
				Title("API server port").
				Value(&v.port).
				Validate(validatePort),
		),
	)
}

func validatePort(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("enter a port between 1 and 65535")
	}
	return nil
}

// apply copies the form values onto s
func (v setupValues) apply(s *config.Settings) error {
	port, err := strconv.Atoi(v.port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", v.port, err)
	}
	s.Providers.RentCastAPIKey = v.rentCastKey
	s.Providers.RapidAPIKey = v.rapidAPIKey
	s.Cache.Backend = v.backend
	s.General.LogLevel = v.logLevel
	s.Server.Port = port
	return s.Validate()
}

func setupCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create or update the settings file interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.loadSettings()
			if err != nil {
				return err
			}

			v := setupValues{
				rentCastKey: s.Providers.RentCastAPIKey,
				rapidAPIKey: s.Providers.RapidAPIKey,
				backend:     s.Cache.Backend,
				logLevel:    s.General.LogLevel,
				port:        strconv.Itoa(s.Server.Port),
			}
			if err := newSetupForm(&v).Run(); err != nil {
				return err
			}
			if err := v.apply(&s); err != nil {
				return err
			}

			path := opts.settingsFile()
			if err := config.SaveSettingsTo(path, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Settings saved to %s\n", path)
			return nil
		},
	}
}
