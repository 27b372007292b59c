package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/config"
	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/logging"
	"github.com/rgehrsitz/propcalc/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	settingsPath string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "propcalc",
		Short: "Property amortization and investment calculator",
		Long: `Amortization schedules, monthly cost breakdowns and investment
projections for property purchases, with optional property data lookups.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "Path to settings file (default: "+config.SettingsPath()+")")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the log level (debug, info, warn, error)")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		scheduleCmd(),
		compareCmd(),
		sensitivityCmd(),
		affordCmd(),
		lookupCmd(opts),
		zpidsCmd(opts),
		zestimateCmd(opts),
		serveCmd(opts),
		tuiCmd(),
		setupCmd(opts),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "propcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// loadSettings reads the settings file named by --settings, or the default one
func (o *rootOptions) loadSettings() (config.Settings, error) {
	var (
		s   config.Settings
		err error
	)
	if o.settingsPath != "" {
		s, err = config.LoadSettingsFrom(o.settingsPath)
	} else {
		s, err = config.LoadSettings()
	}
	if err != nil {
		return s, err
	}
	if o.logLevel != "" {
		s.General.LogLevel = o.logLevel
	}
	return s, nil
}

func (o *rootOptions) settingsFile() string {
	if o.settingsPath != "" {
		return o.settingsPath
	}
	return config.SettingsPath()
}

// newLogger builds the process logger from settings and installs it globally
func newLogger(s config.Settings) zerolog.Logger {
	l := logging.New(logging.Config{Level: s.General.LogLevel, Pretty: s.General.PrettyLog})
	logging.SetGlobalLogger(l)
	return l
}

// newEngine returns an engine that logs through zerolog when debug is set
func newEngine(debugMode bool) *calculation.Engine {
	engine := calculation.NewEngine()
	if debugMode {
		l := logging.New(logging.Config{Level: "debug", Pretty: true})
		engine.SetLogger(logging.NewEngineLogger(l))
	}
	engine.Debug = debugMode
	return engine
}

func loadConfiguration(path string) (*domain.Configuration, error) {
	return config.NewInputParser().LoadFromFile(path)
}

// reportExtensions maps formatter names to the file extension used when a
// binary or document format is written without --output.
var reportExtensions = map[string]string{
	"html": "html",
	"pdf":  "pdf",
}

func calculateCmd() *cobra.Command {
	var (
		scenario   string
		format     string
		outputPath string
		debugMode  bool
	)

	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Analyze the scenarios in a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unsupported format %q (available: %v, aliases: %v)",
					format, output.AvailableFormatterNames(), output.AvailableFormatAliases())
			}

			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}

			engine := newEngine(debugMode)
			var analyses []*domain.Analysis
			if scenario != "" {
				a, err := engine.AnalyzeScenario(cfg, scenario)
				if err != nil {
					return err
				}
				analyses = []*domain.Analysis{a}
			} else {
				analyses, err = engine.AnalyzeConfiguration(cfg)
				if err != nil {
					return err
				}
			}

			if outputPath != "" {
				if len(analyses) > 1 {
					return fmt.Errorf("--output needs --scenario when the file defines %d scenarios", len(analyses))
				}
				if err := output.WriteFile(formatter, analyses[0], outputPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
				return nil
			}

			if ext, ok := reportExtensions[formatter.Name()]; ok {
				for _, a := range analyses {
					name, err := output.WriteFormatted(formatter, a, ext)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Report for %s written to %s\n", a.ScenarioName, name)
				}
				return nil
			}

			return writeAnalyses(cmd.OutOrStdout(), formatter, analyses)
		},
	}

	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "Scenario to analyze (default: all scenarios)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, console-lite, csv, summary-csv, json, html, pdf)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to this file")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Log intermediate figures for every analysis")
	return cmd
}

func writeAnalyses(w io.Writer, f output.Formatter, analyses []*domain.Analysis) error {
	for i, a := range analyses {
		data, err := f.Format(a)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d scenarios)\n", args[0], len(cfg.Scenarios))
			return nil
		},
	}
}

func scheduleCmd() *cobra.Command {
	var (
		scenario   string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "schedule [input-file]",
		Short: "Export the yearly amortization schedule as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}
			a, err := calculation.NewEngine().AnalyzeScenario(cfg, scenario)
			if err != nil {
				return err
			}

			if outputPath == "" {
				return output.WriteScheduleCSV(cmd.OutOrStdout(), a.Schedule)
			}
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outputPath, err)
			}
			defer f.Close()
			if err := output.WriteScheduleCSV(f, a.Schedule); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schedule written to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "Scenario to export (default: the configuration defaults)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the CSV to this file instead of stdout")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
