package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/propcalc/internal/compare"
	"github.com/rgehrsitz/propcalc/internal/transform"
)

func compareCmd() *cobra.Command {
	var (
		base          string
		templates     []string
		transforms    []string
		format        string
		listTemplates bool
		debugMode     bool
	)

	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare financing scenarios against a base scenario",
		Long: `Compare financing scenarios against a base scenario.

With no --template or --transform flags every other scenario in the file is
compared with the base. Otherwise the base is varied by built-in templates
and ad hoc transforms.

Examples:
  propcalc compare house.yaml --base base
  propcalc compare house.yaml --base base --template fifteen_year,rate_down_half
  propcalc compare house.yaml --transform adjust_rate:delta=-0.0025 --format json
  propcalc compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if listTemplates {
				registry := transform.CreateBuiltInTemplates()
				fmt.Fprintln(out, "Available templates:")
				for _, name := range registry.List() {
					tmpl, _ := registry.Get(name)
					fmt.Fprintf(out, "  %-22s %s\n", name, tmpl.Description)
				}
				fmt.Fprintln(out, "\nAvailable transforms:")
				for _, name := range transform.NewTransformRegistry().List() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("an input file is required")
			}

			cfg, err := loadConfiguration(args[0])
			if err != nil {
				return err
			}

			ce := compare.NewCompareEngine(newEngine(debugMode))
			var set *compare.ComparisonSet
			if len(templates) == 0 && len(transforms) == 0 {
				set, err = ce.CompareScenarios(cmd.Context(), cfg, base, nil)
			} else {
				set, err = ce.Compare(cmd.Context(), cfg, compare.CompareOptions{
					BaseScenarioName: base,
					Templates:        templates,
					Transforms:       transforms,
				})
			}
			if err != nil {
				return err
			}
			set.ConfigPath = args[0]

			var text string
			switch format {
			case "table":
				text = (&compare.TableFormatter{}).Format(set)
			case "compact":
				text = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
			case "csv":
				text, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				text, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
				text += "\n"
			default:
				return fmt.Errorf("unsupported format %q (table, compact, csv, json)", format)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, text)
			return err
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Base scenario name (default: the configuration defaults)")
	cmd.Flags().StringSliceVar(&templates, "template", nil, "Built-in templates to apply to the base")
	cmd.Flags().StringSliceVar(&transforms, "transform", nil, "Ad hoc transforms, e.g. adjust_rate:delta=-0.005")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in templates and transforms")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Log intermediate figures for every analysis")
	return cmd
}
