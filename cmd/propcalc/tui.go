package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [input-file]",
		Short: "Explore a scenario interactively",
		Long: `Explore a scenario interactively with sliders for the loan terms.

Without an input file a short form asks for the property figures first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return tui.Run(path, calculation.NewEngine())
		},
	}
}
