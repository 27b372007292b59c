package main

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/propcalc/internal/calculation"
	"github.com/rgehrsitz/propcalc/internal/tui"
)

func main() {
	// Without a scenario file the program starts with the input form
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: Config file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	if err := tui.Run(configPath, calculation.NewEngine()); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
