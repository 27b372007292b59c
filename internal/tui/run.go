package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/propcalc/internal/calculation"
)

// Run starts the interactive program. Without a scenario file the input form
// collects the property figures first.
func Run(configPath string, engine *calculation.Engine) error {
	var model Model
	if configPath != "" {
		model = NewModel(configPath, engine)
	} else {
		var values FormValues
		if err := NewInputForm(&values).Run(); err != nil {
			return err
		}
		inputs, err := values.Inputs()
		if err != nil {
			return fmt.Errorf("invalid input: %w", err)
		}
		model = NewModelWithInputs(inputs, engine)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
