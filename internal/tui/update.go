package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.schedule.SetHeight(max(5, msg.Height-8))
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.loading = false
		m.config = msg.Config
		// a file with scenarios opens on the first one
		if len(msg.Config.Scenarios) > 0 {
			m.selectScenario(0)
		} else {
			m.selectScenario(-1)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	// nothing else applies until inputs exist
	if m.err != nil || m.loading || len(m.params) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextView):
		m.view = m.view.next()
		return m, nil

	case key.Matches(msg, m.keys.Scenario):
		if n := len(m.config.Scenarios); n > 0 {
			next := m.scenario + 1
			if next >= n {
				next = -1
			}
			m.selectScenario(next)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.load(m.base)
		return m, nil
	}

	if m.view == ViewSchedule {
		var cmd tea.Cmd
		m.schedule, cmd = m.schedule.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Left):
		if m.params[m.focus].slider.Decrement() {
			m.recompute()
		}
	case key.Matches(msg, m.keys.Right):
		if m.params[m.focus].slider.Increment() {
			m.recompute()
		}
	}
	return m, nil
}
