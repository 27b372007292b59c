package tui

import (
	"github.com/rgehrsitz/propcalc/internal/domain"
)

// View selects what the main area shows
type View int

const (
	ViewCalculator View = iota
	ViewSchedule
	ViewChart
)

var viewNames = []string{"Calculator", "Schedule", "Chart"}

// String returns the tab title for the view
func (v View) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return "Unknown"
}

func (v View) next() View {
	return (v + 1) % View(len(viewNames))
}

// ConfigLoadedMsg carries a parsed scenario file
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg reports a failure outside the engine, e.g. an unreadable file
type ErrorMsg struct {
	Err error
}
