package output

import (
	"encoding/json"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

// JSONFormatter emits the full analysis
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(a *domain.Analysis) ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}
