// Package output renders analyses for the terminal and for export.
package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a single analysis
type Formatter interface {
	Name() string
	Format(analysis *domain.Analysis) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(*domain.Analysis) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(analysis *domain.Analysis) ([]byte, error) {
	return f.F(analysis)
}

var formatters = map[string]Formatter{}

var formatAliases = map[string]string{
	"text":    "console",
	"verbose": "console",
	"summary": "console-lite",
	"htm":     "html",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleLiteFormatter{})
	register(ScheduleCSVFormatter{})
	register(SummaryCSVFormatter{})
	register(JSONFormatter{})
	register(HTMLFormatter{})
	register(PDFFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames returns the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders analysis and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, analysis *domain.Analysis, ext string) (string, error) {
	data, err := f.Format(analysis)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("propcalc_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// WriteFile renders analysis to path
func WriteFile(f Formatter, analysis *domain.Analysis, path string) error {
	data, err := f.Format(analysis)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fraction such as 0.04 as a percentage
func FormatRate(rate decimal.Decimal) string {
	return rate.Shift(2).StringFixed(3) + "%"
}
