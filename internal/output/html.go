package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"rate": FormatRate,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(a *domain.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.Analysis
		Assumptions []string
	}{a, DefaultAssumptions}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
