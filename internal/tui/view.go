package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/tui/components"
	"github.com/rgehrsitz/propcalc/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return tuistyles.AppStyle.Render(tuistyles.InfoStyle.Render("Loading " + m.configPath + "..."))
	}
	if m.err != nil {
		return tuistyles.AppStyle.Render(
			tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" + m.help.View(m.keys))
	}

	var content string
	switch m.view {
	case ViewSchedule:
		content = m.renderSchedule()
	case ViewChart:
		content = m.renderChart()
	default:
		content = m.renderCalculator()
	}

	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		m.help.View(m.keys),
	))
}

func (m Model) renderTitleBar() string {
	tabs := make([]string, 0, len(viewNames))
	for i, name := range viewNames {
		if View(i) == m.view {
			tabs = append(tabs, tuistyles.TitleStyle.Render("["+name+"]"))
		} else {
			tabs = append(tabs, tuistyles.SubtitleStyle.Render(" "+name+" "))
		}
	}
	title := tuistyles.TitleStyle.Render("propcalc") + "  " +
		tuistyles.SubtitleStyle.Render("scenario: "+m.ScenarioName())
	return title + "\n" + strings.Join(tabs, " ")
}

func (m Model) renderCalculator() string {
	sliders := make([]string, 0, len(m.params))
	for _, p := range m.params {
		line := p.slider.Render()
		if !p.slider.Value.Equal(p.get(m.base)) {
			line += tuistyles.InfoStyle.Render(" *")
		}
		sliders = append(sliders, line)
	}
	left := lipgloss.JoinVertical(lipgloss.Left, sliders...)

	var right string
	if m.calcErr != nil {
		right = tuistyles.ErrorStyle.Render(m.calcErr.Error())
	} else {
		right = components.MetricGrid(m.metricCards(), 2)
	}

	if m.width < 120 {
		return lipgloss.JoinVertical(lipgloss.Left, left, "", right)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right)
}

// metricCards summarizes the analysis; deltas compare against the loaded
// scenario and are colored green when they favor the buyer.
func (m Model) metricCards() []*components.MetricCard {
	s := m.analysis.Summary
	var b *domain.InvestmentSummary
	if m.baseline != nil {
		b = &m.baseline.Summary
	}

	money := func(label string, v decimal.Decimal, base func(domain.InvestmentSummary) decimal.Decimal, lowerIsBetter bool) *components.MetricCard {
		card := components.NewMetricCard(label, tuistyles.FormatCurrency(v.InexactFloat64()))
		if b != nil {
			if diff := v.Sub(base(*b)); !diff.Round(0).IsZero() {
				sign := "+"
				if diff.IsNegative() {
					sign = "-"
				}
				card.WithDelta(sign+tuistyles.FormatCurrency(diff.Abs().InexactFloat64()), diff.IsNegative() == lowerIsBetter)
			}
		}
		return card
	}

	return []*components.MetricCard{
		money("Monthly payment", s.MonthlyPayment, func(x domain.InvestmentSummary) decimal.Decimal { return x.MonthlyPayment }, true).
			WithNote("principal + interest"),
		money("Total monthly", s.TotalMonthlyPayment, func(x domain.InvestmentSummary) decimal.Decimal { return x.TotalMonthlyPayment }, true).
			WithNote("with tax + insurance"),
		money("Total interest", s.TotalInterest, func(x domain.InvestmentSummary) decimal.Decimal { return x.TotalInterest }, true),
		money("Down payment", s.DownPayment, func(x domain.InvestmentSummary) decimal.Decimal { return x.DownPayment }, true),
		components.NewMetricCard("Break-even", s.BreakEvenYears.StringFixed(1)+" years").
			WithNote(s.BreakEvenMonths.StringFixed(1) + " months"),
		money("Future value", s.FutureValue, func(x domain.InvestmentSummary) decimal.Decimal { return x.FutureValue }, false).
			WithNote(fmt.Sprintf("after %d years", s.FutureValueYears)),
	}
}

func (m Model) renderSchedule() string {
	if m.calcErr != nil {
		return tuistyles.ErrorStyle.Render(m.calcErr.Error())
	}
	return tuistyles.BorderStyle.Render(m.schedule.View())
}

func (m Model) renderChart() string {
	if m.calcErr != nil {
		return tuistyles.ErrorStyle.Render(m.calcErr.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		components.BalanceChart(m.analysis, max(40, m.width-8)).Render(),
		"",
		components.PaymentBarChart(m.analysis, max(20, m.width-30)).Render(),
	)
}

func newScheduleTable() table.Model {
	columns := []table.Column{
		{Title: "Year", Width: 6},
		{Title: "Interest Paid", Width: 16},
		{Title: "Principal Paid", Width: 16},
		{Title: "Remaining Balance", Width: 18},
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(tuistyles.ColorPrimary).Bold(true)
	styles.Selected = styles.Selected.Foreground(tuistyles.ColorAccent)

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithStyles(styles),
	)
}

func scheduleRows(schedule []domain.AmortizationYearRecord) []table.Row {
	rows := make([]table.Row, 0, len(schedule))
	for _, rec := range schedule {
		rows = append(rows, table.Row{
			strconv.Itoa(rec.Year),
			rec.InterestPaid.StringFixed(2),
			rec.PrincipalPaid.StringFixed(2),
			rec.RemainingBalance.StringFixed(2),
		})
	}
	return rows
}
