package output

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

const (
	pdfMarginLeft   = 18.0
	pdfMarginTop    = 18.0
	pdfMarginRight  = 18.0
	pdfMarginBottom = 18.0
	pdfPageWidth    = 210.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// PDFFormatter renders an A4 report with the summary and full schedule
type PDFFormatter struct {
	// Now stamps the report; nil uses time.Now
	Now func() time.Time
}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(a *domain.Analysis) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("no analysis to format")
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	pdf.SetTitle("Property Investment Analysis: "+a.ScenarioName, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 10, "Property Investment Analysis", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(pdfContentWidth, 6, "Scenario: "+a.ScenarioName, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(pdfContentWidth, 6, "Generated: "+now().Format("2 January 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	in, s := a.Inputs, a.Summary
	pdfKeyValues(pdf, "Inputs", [][2]string{
		{"Cost Price", FormatCurrency(in.CostPrice)},
		{"Down Payment", FormatRate(in.DownPaymentFraction)},
		{"Interest Rate", FormatRate(in.AnnualInterestRate)},
		{"Loan Term", fmt.Sprintf("%d years", in.LoanDurationYears)},
		{"Property Tax Rate", FormatRate(in.PropertyTaxRate)},
		{"Insurance Rate", FormatRate(in.InsuranceRate)},
		{"Monthly Expenses", FormatCurrency(in.MonthlyExpenses)},
		{"Appreciation Rate", FormatRate(in.AppreciationRate)},
	})
	pdfKeyValues(pdf, "Summary", [][2]string{
		{"Down Payment", FormatCurrency(s.DownPayment)},
		{"Loan Amount", FormatCurrency(s.LoanAmount)},
		{"Monthly Payment (P&I)", FormatCurrency(s.MonthlyPayment)},
		{"Total Monthly Payment", FormatCurrency(s.TotalMonthlyPayment)},
		{"Total Paid", FormatCurrency(s.TotalPaid)},
		{"Total Interest", FormatCurrency(s.TotalInterest)},
		{"Average Comparable", FormatCurrency(s.AveragePrice)},
		{"Price Spread", FormatPercentage(s.PriceSpreadPercent)},
		{"Resale ROI", FormatPercentage(s.ROIPercent)},
		{"Break-even", s.BreakEvenMonths.StringFixed(2) + " months"},
		{fmt.Sprintf("Future Value (%d years)", s.FutureValueYears), FormatCurrency(s.FutureValue)},
	})

	pdfSchedule(pdf, a.Schedule)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("building pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfHeading(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 8, title, "", 1, "L", false, 0, "")
}

func pdfKeyValues(pdf *fpdf.Fpdf, title string, rows [][2]string) {
	pdfHeading(pdf, title)
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFillColor(245, 247, 250)
	pdf.SetDrawColor(200, 200, 200)
	for i, r := range rows {
		fill := i%2 == 0
		pdf.CellFormat(pdfContentWidth*0.6, 6, r[0], "1", 0, "L", fill, 0, "")
		pdf.CellFormat(pdfContentWidth*0.4, 6, r[1], "1", 1, "R", fill, 0, "")
	}
	pdf.Ln(4)
}

func pdfSchedule(pdf *fpdf.Fpdf, schedule []domain.AmortizationYearRecord) {
	widths := []float64{20, 50, 50, pdfContentWidth - 120}

	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFillColor(0, 51, 102)
		for i, h := range ScheduleHeader {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
		pdf.SetFillColor(245, 247, 250)
	}

	pdf.AddPage()
	pdfHeading(pdf, "Amortization Schedule")
	header()

	_, pageHeight := pdf.GetPageSize()
	for i, rec := range schedule {
		if pdf.GetY()+6 > pageHeight-pdfMarginBottom {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.CellFormat(widths[0], 6, strconv.Itoa(rec.Year), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[1], 6, FormatCurrency(rec.InterestPaid), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[2], 6, FormatCurrency(rec.PrincipalPaid), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 6, FormatCurrency(rec.RemainingBalance), "1", 1, "R", fill, 0, "")
	}
}
