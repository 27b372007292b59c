package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/rgehrsitz/propcalc/internal/property"
)

// FormatProperty renders a looked-up property as labeled sections
func FormatProperty(p *domain.PropertyRecord) string {
	var buf bytes.Buffer

	section(&buf, "Property Details")
	line(&buf, "Address", p.FormattedAddress)
	line(&buf, "Property Type", p.PropertyType)
	line(&buf, "Bedrooms", intOrEmpty(p.Bedrooms))
	if p.Bathrooms > 0 {
		line(&buf, "Bathrooms", fmt.Sprintf("%g", p.Bathrooms))
	}
	line(&buf, "Square Footage", intOrEmpty(p.SquareFootage))
	line(&buf, "Lot Size", intOrEmpty(p.LotSize))
	line(&buf, "Year Built", intOrEmpty(p.YearBuilt))
	line(&buf, "Owners", strings.Join(p.Owners, ", "))

	section(&buf, "Financial Details")
	if p.LastSalePrice != nil {
		line(&buf, "Last Sale Price", FormatCurrency(*p.LastSalePrice))
	}
	if p.LastSaleDate != nil {
		line(&buf, "Last Sale Date", p.LastSaleDate.Format("2006-01-02"))
	}
	for _, a := range p.Assessments {
		line(&buf, fmt.Sprintf("Assessment %d", a.Year),
			fmt.Sprintf("%s (land %s, improvements %s)", FormatCurrency(a.Value), FormatCurrency(a.Land), FormatCurrency(a.Improvements)))
	}
	for _, t := range p.Taxes {
		line(&buf, fmt.Sprintf("Property Tax %d", t.Year), FormatCurrency(t.Total))
	}

	section(&buf, "Geographical Details")
	line(&buf, "City", p.City)
	line(&buf, "State", p.State)
	line(&buf, "Zip Code", p.ZipCode)
	line(&buf, "County", p.County)
	if p.Latitude != 0 || p.Longitude != 0 {
		line(&buf, "Coordinates", fmt.Sprintf("%.6f, %.6f", p.Latitude, p.Longitude))
	}

	section(&buf, "Additional Property Information")
	line(&buf, "Assessor ID", p.AssessorID)
	line(&buf, "Legal Description", p.LegalDescription)
	line(&buf, "Subdivision", p.Subdivision)
	f := p.Features
	line(&buf, "Architecture", f.ArchitectureType)
	line(&buf, "Floors", intOrEmpty(f.FloorCount))
	line(&buf, "Rooms", intOrEmpty(f.RoomCount))
	line(&buf, "Foundation", f.FoundationType)
	line(&buf, "Exterior", f.ExteriorType)
	line(&buf, "Roof", f.RoofType)
	line(&buf, "Cooling", feature(f.Cooling, f.CoolingType))
	line(&buf, "Heating", feature(f.Heating, f.HeatingType))
	line(&buf, "Garage", feature(f.Garage, f.GarageType))
	line(&buf, "Pool", yesNo(f.Pool))

	return buf.String()
}

// FormatFields renders flattened provider data one "path: value" per line
func FormatFields(fields []property.Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Path))
	}
	var buf bytes.Buffer
	for _, f := range fields {
		fmt.Fprintf(&buf, "%-*s  %s\n", width+1, f.Path+":", f.Value)
	}
	return buf.String()
}

func section(buf *bytes.Buffer, title string) {
	if buf.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString(title)
	buf.WriteString("\n")
	buf.WriteString(strings.Repeat("-", len(title)))
	buf.WriteString("\n")
}

// line skips empty values so sparse records stay short
func line(buf *bytes.Buffer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(buf, "  %-20s %s\n", label+":", value)
}

func intOrEmpty(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func feature(present bool, kind string) string {
	if present && kind != "" {
		return "Yes (" + kind + ")"
	}
	return yesNo(present)
}
