package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyRecord is a provider-neutral description of a single property.
// Adapters in internal/property translate provider payloads into this shape.
type PropertyRecord struct {
	ID               string `json:"id"`
	FormattedAddress string `json:"formattedAddress"`
	AddressLine1     string `json:"addressLine1"`
	City             string `json:"city"`
	State            string `json:"state"`
	ZipCode          string `json:"zipCode"`
	County           string `json:"county,omitempty"`

	AssessorID       string `json:"assessorId,omitempty"`
	LegalDescription string `json:"legalDescription,omitempty"`
	Subdivision      string `json:"subdivision,omitempty"`
	PropertyType     string `json:"propertyType,omitempty"`

	Bedrooms      int     `json:"bedrooms,omitempty"`
	Bathrooms     float64 `json:"bathrooms,omitempty"`
	SquareFootage int     `json:"squareFootage,omitempty"`
	LotSize       int     `json:"lotSize,omitempty"`
	YearBuilt     int     `json:"yearBuilt,omitempty"`

	LastSaleDate  *time.Time       `json:"lastSaleDate,omitempty"`
	LastSalePrice *decimal.Decimal `json:"lastSalePrice,omitempty"`

	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`

	Features    PropertyFeatures `json:"features"`
	Assessments []TaxAssessment  `json:"assessments,omitempty"`
	Taxes       []PropertyTax    `json:"taxes,omitempty"`
	Owners      []string         `json:"owners,omitempty"`
}

// PropertyFeatures lists structural details reported for a property
type PropertyFeatures struct {
	ArchitectureType string `json:"architectureType,omitempty"`
	Cooling          bool   `json:"cooling"`
	CoolingType      string `json:"coolingType,omitempty"`
	ExteriorType     string `json:"exteriorType,omitempty"`
	FloorCount       int    `json:"floorCount,omitempty"`
	FoundationType   string `json:"foundationType,omitempty"`
	Garage           bool   `json:"garage"`
	GarageType       string `json:"garageType,omitempty"`
	Heating          bool   `json:"heating"`
	HeatingType      string `json:"heatingType,omitempty"`
	Pool             bool   `json:"pool"`
	RoofType         string `json:"roofType,omitempty"`
	RoomCount        int    `json:"roomCount,omitempty"`
	UnitCount        int    `json:"unitCount,omitempty"`
}

// TaxAssessment is the assessed value of a property for one year
type TaxAssessment struct {
	Year         int             `json:"year"`
	Value        decimal.Decimal `json:"value"`
	Land         decimal.Decimal `json:"land"`
	Improvements decimal.Decimal `json:"improvements"`
}

// PropertyTax is the property tax billed for one year
type PropertyTax struct {
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
}

// LatestAssessment returns the assessment with the highest year
func (p *PropertyRecord) LatestAssessment() (TaxAssessment, bool) {
	var latest TaxAssessment
	found := false
	for _, a := range p.Assessments {
		if !found || a.Year > latest.Year {
			latest = a
			found = true
		}
	}
	return latest, found
}
