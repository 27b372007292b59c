package property

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/propcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultRentCastURL is the RentCast v1 API root
const DefaultRentCastURL = "https://api.rentcast.io/v1"

// RentCastClient looks up public records through the RentCast API
type RentCastClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewRentCastClient creates a client; an empty baseURL selects the public API
func NewRentCastClient(apiKey, baseURL string, timeout time.Duration) *RentCastClient {
	if baseURL == "" {
		baseURL = DefaultRentCastURL
	}
	return &RentCastClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(timeout),
	}
}

// LookupAddress returns the first property record RentCast holds for address
func (c *RentCastClient) LookupAddress(ctx context.Context, address string) (*domain.PropertyRecord, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("rentcast: address is required")
	}
	if c.apiKey == "" {
		return nil, ErrUnauthorized
	}

	q := url.Values{}
	q.Set("address", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/properties?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("rentcast: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	body, err := doGet(c.http, req, "rentcast")
	if err != nil {
		return nil, err
	}

	var records []rentCastProperty
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("rentcast: parsing properties: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	rec := records[0].toDomain()
	return &rec, nil
}

// rentCastProperty mirrors the /properties response item
type rentCastProperty struct {
	ID               string   `json:"id"`
	FormattedAddress string   `json:"formattedAddress"`
	AddressLine1     string   `json:"addressLine1"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	ZipCode          string   `json:"zipCode"`
	County           string   `json:"county"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	PropertyType     string   `json:"propertyType"`
	Bedrooms         int      `json:"bedrooms"`
	Bathrooms        float64  `json:"bathrooms"`
	SquareFootage    int      `json:"squareFootage"`
	LotSize          int      `json:"lotSize"`
	YearBuilt        int      `json:"yearBuilt"`
	AssessorID       string   `json:"assessorID"`
	LegalDescription string   `json:"legalDescription"`
	Subdivision      string   `json:"subdivision"`
	LastSaleDate     string   `json:"lastSaleDate"`
	LastSalePrice    *float64 `json:"lastSalePrice"`

	Features struct {
		ArchitectureType string `json:"architectureType"`
		Cooling          bool   `json:"cooling"`
		CoolingType      string `json:"coolingType"`
		ExteriorType     string `json:"exteriorType"`
		FloorCount       int    `json:"floorCount"`
		FoundationType   string `json:"foundationType"`
		Garage           bool   `json:"garage"`
		GarageType       string `json:"garageType"`
		Heating          bool   `json:"heating"`
		HeatingType      string `json:"heatingType"`
		Pool             bool   `json:"pool"`
		RoofType         string `json:"roofType"`
		RoomCount        int    `json:"roomCount"`
		UnitCount        int    `json:"unitCount"`
	} `json:"features"`

	TaxAssessments map[string]struct {
		Year         int     `json:"year"`
		Value        float64 `json:"value"`
		Land         float64 `json:"land"`
		Improvements float64 `json:"improvements"`
	} `json:"taxAssessments"`

	PropertyTaxes map[string]struct {
		Year  int     `json:"year"`
		Total float64 `json:"total"`
	} `json:"propertyTaxes"`

	Owner struct {
		Names []string `json:"names"`
	} `json:"owner"`
}

func (p rentCastProperty) toDomain() domain.PropertyRecord {
	rec := domain.PropertyRecord{
		ID:               p.ID,
		FormattedAddress: p.FormattedAddress,
		AddressLine1:     p.AddressLine1,
		City:             p.City,
		State:            p.State,
		ZipCode:          p.ZipCode,
		County:           p.County,
		AssessorID:       p.AssessorID,
		LegalDescription: p.LegalDescription,
		Subdivision:      p.Subdivision,
		PropertyType:     p.PropertyType,
		Bedrooms:         p.Bedrooms,
		Bathrooms:        p.Bathrooms,
		SquareFootage:    p.SquareFootage,
		LotSize:          p.LotSize,
		YearBuilt:        p.YearBuilt,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		Features: domain.PropertyFeatures{
			ArchitectureType: p.Features.ArchitectureType,
			Cooling:          p.Features.Cooling,
			CoolingType:      p.Features.CoolingType,
			ExteriorType:     p.Features.ExteriorType,
			FloorCount:       p.Features.FloorCount,
			FoundationType:   p.Features.FoundationType,
			Garage:           p.Features.Garage,
			GarageType:       p.Features.GarageType,
			Heating:          p.Features.Heating,
			HeatingType:      p.Features.HeatingType,
			Pool:             p.Features.Pool,
			RoofType:         p.Features.RoofType,
			RoomCount:        p.Features.RoomCount,
			UnitCount:        p.Features.UnitCount,
		},
		Owners: p.Owner.Names,
	}

	if p.LastSaleDate != "" {
		if t, err := time.Parse(time.RFC3339, p.LastSaleDate); err == nil {
			rec.LastSaleDate = &t
		}
	}
	if p.LastSalePrice != nil {
		price := decimal.NewFromFloat(*p.LastSalePrice)
		rec.LastSalePrice = &price
	}

	for key, a := range p.TaxAssessments {
		rec.Assessments = append(rec.Assessments, domain.TaxAssessment{
			Year:         yearOf(a.Year, key),
			Value:        decimal.NewFromFloat(a.Value),
			Land:         decimal.NewFromFloat(a.Land),
			Improvements: decimal.NewFromFloat(a.Improvements),
		})
	}
	sort.Slice(rec.Assessments, func(i, j int) bool { return rec.Assessments[i].Year < rec.Assessments[j].Year })

	for key, t := range p.PropertyTaxes {
		rec.Taxes = append(rec.Taxes, domain.PropertyTax{
			Year:  yearOf(t.Year, key),
			Total: decimal.NewFromFloat(t.Total),
		})
	}
	sort.Slice(rec.Taxes, func(i, j int) bool { return rec.Taxes[i].Year < rec.Taxes[j].Year })

	return rec
}

// yearOf prefers the explicit year field and falls back to the map key
func yearOf(year int, key string) int {
	if year != 0 {
		return year
	}
	y, _ := strconv.Atoi(key)
	return y
}
