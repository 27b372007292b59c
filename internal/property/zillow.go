package property

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultZillowURL is the listing site root
const DefaultZillowURL = "https://www.zillow.com"

// Listing sort orders accepted by ListingURL
const (
	SortNewest  = "newest"
	SortHighLow = "high-low"
	SortLowHigh = "low-high"
)

var sortSegments = map[string]string{
	SortNewest:  "days_sort",
	SortHighLow: "priced_sort",
	SortLowHigh: "pricea_sort",
}

const (
	defaultSortSegment = "globalrelevanceex_sort"
	listingsSelector   = "ul.photo-cards.photo-cards_wow.photo-cards_short"
	cardSelector       = "article.list-card.list-card-short.list-card_not-saved"
)

// ZillowScraper reads for-sale listing pages
type ZillowScraper struct {
	baseURL string
	http    *http.Client
}

// NewZillowScraper creates a scraper; an empty baseURL selects the public site
func NewZillowScraper(baseURL string, timeout time.Duration) *ZillowScraper {
	if baseURL == "" {
		baseURL = DefaultZillowURL
	}
	return &ZillowScraper{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(timeout),
	}
}

// ListingURL returns the single-story for-sale listing page for zipcode.
// Unknown sort orders fall back to relevance.
func (z *ZillowScraper) ListingURL(zipcode, sortBy string) string {
	segment, ok := sortSegments[sortBy]
	if !ok {
		segment = defaultSortSegment
	}
	return fmt.Sprintf("%s/homes/for_sale/%s/0_singlestory/%s", z.baseURL, zipcode, segment)
}

// FetchZPIDs downloads the listing page for zipcode and extracts its ZPIDs
func (z *ZillowScraper) FetchZPIDs(ctx context.Context, zipcode, sortBy string) ([]int64, error) {
	zipcode = strings.TrimSpace(zipcode)
	if zipcode == "" {
		return nil, fmt.Errorf("zillow: zipcode is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, z.ListingURL(zipcode, sortBy), nil)
	if err != nil {
		return nil, fmt.Errorf("zillow: creating request: %w", err)
	}
	req.Header.Set("User-Agent", browserAgent)

	body, err := doGet(z.http, req, "zillow")
	if err != nil {
		return nil, err
	}
	return ExtractZPIDs(bytes.NewReader(body))
}

// ExtractZPIDs parses a listing page. Every <li> of the first listing
// container holding a listing card contributes the number from the card's
// "zpid_<n>" id; other items are skipped.
func ExtractZPIDs(r io.Reader) ([]int64, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("zillow: parsing listing page: %w", err)
	}

	listings := doc.Find(listingsSelector).First()
	if listings.Length() == 0 {
		return nil, fmt.Errorf("zillow: listing container missing: %w", ErrNotFound)
	}

	zpids := []int64{}
	var parseErr error
	listings.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		card := li.Find(cardSelector).First()
		if card.Length() == 0 {
			return true
		}
		id, _ := card.Attr("id")
		zpid, err := strconv.ParseInt(strings.TrimPrefix(id, "zpid_"), 10, 64)
		if err != nil {
			parseErr = fmt.Errorf("zillow: malformed listing id %q: %w", id, err)
			return false
		}
		zpids = append(zpids, zpid)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return zpids, nil
}
