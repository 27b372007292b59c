package property

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultZestimateHost is the RapidAPI host serving Zestimates
const DefaultZestimateHost = "zillow-zestimate.p.rapidapi.com"

// ZestimateClient fetches Zestimate payloads through RapidAPI
type ZestimateClient struct {
	apiKey  string
	host    string
	baseURL string
	http    *http.Client
}

// NewZestimateClient creates a client for the given RapidAPI key and host.
// An empty host selects DefaultZestimateHost.
func NewZestimateClient(apiKey, host string, timeout time.Duration) *ZestimateClient {
	if host == "" {
		host = DefaultZestimateHost
	}
	return &ZestimateClient{
		apiKey:  strings.TrimSpace(apiKey),
		host:    host,
		baseURL: "https://" + host,
		http:    newHTTPClient(timeout),
	}
}

// WithBaseURL points the client at a different server, keeping the host header
func (c *ZestimateClient) WithBaseURL(baseURL string) *ZestimateClient {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// FetchZestimate returns the raw Zestimate document for zpid. The payload
// schema is provider-defined, so it is returned undecoded beyond JSON.
func (c *ZestimateClient) FetchZestimate(ctx context.Context, zpid int64) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, ErrUnauthorized
	}

	q := url.Values{}
	q.Set("zpid", strconv.FormatInt(zpid, 10))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/zestimate?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("zestimate: creating request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.host)

	body, err := doGet(c.http, req, "zestimate")
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("zestimate: parsing response: %w", err)
	}
	return payload, nil
}
