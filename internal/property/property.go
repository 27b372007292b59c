// Package property fetches property facts and listings from third-party
// providers and translates them into domain types.
package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rgehrsitz/propcalc/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
	browserAgent   = "Mozilla/5.0"
)

var (
	// ErrNotFound indicates the provider has no record for the request
	ErrNotFound = errors.New("property: not found")
	// ErrUnauthorized indicates a missing or rejected API key
	ErrUnauthorized = errors.New("property: unauthorized (API key missing or invalid)")
	// ErrUnexpectedStatus wraps any other non-success response
	ErrUnexpectedStatus = errors.New("property: unexpected status")
)

// AddressLookup resolves a street address to a property record
type AddressLookup interface {
	LookupAddress(ctx context.Context, address string) (*domain.PropertyRecord, error)
}

// StatusError carries the HTTP status of a failed provider response
type StatusError struct {
	Provider   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// doGet performs the request and returns the response body, mapping
// provider status codes to package errors.
func doGet(client *http.Client, req *http.Request, provider string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", provider, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Provider: provider, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", provider, err)
	}
	return body, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
