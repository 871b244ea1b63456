// Package geo resolves place names to coordinates via the OpenCage
// forward geocoding API.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrMissingAPIKey is returned at call time when no OpenCage key is
	// configured.
	ErrMissingAPIKey = errors.New("geo: OPENCAGE_API_KEY is not configured")
	// ErrNoResults indicates the query matched no known place.
	ErrNoResults = errors.New("geo: location not found")
)

// Place is one resolved location.
type Place struct {
	Formatted string  `json:"formatted"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Client talks to the OpenCage geocoding API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a client. An empty baseURL selects the public API.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://api.opencagedata.com/geocode/v1"
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

type geocodeResponse struct {
	Results []struct {
		Formatted  string `json:"formatted"`
		Components struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			Country string `json:"country"`
		} `json:"components"`
		Geometry struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
	} `json:"results"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

// Geocode resolves a free-form place name to coordinates, returning the
// best match.
func (c *Client) Geocode(ctx context.Context, query string) (*Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("geo: empty query")
	}
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("limit", "1")
	params.Set("no_annotations", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("geo: upstream rejected API key")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, ErrNoResults
	}

	best := payload.Results[0]
	city := best.Components.City
	if city == "" {
		city = best.Components.Town
	}
	if city == "" {
		city = best.Components.Village
	}

	return &Place{
		Formatted: best.Formatted,
		City:      city,
		Country:   best.Components.Country,
		Latitude:  best.Geometry.Lat,
		Longitude: best.Geometry.Lng,
	}, nil
}
