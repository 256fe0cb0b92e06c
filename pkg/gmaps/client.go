// Package gmaps provides a client for the Google Maps Platform web services:
// forward and reverse geocoding plus Places Nearby Search.
package gmaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// Client defines the mapping operations used by the pipeline.
type Client interface {
	// Geocode resolves a free-form address (e.g. a city name) to coordinates.
	Geocode(ctx context.Context, address string) (*LatLng, error)
	// ReverseGeocode resolves coordinates to structured address results.
	ReverseGeocode(ctx context.Context, loc LatLng) ([]GeocodeResult, error)
	// NearbySearch finds places around a location. A non-empty PageToken in
	// the response means more pages are available.
	NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error)
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeocodeResult is one result from the Geocoding API.
type GeocodeResult struct {
	AddressComponents []AddressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          Geometry           `json:"geometry"`
}

// AddressComponent is a typed fragment of a geocoded address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Geometry holds the location of a geocode or place result.
type Geometry struct {
	Location LatLng `json:"location"`
}

// NearbySearchRequest parameterizes a Places Nearby Search call.
type NearbySearchRequest struct {
	Location  LatLng
	RadiusM   int
	PlaceType string
	Keyword   string
	PageToken string
}

// NearbySearchResponse is the parsed Nearby Search response.
type NearbySearchResponse struct {
	Places    []PlaceResult
	PageToken string
}

// PlaceResult is one place from Nearby Search.
type PlaceResult struct {
	Name     string   `json:"name"`
	Geometry Geometry `json:"geometry"`
	Types    []string `json:"types"`
	Vicinity string   `json:"vicinity"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the requests-per-second limit toward the API.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Google Maps client. Every outbound call waits on the
// rate limiter, so paged and per-keyword loops stay polite to the provider.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(5, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusResponse covers the status field shared by all Maps web services.
type statusResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (c *httpClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "gmaps: rate limit")
	}

	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return eris.Wrap(err, "gmaps: create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "gmaps: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "gmaps: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("gmaps: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return eris.Wrap(err, "gmaps: parse status")
	}
	if status.Status != "OK" && status.Status != "ZERO_RESULTS" {
		return eris.Errorf("gmaps: api status %s: %s", status.Status, status.ErrorMessage)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrap(err, "gmaps: unmarshal response")
	}
	return nil
}

func (c *httpClient) Geocode(ctx context.Context, address string) (*LatLng, error) {
	var result struct {
		Results []GeocodeResult `json:"results"`
	}
	params := url.Values{"address": {address}}
	if err := c.get(ctx, "/geocode/json", params, &result); err != nil {
		return nil, err
	}
	if len(result.Results) == 0 {
		return nil, eris.Errorf("gmaps: no geocode results for %q", address)
	}
	loc := result.Results[0].Geometry.Location
	return &loc, nil
}

func (c *httpClient) ReverseGeocode(ctx context.Context, loc LatLng) ([]GeocodeResult, error) {
	var result struct {
		Results []GeocodeResult `json:"results"`
	}
	params := url.Values{
		"latlng":      {fmt.Sprintf("%f,%f", loc.Lat, loc.Lng)},
		"result_type": {"neighborhood|locality|political"},
	}
	if err := c.get(ctx, "/geocode/json", params, &result); err != nil {
		return nil, err
	}
	return result.Results, nil
}

func (c *httpClient) NearbySearch(ctx context.Context, req NearbySearchRequest) (*NearbySearchResponse, error) {
	var result struct {
		Results       []PlaceResult `json:"results"`
		NextPageToken string        `json:"next_page_token"`
	}

	params := url.Values{}
	if req.PageToken != "" {
		// A page token encodes the original request; other params are ignored.
		params.Set("pagetoken", req.PageToken)
	} else {
		params.Set("location", fmt.Sprintf("%f,%f", req.Location.Lat, req.Location.Lng))
		params.Set("radius", strconv.Itoa(req.RadiusM))
		if req.PlaceType != "" {
			params.Set("type", req.PlaceType)
		}
		if req.Keyword != "" {
			params.Set("keyword", req.Keyword)
		}
	}

	if err := c.get(ctx, "/place/nearbysearch/json", params, &result); err != nil {
		return nil, err
	}

	return &NearbySearchResponse{
		Places:    result.Results,
		PageToken: result.NextPageToken,
	}, nil
}
