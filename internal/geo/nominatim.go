// README: Geocoder backed by the public OpenStreetMap Nominatim API.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"faredeck/internal/types"
)

const (
	// nominatimTimeout bounds a single geocoding call.
	nominatimTimeout = 5 * time.Second

	httpMaxIdleConns    = 10
	httpIdleConnTimeout = 30 * time.Second
)

// NominatimResolver implements Resolver using Nominatim's /search endpoint.
// No API key is required for moderate use.
type NominatimResolver struct {
	baseURL    string
	httpClient *http.Client
}

func NewNominatimResolver(baseURL string) *NominatimResolver {
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	return &NominatimResolver{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   nominatimTimeout,
			Transport: transport,
		},
	}
}

func (r *NominatimResolver) Resolve(ctx context.Context, address string) (*types.Point, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	// Only the top result is wanted.
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geo: nominatim: create request: %w", err)
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "faredeck/1.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo: nominatim: http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo: nominatim: status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geo: nominatim: decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("geo: nominatim: parse lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("geo: nominatim: parse lon %q: %w", results[0].Lon, err)
	}

	p := types.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return nil, fmt.Errorf("geo: nominatim: coordinates out of range: %v", p)
	}
	return &p, nil
}

// Nominatim serializes coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}
