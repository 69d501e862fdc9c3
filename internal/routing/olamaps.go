// README: Route metrics resolver backed by the OlaMaps distance-matrix API.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"faredeck/internal/types"
)

const (
	// olaMapsTimeout bounds a single distance-matrix call.
	olaMapsTimeout = 5 * time.Second

	httpMaxIdleConns    = 10
	httpIdleConnTimeout = 30 * time.Second
)

// OlaMapsResolver implements Resolver using the OlaMaps distance-matrix
// endpoint.
type OlaMapsResolver struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewOlaMapsResolver(baseURL, apiKey string) *OlaMapsResolver {
	transport := &http.Transport{
		MaxIdleConns:        httpMaxIdleConns,
		MaxIdleConnsPerHost: httpMaxIdleConns,
		IdleConnTimeout:     httpIdleConnTimeout,
	}
	return &OlaMapsResolver{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   olaMapsTimeout,
			Transport: transport,
		},
	}
}

func (r *OlaMapsResolver) Resolve(ctx context.Context, origin, destination types.Point) (*Metrics, error) {
	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Set("destinations", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	q.Set("mode", "driving")
	q.Set("api_key", r.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.baseURL+"/routing/v1/distanceMatrix?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("routing: olamaps: create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("routing: olamaps: http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing: olamaps: status %d", resp.StatusCode)
	}

	var apiResp distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("routing: olamaps: decode response: %w", err)
	}
	if len(apiResp.Rows) == 0 || len(apiResp.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("routing: olamaps: empty matrix")
	}

	el := apiResp.Rows[0].Elements[0]
	if el.Status != "OK" {
		// Recoverable: the service answered but found no usable route.
		return nil, nil
	}
	return &Metrics{
		DistanceKm:  el.DistanceMeters / 1000.0,
		DurationMin: int(math.Round(el.DurationSeconds / 60.0)),
	}, nil
}

// --- JSON types for the OlaMaps distance-matrix API ---

type distanceMatrixResponse struct {
	Rows []distanceMatrixRow `json:"rows"`
}

type distanceMatrixRow struct {
	Elements []distanceMatrixElement `json:"elements"`
}

type distanceMatrixElement struct {
	Status          string  `json:"status"`
	DistanceMeters  float64 `json:"distance"`
	DurationSeconds float64 `json:"duration"`
}
