// README: Route metrics resolver backed by the Google Distance Matrix API.
package routing

import (
	"context"
	"fmt"
	"math"

	"googlemaps.github.io/maps"

	"faredeck/internal/types"
)

// GoogleResolver implements Resolver using the Google Distance Matrix API.
type GoogleResolver struct {
	client *maps.Client
}

// NewGoogleResolver creates a GoogleResolver with the given API key.
func NewGoogleResolver(apiKey string) (*GoogleResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleResolver{client: client}, nil
}

func (r *GoogleResolver) Resolve(ctx context.Context, origin, destination types.Point) (*Metrics, error) {
	resp, err := r.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{fmt.Sprintf("%f,%f", origin.Lat, origin.Lng)},
		Destinations: []string{fmt.Sprintf("%f,%f", destination.Lat, destination.Lng)},
		Mode:         maps.TravelModeDriving,
	})
	if err != nil {
		return nil, fmt.Errorf("routing: google: %w", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("routing: google: empty matrix")
	}

	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return nil, nil
	}
	return &Metrics{
		DistanceKm:  float64(el.Distance.Meters) / 1000.0,
		DurationMin: int(math.Round(el.Duration.Minutes())),
	}, nil
}
