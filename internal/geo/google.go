// README: Geocoder backed by the Google Geocoding API.
package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"faredeck/internal/types"
)

// GoogleResolver implements Resolver using the Google Geocoding API.
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

func (r *GoogleResolver) Resolve(ctx context.Context, address string) (*types.Point, error) {
	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("geo: google: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	loc := results[0].Geometry.Location
	p := types.Point{Lat: loc.Lat, Lng: loc.Lng}
	if !p.Valid() {
		return nil, fmt.Errorf("geo: google: coordinates out of range: %v", p)
	}
	return &p, nil
}
