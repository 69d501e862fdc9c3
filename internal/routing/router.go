// Package routing obtains distance and travel-duration between two points
// from an external routing service.
package routing

import (
	"context"

	"faredeck/internal/types"
)

// Metrics holds route distance and travel duration. A nil *Metrics is the
// expected representation of "unknown route", not an error.
type Metrics struct {
	DistanceKm  float64
	DurationMin int
}

// Resolver obtains route metrics for a coordinate pair.
//
// A nil Metrics with a nil error means the routing service reported no
// usable route (non-OK element status). A non-nil error means the upstream
// call failed; callers treat both as "unknown route" and degrade. Callers
// must not invoke Resolve unless both points resolved.
type Resolver interface {
	Resolve(ctx context.Context, origin, destination types.Point) (*Metrics, error)
}
