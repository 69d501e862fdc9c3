// Package geo resolves free-text addresses into coordinates.
package geo

import (
	"context"

	"faredeck/internal/types"
)

// Resolver converts a free-text address into coordinates.
//
// Resolution fails softly: a nil point with a nil error means the address
// had no match. A non-nil error means the upstream call failed; callers
// treat it the same as no-match, never as fatal. Implementations make a
// single outbound call per address, no retries.
type Resolver interface {
	Resolve(ctx context.Context, address string) (*types.Point, error)
}
