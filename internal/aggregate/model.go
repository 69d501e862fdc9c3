// README: Aggregated fare response; the sole externally visible artifact.
package aggregate

import (
	"faredeck/internal/provider"
	"faredeck/internal/routing"
	"faredeck/internal/types"
)

// Response is built fresh per request and never mutated or cached after
// construction. Route is nil when either address was unresolvable or the
// routing service had no answer. Every quote corresponds to a provider
// whose estimate call succeeded; failed providers are omitted, never
// represented by placeholders.
type Response struct {
	Pickup      string           `json:"pickup"`
	Destination string           `json:"destination"`
	PickupLoc   *types.Point     `json:"pickup_loc,omitempty"`
	DestLoc     *types.Point     `json:"dest_loc,omitempty"`
	Route       *routing.Metrics `json:"route"`
	Quotes      []provider.Quote `json:"quotes"`
}
