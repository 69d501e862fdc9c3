// README: Explicit adapter registration keyed by provider name.
package provider

import (
	"errors"
	"strings"
)

// ErrUnknownProvider is returned for lookups of unregistered providers.
var ErrUnknownProvider = errors.New("unknown provider")

// Registry holds the registered adapter set. Lookup is case-insensitive;
// All preserves registration order, which the aggregator relies on for
// stable tie-breaks.
type Registry struct {
	byName map[string]FareEstimator
	order  []FareEstimator
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]FareEstimator)}
}

// Register adds an adapter. A repeated name replaces the earlier adapter
// but keeps its original position in the fan-out order.
func (r *Registry) Register(p FareEstimator) {
	key := strings.ToLower(p.Name())
	if old, exists := r.byName[key]; exists {
		for i, existing := range r.order {
			if existing == old {
				r.order[i] = p
				break
			}
		}
	} else {
		r.order = append(r.order, p)
	}
	r.byName[key] = p
}

func (r *Registry) Get(name string) (FareEstimator, error) {
	p, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return p, nil
}

// All returns the adapters in registration order.
func (r *Registry) All() []FareEstimator {
	out := make([]FareEstimator, len(r.order))
	copy(out, r.order)
	return out
}
