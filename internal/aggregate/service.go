// README: Fare aggregation engine; resolves locations, obtains route
// metrics, fans out to all provider adapters, and ranks the survivors.
package aggregate

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"faredeck/internal/geo"
	"faredeck/internal/provider"
	"faredeck/internal/routing"
	"faredeck/internal/types"
)

// ErrInvalidRequest is the only error Aggregate returns: malformed
// top-level input. Provider and upstream failures degrade the response
// instead.
var ErrInvalidRequest = errors.New("pickup and destination are required")

type Service struct {
	geo geo.Resolver
	// routes may be nil; every response then carries a nil route.
	routes routing.Resolver
}

func NewService(geocoder geo.Resolver, routes routing.Resolver) *Service {
	return &Service{geo: geocoder, routes: routes}
}

// Aggregate resolves both addresses concurrently, conditionally obtains
// route metrics, invokes every adapter concurrently with identical inputs
// (all-settled: it waits for each one, success or failure), keeps the
// successes, and ranks them by minimum price with nil prices last. Total
// availability depends only on the input being well-formed, never on any
// individual provider or upstream being healthy.
func (s *Service) Aggregate(ctx context.Context, pickup, destination string, providers []provider.FareEstimator) (*Response, error) {
	pickup = strings.TrimSpace(pickup)
	destination = strings.TrimSpace(destination)
	if pickup == "" || destination == "" {
		return nil, ErrInvalidRequest
	}

	pickupLoc, destLoc := s.resolveBoth(ctx, pickup, destination)

	// Routing requires both endpoints; with either missing the engine
	// proceeds with an unknown route and makes no routing call.
	var route *routing.Metrics
	if pickupLoc != nil && destLoc != nil && s.routes != nil {
		m, err := s.routes.Resolve(ctx, *pickupLoc, *destLoc)
		if err != nil {
			log.Printf("aggregate: route metrics unavailable: %v", err)
		} else {
			route = m
		}
	}

	quotes := s.fanOut(ctx, pickupLoc, destLoc, route, providers)
	sortQuotes(quotes)

	return &Response{
		Pickup:      pickup,
		Destination: destination,
		PickupLoc:   pickupLoc,
		DestLoc:     destLoc,
		Route:       route,
		Quotes:      quotes,
	}, nil
}

// resolveBoth geocodes the two addresses concurrently and waits for both;
// neither result short-circuits the other. Unresolvable is nil, not fatal.
func (s *Service) resolveBoth(ctx context.Context, pickup, destination string) (*types.Point, *types.Point) {
	var pickupLoc, destLoc *types.Point
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		pickupLoc = s.resolveOne(ctx, pickup)
	}()
	go func() {
		defer wg.Done()
		destLoc = s.resolveOne(ctx, destination)
	}()
	wg.Wait()
	return pickupLoc, destLoc
}

func (s *Service) resolveOne(ctx context.Context, address string) *types.Point {
	p, err := s.geo.Resolve(ctx, address)
	if err != nil {
		log.Printf("aggregate: geocode %q failed: %v", address, err)
		return nil
	}
	return p
}

// fanOut runs every adapter in its own goroutine and joins them all.
// Failures (including panics) only cost that adapter its slot; result
// order is by provider-list position, independent of completion order.
// Unresolved endpoints pass through as nil so coordinate-backed adapters
// fail instead of querying their upstream with a substituted location.
func (s *Service) fanOut(ctx context.Context, pickup, drop *types.Point, route *routing.Metrics, providers []provider.FareEstimator) []provider.Quote {
	results := make([]*provider.Quote, len(providers))

	var wg sync.WaitGroup
	for i, p := range providers {
		wg.Add(1)
		go func(i int, p provider.FareEstimator) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("aggregate: provider %s panicked: %v", p.Name(), r)
				}
			}()
			q, err := p.FareEstimate(ctx, pickup, drop, route)
			if err != nil {
				log.Printf("aggregate: provider %s failed: %v", p.Name(), err)
				return
			}
			results[i] = &q
		}(i, p)
	}
	wg.Wait()

	quotes := make([]provider.Quote, 0, len(providers))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

// sortQuotes orders by PriceMin ascending with nil prices last; the sort is
// stable so ties keep provider-list order.
func sortQuotes(quotes []provider.Quote) {
	sort.SliceStable(quotes, func(i, j int) bool {
		a, b := quotes[i].PriceMin, quotes[j].PriceMin
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
