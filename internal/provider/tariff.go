// README: Local adapters pricing off the fare tariff table instead of a
// remote API.
package provider

import (
	"context"
	"math/rand"

	"faredeck/internal/fare"
	"faredeck/internal/routing"
	"faredeck/internal/types"
)

// basePickupEtaMin is the pickup estimate reported by tariff adapters,
// which have no live driver positions to draw on.
const basePickupEtaMin = 3

// TariffEstimator prices a single (provider, vehicleClass) catalog entry
// from the tariff table and the route metrics handed in by the aggregator.
// It never fails: with a nil route and no fallback distance it returns a
// quote with nil prices, which sorts last.
type TariffEstimator struct {
	provider     string
	vehicleClass string
	table        fare.Table

	// fallbackKm, when positive, stands in for unknown route distance.
	// It is a configuration constant, never a guessed coordinate pair.
	fallbackKm float64

	// jitter is an optional, explicitly injected randomness source used by
	// demo providers to spread quotes. Nil means fully deterministic.
	jitter *rand.Rand
}

func NewTariffEstimator(providerName, vehicleClass string, table fare.Table, fallbackKm float64) *TariffEstimator {
	return &TariffEstimator{
		provider:     providerName,
		vehicleClass: vehicleClass,
		table:        table,
		fallbackKm:   fallbackKm,
	}
}

// NewNammaYatri builds the Namma Yatri demo adapter. jitter must be a
// seeded source owned by the caller; pass nil for deterministic quotes.
func NewNammaYatri(table fare.Table, fallbackKm float64, jitter *rand.Rand) *TariffEstimator {
	return &TariffEstimator{
		provider:     "Namma Yatri",
		vehicleClass: "Auto",
		table:        table,
		fallbackKm:   fallbackKm,
		jitter:       jitter,
	}
}

func (t *TariffEstimator) Name() string {
	return t.provider + "-" + t.vehicleClass
}

func (t *TariffEstimator) FareEstimate(_ context.Context, _, _ *types.Point, route *routing.Metrics) (Quote, error) {
	var distanceKm *float64
	durationMin := 0
	switch {
	case route != nil:
		distanceKm = &route.DistanceKm
		durationMin = route.DurationMin
	case t.fallbackKm > 0:
		distanceKm = &t.fallbackKm
	}

	rate := t.table.Rate(t.provider, t.vehicleClass)
	q := Quote{
		Provider:     t.provider,
		VehicleClass: t.vehicleClass,
		Currency:     rate.Currency,
		EtaMin:       basePickupEtaMin,
		DurationMin:  durationMin,
	}

	priceMin := t.table.Price(t.provider, t.vehicleClass, distanceKm)
	if priceMin == nil {
		return q, nil
	}

	min := *priceMin
	max := min
	if t.jitter != nil {
		// Spread mirrors the original demo behavior: min shifts by up to
		// ±10, max lands 10-35 above min, pickup eta gains 0-3 minutes.
		min += int64(t.jitter.Intn(21)) - 10
		if min < 0 {
			min = 0
		}
		max = min + 10 + int64(t.jitter.Intn(26))
		q.EtaMin += t.jitter.Intn(4)
	}
	q.PriceMin = &min
	q.PriceMax = &max
	return q, nil
}
