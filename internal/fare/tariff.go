// README: Pure fare calculation over a static per-provider tariff table.
package fare

import "math"

// Rate is a two-segment linear tariff: a flat minimum fare covering
// ThresholdKm, plus a marginal per-kilometre rate beyond it.
type Rate struct {
	ThresholdKm float64
	BaseFare    float64
	PerKm       float64
	Currency    string
}

// genericRate applies to any (provider, vehicleClass) pair without an
// explicit entry.
var genericRate = Rate{ThresholdKm: 0, BaseFare: 40, PerKm: 12, Currency: "INR"}

// Table maps "provider-vehicleClass" keys to tariffs.
type Table map[string]Rate

// DefaultTable returns the built-in tariff catalog.
func DefaultTable() Table {
	return Table{
		Key("Rapido", "Bike"):       {ThresholdKm: 2, BaseFare: 35, PerKm: 8, Currency: "INR"},
		Key("Yatri Sathi", "Cab"):   {ThresholdKm: 1.5, BaseFare: 50, PerKm: 12, Currency: "INR"},
		Key("Ola", "Mini"):          {ThresholdKm: 1.5, BaseFare: 55, PerKm: 13, Currency: "INR"},
		Key("Indrive", "Car"):       {ThresholdKm: 1.5, BaseFare: 55, PerKm: 13.5, Currency: "INR"},
		Key("Uber", "Go"):           {ThresholdKm: 1.5, BaseFare: 60, PerKm: 14, Currency: "INR"},
		Key("BluSmart", "Electric"): {ThresholdKm: 2, BaseFare: 75, PerKm: 15, Currency: "INR"},
		Key("Uber", "Premier"):      {ThresholdKm: 1.5, BaseFare: 80, PerKm: 18, Currency: "INR"},
		Key("Ola", "Prime"):         {ThresholdKm: 1.5, BaseFare: 85, PerKm: 17, Currency: "INR"},
		Key("Namma Yatri", "Auto"):  {ThresholdKm: 0, BaseFare: 40, PerKm: 15, Currency: "INR"},
	}
}

// Key builds the table lookup key for a (provider, vehicleClass) pair.
func Key(provider, vehicleClass string) string {
	return provider + "-" + vehicleClass
}

// Rate returns the tariff for the pair, falling back to the generic rate.
func (t Table) Rate(provider, vehicleClass string) Rate {
	if r, ok := t[Key(provider, vehicleClass)]; ok {
		return r
	}
	return genericRate
}

// Price maps (provider, vehicleClass, distance) to a price in whole
// currency units, rounded to nearest. A nil or non-positive distance yields
// a nil price: the fare cannot be computed without a distance. The function
// is deterministic; any demo jitter lives in the provider layer behind an
// injected randomness source.
func (t Table) Price(provider, vehicleClass string, distanceKm *float64) *int64 {
	if distanceKm == nil || *distanceKm <= 0 {
		return nil
	}
	r := t.Rate(provider, vehicleClass)

	price := r.BaseFare
	if *distanceKm > r.ThresholdKm {
		price += (*distanceKm - r.ThresholdKm) * r.PerKm
	}
	rounded := int64(math.Round(price))
	return &rounded
}

// Merge overlays rates onto a copy of the table, leaving t untouched.
func (t Table) Merge(overrides map[string]Rate) Table {
	merged := make(Table, len(t)+len(overrides))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
