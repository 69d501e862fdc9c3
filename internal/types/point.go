// README: Geographic point shared by the geo, routing, and provider modules.
package types

import "math"

type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether both fields are finite and within canonical
// WGS84 ranges.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return false
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
