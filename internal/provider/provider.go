// Package provider normalizes external ride-hailing services into a
// canonical quote and booking shape. Each adapter owns its own client
// configuration and translation from the provider's native payload; payload
// shapes are not under this system's control and change independently.
package provider

import (
	"context"
	"errors"

	"faredeck/internal/routing"
	"faredeck/internal/types"
)

// ErrUnavailable marks a single-provider failure: upstream error, timeout,
// or unparseable payload. The aggregation boundary swallows it.
var ErrUnavailable = errors.New("provider unavailable")

// Quote is the canonical fare estimate shape returned by all adapters.
// PriceMin and PriceMax are nil when the fare could not be computed (for
// tariff-backed adapters, when route distance is unknown); such quotes are
// still successes and sort after priced ones.
type Quote struct {
	Provider     string `json:"provider"`
	VehicleClass string `json:"vehicle_class"`
	PriceMin     *int64 `json:"price_min"`
	PriceMax     *int64 `json:"price_max"`
	Currency     string `json:"currency"`
	EtaMin       int    `json:"eta_min"`
	DurationMin  int    `json:"duration_min"`
}

// FareEstimator is the capability every adapter must implement.
type FareEstimator interface {
	Name() string
	// FareEstimate returns a fully populated quote or an error wrapping
	// ErrUnavailable; never a partially populated quote. pickup and drop
	// are nil when the address could not be resolved; adapters that query
	// an upstream with coordinates must fail with ErrUnavailable rather
	// than substitute a location. Implementations enforce their own
	// upstream timeout.
	FareEstimate(ctx context.Context, pickup, drop *types.Point, route *routing.Metrics) (Quote, error)
}

// RideStatus is the small enumerated set shared across providers.
type RideStatus string

const (
	StatusSearching      RideStatus = "SEARCHING"
	StatusDriverAssigned RideStatus = "DRIVER_ASSIGNED"
	StatusDriverEnRoute  RideStatus = "DRIVER_EN_ROUTE"
	StatusCancelled      RideStatus = "CANCELLED"
	StatusUnknown        RideStatus = "UNKNOWN"
)

type BookingRequest struct {
	Pickup       types.Point
	Drop         types.Point
	VehicleClass string
}

// Booking identifies a newly created ride by an opaque provider id.
type Booking struct {
	RideID string     `json:"ride_id"`
	Status RideStatus `json:"status"`
}

type Driver struct {
	Name         string `json:"name"`
	Car          string `json:"car"`
	LicensePlate string `json:"license_plate"`
}

type RideState struct {
	RideID string     `json:"ride_id"`
	Status RideStatus `json:"status"`
	Driver *Driver    `json:"driver,omitempty"`
	EtaMin int        `json:"eta_min"`
}

type CancelResult struct {
	RideID string       `json:"ride_id"`
	Status RideStatus   `json:"status"`
	Refund *types.Money `json:"refund,omitempty"`
}

// Booker is the optional booking capability. Each operation is independent
// and keyed by the opaque ride id; no state is shared across calls.
type Booker interface {
	BookRide(ctx context.Context, req BookingRequest) (Booking, error)
	RideStatus(ctx context.Context, rideID string) (RideState, error)
	CancelRide(ctx context.Context, rideID string) (CancelResult, error)
}
