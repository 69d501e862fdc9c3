// README: Uber adapter; real HTTP client with Bearer auth and payload
// normalization.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"faredeck/internal/routing"
	"faredeck/internal/types"
)

const uberTimeout = 4 * time.Second

// Uber talks to the Uber estimates and requests endpoints.
type Uber struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewUber(baseURL, apiKey string) *Uber {
	return &Uber{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: uberTimeout},
	}
}

func (u *Uber) Name() string { return "uber" }

func (u *Uber) FareEstimate(ctx context.Context, pickup, drop *types.Point, _ *routing.Metrics) (Quote, error) {
	if pickup == nil || drop == nil {
		return Quote{}, fmt.Errorf("%w: uber: pickup or drop unresolved", ErrUnavailable)
	}
	body := uberEstimateRequest{
		StartLatitude:  pickup.Lat,
		StartLongitude: pickup.Lng,
		EndLatitude:    drop.Lat,
		EndLongitude:   drop.Lng,
	}

	var resp uberEstimateResponse
	if err := u.do(ctx, http.MethodPost, "/estimates/price", body, &resp); err != nil {
		return Quote{}, err
	}
	if len(resp.Prices) == 0 {
		return Quote{}, fmt.Errorf("%w: uber: empty estimate", ErrUnavailable)
	}

	est := resp.Prices[0]
	low, high := est.LowEstimate, est.HighEstimate
	return Quote{
		Provider:     "uber",
		VehicleClass: est.DisplayName,
		PriceMin:     &low,
		PriceMax:     &high,
		Currency:     est.CurrencyCode,
		EtaMin:       int(math.Round(est.PickupEstimateSeconds / 60.0)),
		DurationMin:  int(math.Round(est.DurationSeconds / 60.0)),
	}, nil
}

func (u *Uber) BookRide(ctx context.Context, req BookingRequest) (Booking, error) {
	body := uberEstimateRequest{
		StartLatitude:  req.Pickup.Lat,
		StartLongitude: req.Pickup.Lng,
		EndLatitude:    req.Drop.Lat,
		EndLongitude:   req.Drop.Lng,
	}
	var resp uberRequestResponse
	if err := u.do(ctx, http.MethodPost, "/requests", body, &resp); err != nil {
		return Booking{}, err
	}
	return Booking{RideID: resp.RequestID, Status: normalizeUberStatus(resp.Status)}, nil
}

func (u *Uber) RideStatus(ctx context.Context, rideID string) (RideState, error) {
	var resp uberRequestResponse
	if err := u.do(ctx, http.MethodGet, "/requests/"+rideID, nil, &resp); err != nil {
		return RideState{}, err
	}
	state := RideState{
		RideID: rideID,
		Status: normalizeUberStatus(resp.Status),
		EtaMin: int(math.Round(resp.PickupEstimateSeconds / 60.0)),
	}
	if resp.Driver != nil {
		state.Driver = &Driver{
			Name:         resp.Driver.Name,
			Car:          resp.Driver.Car,
			LicensePlate: resp.Driver.LicensePlate,
		}
	}
	return state, nil
}

func (u *Uber) CancelRide(ctx context.Context, rideID string) (CancelResult, error) {
	var resp uberCancelResponse
	if err := u.do(ctx, http.MethodDelete, "/requests/"+rideID, nil, &resp); err != nil {
		return CancelResult{}, err
	}
	result := CancelResult{RideID: rideID, Status: StatusCancelled}
	if resp.Refund != nil {
		result.Refund = &types.Money{Amount: resp.Refund.Amount, Currency: resp.Refund.Currency}
	}
	return result, nil
}

// do performs one call against the Uber API and decodes the JSON response
// into out (skipped when out is nil).
func (u *Uber) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: uber: marshal request: %v", ErrUnavailable, err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: uber: create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+u.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: uber: http: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: uber: status %d", ErrUnavailable, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: uber: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func normalizeUberStatus(s string) RideStatus {
	switch s {
	case "processing", "searching":
		return StatusSearching
	case "accepted":
		return StatusDriverAssigned
	case "arriving", "in_progress":
		return StatusDriverEnRoute
	case "rider_canceled", "driver_canceled":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// --- JSON types for the Uber API ---

type uberEstimateRequest struct {
	StartLatitude  float64 `json:"start_latitude"`
	StartLongitude float64 `json:"start_longitude"`
	EndLatitude    float64 `json:"end_latitude"`
	EndLongitude   float64 `json:"end_longitude"`
}

type uberEstimateResponse struct {
	Prices []uberPrice `json:"prices"`
}

type uberPrice struct {
	DisplayName           string  `json:"display_name"`
	CurrencyCode          string  `json:"currency_code"`
	LowEstimate           int64   `json:"low_estimate"`
	HighEstimate          int64   `json:"high_estimate"`
	PickupEstimateSeconds float64 `json:"pickup_estimate"`
	DurationSeconds       float64 `json:"duration"`
}

type uberRequestResponse struct {
	RequestID             string      `json:"request_id"`
	Status                string      `json:"status"`
	PickupEstimateSeconds float64     `json:"pickup_estimate"`
	Driver                *uberDriver `json:"driver"`
}

type uberDriver struct {
	Name         string `json:"name"`
	Car          string `json:"car"`
	LicensePlate string `json:"license_plate"`
}

type uberCancelResponse struct {
	Refund *uberRefund `json:"refund"`
}

type uberRefund struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
