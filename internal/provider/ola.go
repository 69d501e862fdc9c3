// README: Ola adapter; X-APP-TOKEN auth with query-parameter requests.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"faredeck/internal/routing"
	"faredeck/internal/types"
)

const olaTimeout = 4 * time.Second

// Ola talks to the Ola ride estimate and booking endpoints.
type Ola struct {
	baseURL    string
	appToken   string
	httpClient *http.Client
}

func NewOla(baseURL, appToken string) *Ola {
	return &Ola{
		baseURL:    baseURL,
		appToken:   appToken,
		httpClient: &http.Client{Timeout: olaTimeout},
	}
}

func (o *Ola) Name() string { return "ola" }

func (o *Ola) FareEstimate(ctx context.Context, pickup, drop *types.Point, _ *routing.Metrics) (Quote, error) {
	if pickup == nil || drop == nil {
		return Quote{}, fmt.Errorf("%w: ola: pickup or drop unresolved", ErrUnavailable)
	}
	q := url.Values{}
	q.Set("pickup_lat", fmt.Sprintf("%f", pickup.Lat))
	q.Set("pickup_lng", fmt.Sprintf("%f", pickup.Lng))
	q.Set("drop_lat", fmt.Sprintf("%f", drop.Lat))
	q.Set("drop_lng", fmt.Sprintf("%f", drop.Lng))
	q.Set("category", "sedan")

	var resp olaEstimateResponse
	if err := o.do(ctx, http.MethodGet, "/ride/estimate?"+q.Encode(), &resp); err != nil {
		return Quote{}, err
	}
	if len(resp.RideEstimates) == 0 {
		return Quote{}, fmt.Errorf("%w: ola: empty estimate", ErrUnavailable)
	}

	est := resp.RideEstimates[0]
	low, high := est.AmountMin, est.AmountMax
	return Quote{
		Provider:     "ola",
		VehicleClass: est.Category,
		PriceMin:     &low,
		PriceMax:     &high,
		Currency:     "INR",
		EtaMin:       est.PickupTimeMinutes,
		DurationMin:  est.TravelTimeMinutes,
	}, nil
}

func (o *Ola) BookRide(ctx context.Context, req BookingRequest) (Booking, error) {
	q := url.Values{}
	q.Set("pickup_lat", fmt.Sprintf("%f", req.Pickup.Lat))
	q.Set("pickup_lng", fmt.Sprintf("%f", req.Pickup.Lng))
	q.Set("drop_lat", fmt.Sprintf("%f", req.Drop.Lat))
	q.Set("drop_lng", fmt.Sprintf("%f", req.Drop.Lng))

	var resp olaBookingResponse
	if err := o.do(ctx, http.MethodPost, "/bookings/create?"+q.Encode(), &resp); err != nil {
		return Booking{}, err
	}
	return Booking{RideID: resp.BookingID, Status: normalizeOlaStatus(resp.Status)}, nil
}

func (o *Ola) RideStatus(ctx context.Context, rideID string) (RideState, error) {
	var resp olaBookingResponse
	if err := o.do(ctx, http.MethodGet, "/bookings/"+rideID, &resp); err != nil {
		return RideState{}, err
	}
	state := RideState{
		RideID: rideID,
		Status: normalizeOlaStatus(resp.Status),
		EtaMin: resp.EtaMinutes,
	}
	if resp.Driver != nil {
		state.Driver = &Driver{
			Name:         resp.Driver.Name,
			Car:          resp.Driver.CarModel,
			LicensePlate: resp.Driver.LicenseNumber,
		}
	}
	return state, nil
}

func (o *Ola) CancelRide(ctx context.Context, rideID string) (CancelResult, error) {
	var resp olaBookingResponse
	if err := o.do(ctx, http.MethodPut, "/bookings/"+rideID+"/cancel", &resp); err != nil {
		return CancelResult{}, err
	}
	return CancelResult{RideID: rideID, Status: StatusCancelled}, nil
}

func (o *Ola) do(ctx context.Context, method, pathAndQuery string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, o.baseURL+pathAndQuery, nil)
	if err != nil {
		return fmt.Errorf("%w: ola: create request: %v", ErrUnavailable, err)
	}
	// Ola uses a custom auth header rather than Bearer tokens.
	req.Header.Set("X-APP-TOKEN", o.appToken)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: ola: http: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: ola: status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: ola: decode response: %v", ErrUnavailable, err)
	}
	return nil
}

func normalizeOlaStatus(s string) RideStatus {
	switch s {
	case "ALLOTTING_DRIVER", "BOOKING_CREATED":
		return StatusSearching
	case "DRIVER_ALLOTTED":
		return StatusDriverAssigned
	case "DRIVER_REACHING_PICKUP", "RIDE_IN_PROGRESS":
		return StatusDriverEnRoute
	case "CANCELLED_BY_USER", "CANCELLED_BY_DRIVER":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// --- JSON types for the Ola API ---

type olaEstimateResponse struct {
	RideEstimates []olaEstimate `json:"ride_estimates"`
}

type olaEstimate struct {
	Category          string `json:"category"`
	AmountMin         int64  `json:"amount_min"`
	AmountMax         int64  `json:"amount_max"`
	PickupTimeMinutes int    `json:"pickup_time_in_minutes"`
	TravelTimeMinutes int    `json:"travel_time_in_minutes"`
}

type olaBookingResponse struct {
	BookingID  string     `json:"booking_id"`
	Status     string     `json:"status"`
	EtaMinutes int        `json:"eta_minutes"`
	Driver     *olaDriver `json:"driver"`
}

type olaDriver struct {
	Name          string `json:"name"`
	CarModel      string `json:"car_model"`
	LicenseNumber string `json:"license_number"`
}
