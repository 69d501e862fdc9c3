package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"faredeck/internal/types"
)

var (
	testPickup = &types.Point{Lat: 12.9719, Lng: 77.6412}
	testDrop   = &types.Point{Lat: 12.9352, Lng: 77.6245}
)

func TestUber_FareEstimate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/estimates/price" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prices":[{
			"display_name":"UberGo",
			"currency_code":"INR",
			"low_estimate":110,
			"high_estimate":140,
			"pickup_estimate":240,
			"duration":1500
		}]}`))
	}))
	defer srv.Close()

	u := NewUber(srv.URL, "test-key")
	q, err := u.FareEstimate(context.Background(), testPickup, testDrop, nil)
	if err != nil {
		t.Fatal(err)
	}
	if q.Provider != "uber" || q.VehicleClass != "UberGo" || q.Currency != "INR" {
		t.Errorf("bad identity fields: %+v", q)
	}
	if q.PriceMin == nil || *q.PriceMin != 110 || q.PriceMax == nil || *q.PriceMax != 140 {
		t.Errorf("bad price normalization: %+v", q)
	}
	if q.EtaMin != 4 {
		t.Errorf("expected eta 4 min from 240s, got %d", q.EtaMin)
	}
	if q.DurationMin != 25 {
		t.Errorf("expected duration 25 min from 1500s, got %d", q.DurationMin)
	}
}

func TestUber_FareEstimateFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "unparseable payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
		{
			name: "empty estimate list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"prices":[]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			u := NewUber(srv.URL, "test-key")
			q, err := u.FareEstimate(context.Background(), testPickup, testDrop, nil)
			if !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable, got %v", err)
			}
			if q != (Quote{}) {
				t.Errorf("expected zero quote on failure, got %+v", q)
			}
		})
	}
}

// TestUber_FareEstimateUnresolvedPoints: a nil endpoint means the address
// never resolved; the adapter must fail without contacting the upstream
// instead of estimating from a made-up location.
func TestUber_FareEstimateUnresolvedPoints(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	u := NewUber(srv.URL, "test-key")
	for _, tc := range []struct {
		name         string
		pickup, drop *types.Point
	}{
		{"nil pickup", nil, testDrop},
		{"nil drop", testPickup, nil},
		{"both nil", nil, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := u.FareEstimate(context.Background(), tc.pickup, tc.drop, nil); !errors.Is(err, ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable, got %v", err)
			}
		})
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("upstream contacted %d times with unresolved points", hits)
	}
}

func TestUber_FareEstimateConnectionRefused(t *testing.T) {
	u := NewUber("http://127.0.0.1:1", "test-key")
	if _, err := u.FareEstimate(context.Background(), testPickup, testDrop, nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestUber_BookStatusCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/requests":
			_, _ = w.Write([]byte(`{"request_id":"UBER-42","status":"processing"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/requests/UBER-42":
			_, _ = w.Write([]byte(`{
				"request_id":"UBER-42",
				"status":"arriving",
				"pickup_estimate":180,
				"driver":{"name":"John Doe","car":"Toyota Camry","license_plate":"UB1234"}
			}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/requests/UBER-42":
			_, _ = w.Write([]byte(`{"refund":{"amount":0,"currency":"INR"}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	u := NewUber(srv.URL, "test-key")
	ctx := context.Background()

	booking, err := u.BookRide(ctx, BookingRequest{Pickup: *testPickup, Drop: *testDrop})
	if err != nil {
		t.Fatal(err)
	}
	if booking.RideID != "UBER-42" || booking.Status != StatusSearching {
		t.Errorf("bad booking: %+v", booking)
	}

	state, err := u.RideStatus(ctx, booking.RideID)
	if err != nil {
		t.Fatal(err)
	}
	if state.Status != StatusDriverEnRoute || state.EtaMin != 3 {
		t.Errorf("bad state: %+v", state)
	}
	if state.Driver == nil || state.Driver.Name != "John Doe" {
		t.Errorf("bad driver: %+v", state.Driver)
	}

	result, err := u.CancelRide(ctx, booking.RideID)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != StatusCancelled {
		t.Errorf("bad cancel status: %+v", result)
	}
	if result.Refund == nil || result.Refund.Currency != "INR" {
		t.Errorf("bad refund: %+v", result.Refund)
	}
}
