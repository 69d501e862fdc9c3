package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"faredeck/internal/aggregate"
	"faredeck/internal/fare"
	httptransport "faredeck/internal/http"
	"faredeck/internal/provider"
	"faredeck/internal/routing"
	"faredeck/internal/types"
)

// fixedGeo resolves every address to the same point.
type fixedGeo struct{}

func (fixedGeo) Resolve(_ context.Context, _ string) (*types.Point, error) {
	return &types.Point{Lat: 12.9719, Lng: 77.6412}, nil
}

// fixedRoutes reports a constant route.
type fixedRoutes struct{}

func (fixedRoutes) Resolve(_ context.Context, _, _ types.Point) (*routing.Metrics, error) {
	return &routing.Metrics{DistanceKm: 5.0, DurationMin: 20}, nil
}

func buildTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	table := fare.DefaultTable()
	registry := provider.NewRegistry()
	registry.Register(provider.NewTariffEstimator("Uber", "Go", table, 0))
	registry.Register(provider.NewTariffEstimator("Ola", "Mini", table, 0))
	agg := aggregate.NewService(fixedGeo{}, fixedRoutes{})
	return httptransport.NewRouter(agg, registry)
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAggregate_MissingParams(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/api/rides?pickup=Indiranagar")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAggregate_ReturnsRankedQuotes(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/api/rides?pickup=Indiranagar&destination=Koramangala")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp aggregate.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(resp.Quotes))
	}
	// Uber-Go 109 vs Ola-Mini 55+3.5*13 = 100.5 -> 101 at 5 km.
	if resp.Quotes[0].Provider != "Ola" || resp.Quotes[1].Provider != "Uber" {
		t.Errorf("unexpected ranking: %+v", resp.Quotes)
	}
	if resp.Route == nil || resp.Route.DistanceKm != 5.0 {
		t.Errorf("bad route: %+v", resp.Route)
	}
}

func TestEstimate_UnknownProvider(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/api/rides/lyft/fare?pickup=A&destination=B")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestEstimate_SingleProvider(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/api/rides/uber-go/fare?pickup=A&destination=B")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var q provider.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatal(err)
	}
	if q.Provider != "Uber" || q.PriceMin == nil || *q.PriceMin != 109 {
		t.Errorf("bad quote: %+v", q)
	}
}

func TestBook_ProviderWithoutBooking(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodPost, "/api/rides/uber-go/book")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for non-booking provider, got %d", w.Code)
	}
}

func TestStatus_UnknownProvider(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/api/rides/lyft/status/RIDE-1")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := buildTestRouter()
	w := doRequest(r, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
