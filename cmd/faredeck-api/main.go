// README: Entry point; loads config, wires resolvers and provider
// adapters, starts the HTTP server.
package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"faredeck/internal/aggregate"
	"faredeck/internal/config"
	"faredeck/internal/fare"
	"faredeck/internal/geo"
	httptransport "faredeck/internal/http"
	"faredeck/internal/infra"
	"faredeck/internal/provider"
	"faredeck/internal/routing"
)

// catalog is the tariff-priced provider lineup, in ranking tie-break order.
var catalog = []struct {
	Provider     string
	VehicleClass string
}{
	{"Uber", "Go"},
	{"Ola", "Mini"},
	{"Rapido", "Bike"},
	{"Yatri Sathi", "Cab"},
	{"Indrive", "Car"},
	{"BluSmart", "Electric"},
	{"Uber", "Premier"},
	{"Ola", "Prime"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geocoder := buildGeocoder(cfg)
	routes := buildRouter(cfg)
	table := buildTariffTable(ctx, cfg)

	registry := provider.NewRegistry()
	for _, entry := range catalog {
		registry.Register(provider.NewTariffEstimator(entry.Provider, entry.VehicleClass, table, cfg.Fare.FallbackDistanceKm))
	}
	jitter := rand.New(rand.NewSource(time.Now().UnixNano()))
	registry.Register(provider.NewNammaYatri(table, cfg.Fare.FallbackDistanceKm, jitter))
	if cfg.Providers.UberURL != "" {
		registry.Register(provider.NewUber(cfg.Providers.UberURL, cfg.Providers.UberKey))
	}
	if cfg.Providers.OlaURL != "" {
		registry.Register(provider.NewOla(cfg.Providers.OlaURL, cfg.Providers.OlaKey))
	}

	agg := aggregate.NewService(geocoder, routes)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(agg, registry),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func buildGeocoder(cfg config.Config) geo.Resolver {
	var geocoder geo.Resolver
	switch cfg.Geo.Backend {
	case "google":
		if cfg.GoogleMapsKey == "" {
			log.Fatal("GOOGLE_MAPS_API_KEY is required for the google geocoder")
		}
		g, err := geo.NewGoogleResolver(cfg.GoogleMapsKey)
		if err != nil {
			log.Fatalf("google geocoder init: %v", err)
		}
		geocoder = g
	default:
		geocoder = geo.NewNominatimResolver(cfg.Geo.NominatimURL)
	}

	if cfg.Redis.Addr != "" && cfg.Geo.CacheTTLSeconds > 0 {
		ttl := time.Duration(cfg.Geo.CacheTTLSeconds) * time.Second
		geocoder = geo.NewCachedResolver(geocoder, infra.NewRedis(cfg.Redis.Addr), ttl)
	}
	return geocoder
}

func buildRouter(cfg config.Config) routing.Resolver {
	switch cfg.Routing.Backend {
	case "google":
		if cfg.GoogleMapsKey == "" {
			log.Fatal("GOOGLE_MAPS_API_KEY is required for the google router")
		}
		g, err := routing.NewGoogleResolver(cfg.GoogleMapsKey)
		if err != nil {
			log.Fatalf("google router init: %v", err)
		}
		return g
	case "off":
		return nil
	default:
		return routing.NewOlaMapsResolver(cfg.Routing.OlaMapsURL, cfg.Routing.OlaMapsKey)
	}
}

// buildTariffTable merges Postgres overrides over the built-in catalog.
// A missing or unreachable database keeps the service up on defaults.
func buildTariffTable(ctx context.Context, cfg config.Config) fare.Table {
	table := fare.DefaultTable()
	if cfg.DB.DSN == "" {
		return table
	}
	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Printf("fare rates db unavailable, using built-in tariffs: %v", err)
		return table
	}
	overrides, err := fare.NewStore(dbPool).LoadRates(ctx)
	if err != nil {
		log.Printf("fare rates load failed, using built-in tariffs: %v", err)
		return table
	}
	return table.Merge(overrides)
}
