// README: Config loader with env defaults for HTTP, upstream maps APIs,
// remote providers, and optional Postgres/Redis backends.
package config

import (
	"os"
	"strconv"
)

type GeoConfig struct {
	// Backend selects the geocoder implementation: "nominatim" or "google".
	Backend      string
	NominatimURL string
	// CacheTTLSeconds controls the Redis geocode cache. 0 disables caching.
	CacheTTLSeconds int
}

type RoutingConfig struct {
	// Backend selects the route-metrics implementation: "olamaps", "google",
	// or "off". With "off" every response carries a null route and tariff
	// pricing falls back per FareConfig.FallbackDistanceKm.
	Backend    string
	OlaMapsURL string
	OlaMapsKey string
}

type ProviderConfig struct {
	UberURL string
	UberKey string
	OlaURL  string
	OlaKey  string
}

type FareConfig struct {
	// FallbackDistanceKm stands in for unknown route distance in tariff
	// pricing. 0 keeps the null-price path (no synthetic distance).
	FallbackDistanceKm float64
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		// DSN may be empty; the tariff table then runs on built-in defaults.
		DSN string
	}
	Redis struct {
		// Addr may be empty; geocode caching is then disabled.
		Addr string
	}
	Geo           GeoConfig
	Routing       RoutingConfig
	Providers     ProviderConfig
	Fare          FareConfig
	GoogleMapsKey string
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FAREDECK_HTTP_ADDR", ":8080")
	cfg.DB.DSN = envOrDefault("FAREDECK_DB_DSN", "")
	cfg.Redis.Addr = envOrDefault("FAREDECK_REDIS_ADDR", "")

	cfg.Geo.Backend = envOrDefault("FAREDECK_GEO_BACKEND", "nominatim")
	cfg.Geo.NominatimURL = envOrDefault("FAREDECK_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Geo.CacheTTLSeconds = envOrDefaultInt("FAREDECK_GEO_CACHE_TTL", 0)

	cfg.Routing.Backend = envOrDefault("FAREDECK_ROUTING_BACKEND", "olamaps")
	cfg.Routing.OlaMapsURL = envOrDefault("FAREDECK_OLAMAPS_URL", "https://api.olamaps.io")
	cfg.Routing.OlaMapsKey = envOrDefault("OLA_MAPS_KEY", "")

	cfg.Providers.UberURL = envOrDefault("UBER_API_URL", "")
	cfg.Providers.UberKey = envOrDefault("UBER_API_KEY", "")
	cfg.Providers.OlaURL = envOrDefault("OLA_API_URL", "")
	cfg.Providers.OlaKey = envOrDefault("OLA_API_KEY", "")

	cfg.Fare.FallbackDistanceKm = envOrDefaultFloat("FAREDECK_FALLBACK_DISTANCE_KM", 0)
	cfg.GoogleMapsKey = envOrDefault("GOOGLE_MAPS_API_KEY", "")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
