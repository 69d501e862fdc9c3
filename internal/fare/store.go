// README: Tariff override store backed by PostgreSQL.
package fare

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// LoadRates reads tariff overrides keyed by (provider, vehicle_class).
// Callers merge the result over DefaultTable; on error the built-in table
// stands alone.
func (s *Store) LoadRates(ctx context.Context) (map[string]Rate, error) {
	rows, err := s.db.Query(ctx,
		`SELECT provider, vehicle_class, threshold_km, base_fare, per_km, currency
		 FROM fare_rates`)
	if err != nil {
		return nil, fmt.Errorf("fare: load rates: %w", err)
	}
	defer rows.Close()

	rates := make(map[string]Rate)
	for rows.Next() {
		var provider, vehicleClass string
		var r Rate
		if err := rows.Scan(&provider, &vehicleClass, &r.ThresholdKm, &r.BaseFare, &r.PerKm, &r.Currency); err != nil {
			return nil, fmt.Errorf("fare: scan rate: %w", err)
		}
		rates[Key(provider, vehicleClass)] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fare: load rates: %w", err)
	}
	return rates, nil
}
