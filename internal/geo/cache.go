// README: Redis-backed positive cache decorating any Resolver.
package geo

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"faredeck/internal/types"
)

const cacheKeyPrefix = "geo:addr:"

// CachedResolver wraps another Resolver with a Redis cache of successful
// lookups. Misses, no-match results, and upstream errors are never cached,
// and any Redis failure falls through to the inner resolver.
type CachedResolver struct {
	inner Resolver
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedResolver(inner Resolver, rdb *redis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{inner: inner, redis: rdb, ttl: ttl}
}

func (c *CachedResolver) Resolve(ctx context.Context, address string) (*types.Point, error) {
	key := cacheKey(address)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		if p, ok := decodePoint(val); ok {
			return p, nil
		}
	} else if err != redis.Nil {
		log.Printf("geo: cache read failed, bypassing: %v", err)
	}

	p, err := c.inner.Resolve(ctx, address)
	if err != nil || p == nil {
		return p, err
	}

	if err := c.redis.Set(ctx, key, encodePoint(p), c.ttl).Err(); err != nil {
		log.Printf("geo: cache write failed: %v", err)
	}
	return p, nil
}

// encodePoint and decodePoint round-trip coordinates losslessly; the
// shortest exact float representation avoids drift between a cached hit
// and the original resolution.
func encodePoint(p *types.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

func decodePoint(val string) (*types.Point, bool) {
	latStr, lngStr, ok := strings.Cut(val, ",")
	if !ok {
		return nil, false
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, false
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, false
	}
	p := types.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return nil, false
	}
	return &p, true
}

func cacheKey(address string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(address))
}
