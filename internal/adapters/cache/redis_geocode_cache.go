package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"route-optimizer-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

// Redis-backed geocode cache. Coordinates are stored as "lat,lng" under
// a prefixed address key; entries are kept without expiry because
// geocoded street addresses do not move.
type RedisGeocodeCache struct {
	Client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client}
}

// Fetch cached coordinates for the given addresses.
func (r *RedisGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
		keys = append(keys, geocodeKeyPrefix+a)
	}

	if len(keys) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	values, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range values {
		if v == nil {
			continue
		}
		raw, ok := v.(string)
		if !ok {
			continue
		}
		coord, err := parseCoord(raw)
		if err != nil {
			// Corrupt entries are treated as misses so they get rewritten.
			continue
		}
		out[uniq[i]] = coord
	}

	return out, nil
}

// Store address -> coordinate mappings in the cache.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pairs := make([]any, 0, 2*len(results))
	for addr, coord := range results {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		pairs = append(pairs, geocodeKeyPrefix+addr, formatCoord(coord))
	}
	if len(pairs) == 0 {
		return nil
	}

	if err := r.Client.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("put geocode cache: redis mset: %w", err)
	}

	return nil
}

func formatCoord(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

func parseCoord(raw string) (domain.Coordinates, error) {
	lat, lng, ok := strings.Cut(raw, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("malformed coordinate entry %q", raw)
	}

	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat %q: %w", lat, err)
	}
	lngF, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lng %q: %w", lng, err)
	}

	return domain.Coordinates{Lat: latF, Lng: lngF}, nil
}
