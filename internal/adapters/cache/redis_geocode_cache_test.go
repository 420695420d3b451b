package cache

import (
	"context"
	"testing"

	"route-optimizer-service/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *RedisGeocodeCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisGeocodeCache(client)
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	want := map[string]domain.Coordinates{
		"Carrera 7 #32-18": {Lat: 4.6097, Lng: -74.0817},
		"Calle 100 #15-20": {Lat: 4.6954, Lng: -74.0308},
	}

	if err := c.PutMany(ctx, want); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Carrera 7 #32-18", "Calle 100 #15-20", "Unknown 1 #2-3"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	for addr, coord := range want {
		if got[addr] != coord {
			t.Errorf("entry %q = %+v, want %+v", addr, got[addr], coord)
		}
	}
}

func TestRedisGeocodeCacheIgnoresCorruptEntries(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	if err := srv.Set(geocodeKeyPrefix+"Broken 1", "not-a-coordinate"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	c := NewRedisGeocodeCache(client)
	got, err := c.GetMany(context.Background(), []string{"Broken 1"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("corrupt entry returned as hit: %+v", got)
	}
}

func TestRedisGeocodeCacheEmptyInputs(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	got, err := c.GetMany(ctx, nil)
	if err != nil {
		t.Fatalf("GetMany(nil): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("GetMany(nil) returned %d entries", len(got))
	}

	if err := c.PutMany(ctx, nil); err != nil {
		t.Fatalf("PutMany(nil): %v", err)
	}
}
