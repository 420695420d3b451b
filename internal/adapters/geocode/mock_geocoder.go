package geocode

import (
	"context"
	"fmt"

	"route-optimizer-service/internal/domain"
)

// MockEntry seeds the mock geocoder with a fixed resolution.
type MockEntry struct {
	Address string
	Lat     float64
	Lng     float64
}

// MockGeocoder resolves addresses from a fixed table; used in tests.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(entries []MockEntry) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(entries))
	for _, e := range entries {
		m[e.Address] = domain.Coordinates{Lat: e.Lat, Lng: e.Lng}
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address, locality string) (domain.Coordinates, error) {
	coord, ok := g.m[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("missing geocode entry for %q", address)
	}
	return coord, nil
}
