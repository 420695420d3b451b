package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Port: a persistent cache mapping normalized address strings to
// coordinates, shared by all geocoder adapters.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses; absent addresses
	// are simply missing from the result map.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
