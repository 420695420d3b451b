package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Contract for resolving street addresses to geographic coordinates.
type Geocoder interface {
	// Resolve a single address within the service area. Implementations
	// must return coordinates inside the configured bounds, falling back
	// to locality centers when the address cannot be resolved exactly.
	Geocode(ctx context.Context, address, locality string) (domain.Coordinates, error)
}
