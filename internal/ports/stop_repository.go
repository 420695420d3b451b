package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Port: a boundary for retrieving and replacing the Stop records that
// feed the optimization pipeline.
type StopRepository interface {
	// Retrieve all stops available for routing, in insertion order.
	ListStops(ctx context.Context) ([]domain.Stop, error)
	// Replace the stored stop set with a freshly uploaded one.
	ReplaceStops(ctx context.Context, stops []domain.Stop) error
}
