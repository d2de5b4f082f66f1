package ports

import (
	"context"
	"fleet-dispatch-service/internal/domain"
)

// Port: the external optimization collaborator.
// The caller treats the result as an opaque black box: stops are trusted to be
// pre-sorted by the collaborator and coordinates are not re-validated locally.
type RouteOptimizer interface {
	// Parse raw manifest text and return a fully formed route plan.
	OptimizeManifest(ctx context.Context, manifest string) (*domain.RoutePlan, error)
}
