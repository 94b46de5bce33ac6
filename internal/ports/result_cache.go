package ports

import (
	"context"

	"fulfillment-routing-service/internal/domain"
)

// Optional cache of routing results keyed by a digest of the evaluation inputs.
// Evaluation is pure, so a hit is interchangeable with a fresh evaluation.
type ResultCache interface {
	Get(ctx context.Context, key string) (domain.SimulationResult, bool, error)
	Put(ctx context.Context, key string, res domain.SimulationResult) error
}
