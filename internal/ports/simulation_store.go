package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"fulfillment-routing-service/internal/domain"
)

var ErrSimulationNotFound = errors.New("simulation run not found")

// Port: an append-only log of routing decisions.
type SimulationStore interface {
	SaveRun(ctx context.Context, run domain.SimulationRun) error
	// Return a stored run, or ErrSimulationNotFound.
	GetRun(ctx context.Context, id uuid.UUID) (domain.SimulationRun, error)
}
