package domain

import (
	"time"

	"github.com/google/uuid"
)

// Represents one recorded routing request and its outcome.
type SimulationRun struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	Destination string
	RateCardIDs []string
	Items       []OrderItem
	Result      SimulationResult
	CacheHit    bool
}
