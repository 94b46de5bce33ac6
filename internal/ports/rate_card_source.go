package ports

import (
	"context"
	"errors"

	"fulfillment-routing-service/internal/domain"
)

var ErrRateCardNotFound = errors.New("rate card not found")

// Port: a read-only boundary for the vendor pricing contracts to route across.
type RateCardSource interface {
	// Return every rate card in catalog order.
	ListRateCards(ctx context.Context) ([]domain.RateCard, error)
	// Return one rate card, or ErrRateCardNotFound.
	GetRateCard(ctx context.Context, id string) (domain.RateCard, error)
}
