package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"fulfillment-routing-service/internal/api/dto"
	"fulfillment-routing-service/internal/platform/obs"
	"fulfillment-routing-service/internal/ports"
)

type RateCardHandler struct {
	Catalog ports.RateCardSource
}

func (h *RateCardHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Catalog.ListRateCards(r.Context())
	if err != nil {
		obs.FromContext(r.Context()).Error("list rate cards failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "failed to load rate cards")
		return
	}

	res := dto.ListRateCardsResponse{RateCards: make([]dto.RateCardResponse, 0, len(cards))}
	for _, c := range cards {
		res.RateCards = append(res.RateCards, dto.NewRateCardResponse(c))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *RateCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.Catalog.GetRateCard(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ports.ErrRateCardNotFound) {
		writeError(w, r, http.StatusNotFound, "rate card not found")
		return
	}
	if err != nil {
		obs.FromContext(r.Context()).Error("get rate card failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "failed to load rate card")
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewRateCardResponse(card))
}
