package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fulfillment-routing-service/internal/api/dto"
	"fulfillment-routing-service/internal/platform/obs"
	"fulfillment-routing-service/internal/ports"
	"fulfillment-routing-service/internal/services"
)

type SimulationHandler struct {
	Service  *services.RoutingService
	Validate *validator.Validate
}

// Create routes one order across the requested rate cards and returns the
// ranked candidates with the selected vendor.
func (h *SimulationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, r, err)
		return
	}

	run, err := h.Service.Simulate(r.Context(), services.SimulateRequest{
		Destination: req.Destination,
		Items:       req.OrderItems(),
		RateCardIDs: req.RateCardIDs,
	})
	if errors.Is(err, ports.ErrRateCardNotFound) {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		obs.FromContext(r.Context()).Error("simulation failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "simulation failed")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewSimulationResponse(*run))
}

func (h *SimulationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "id must be a UUID")
		return
	}

	run, err := h.Service.GetRun(r.Context(), id)
	if errors.Is(err, ports.ErrSimulationNotFound) {
		writeError(w, r, http.StatusNotFound, "simulation not found")
		return
	}
	if err != nil {
		obs.FromContext(r.Context()).Error("get simulation failed", zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "failed to load simulation")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSimulationResponse(run))
}
