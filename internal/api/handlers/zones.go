package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fulfillment-routing-service/internal/api/dto"
	"fulfillment-routing-service/internal/pricing"
)

type ZoneHandler struct {
	Zones pricing.ZoneResolver
}

// Resolve reports the shipping zone a destination maps to and whether its
// prefix was in the zone table.
func (h *ZoneHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	dest := strings.TrimSpace(chi.URLParam(r, "destination"))
	if dest == "" {
		writeError(w, r, http.StatusBadRequest, "destination is required")
		return
	}

	zone, matched := h.Zones.Lookup(dest)
	writeJSON(w, r, http.StatusOK, dto.ZoneResponse{
		Destination: dest,
		Prefix:      pricing.Prefix(dest),
		Zone:        zone,
		Matched:     matched,
	})
}
