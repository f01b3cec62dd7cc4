// README: Stateless generate and refine endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voyage/internal/itinerary"
	"voyage/internal/modules/planner"
)

type ItineraryHandler struct {
	planner planner.Planner
	quota   Quota
	timeout time.Duration
}

// NewItineraryHandler wires the generate/refine endpoints. quota may be nil.
func NewItineraryHandler(p planner.Planner, q Quota, timeout time.Duration) *ItineraryHandler {
	return &ItineraryHandler{planner: p, quota: q, timeout: timeout}
}

type generateReq struct {
	Prompt string `json:"prompt"`
}

type refineReq struct {
	Itinerary  json.RawMessage `json:"itinerary"`
	Refinement string          `json:"refinement"`
}

type itineraryResp struct {
	Success   bool                 `json:"success"`
	Itinerary *itinerary.Itinerary `json:"itinerary"`
}

// Generate handles POST /api/generate-itinerary.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(c, http.StatusBadRequest, "invalid prompt provided")
		return
	}
	if !chargeQuota(c, h.quota) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	it, err := h.planner.Generate(ctx, req.Prompt)
	if err != nil {
		writePlannerError(c, err, "failed to generate itinerary")
		return
	}
	writeJSON(c, http.StatusOK, itineraryResp{Success: true, Itinerary: it})
}

// Refine handles POST /api/refine-itinerary. The submitted itinerary is
// validated before anything is charged or sent to the provider.
func (h *ItineraryHandler) Refine(c *gin.Context) {
	var req refineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Refinement) == "" {
		writeError(c, http.StatusBadRequest, "invalid refinement provided")
		return
	}
	if len(req.Itinerary) == 0 {
		writeError(c, http.StatusBadRequest, "missing itinerary")
		return
	}
	current, err := itinerary.Parse(req.Itinerary)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid itinerary: "+err.Error())
		return
	}
	if !chargeQuota(c, h.quota) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	it, err := h.planner.Refine(ctx, *current, req.Refinement)
	if err != nil {
		writePlannerError(c, err, "failed to refine itinerary")
		return
	}
	writeJSON(c, http.StatusOK, itineraryResp{Success: true, Itinerary: it})
}
