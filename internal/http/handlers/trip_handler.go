// README: Saved trip endpoints and travel-leg estimates.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
	"voyage/internal/itinerary"
	"voyage/internal/maps"
	"voyage/internal/modules/trips"
)

// LegPlanner estimates travel between destinations. *maps.LegPlanner
// implements it.
type LegPlanner interface {
	Legs(ctx context.Context, it itinerary.Itinerary) ([]maps.Leg, error)
}

// PlaceFinder suggests places at a trip's destinations. *maps.PlacesService
// implements it.
type PlaceFinder interface {
	SearchTrip(ctx context.Context, it itinerary.Itinerary, query string) ([]maps.Place, error)
}

type TripHandler struct {
	trips  *trips.Service
	legs   LegPlanner
	places PlaceFinder
}

// NewTripHandler wires the trip endpoints. legs and places may be nil when
// no Maps key is configured.
func NewTripHandler(svc *trips.Service, legs LegPlanner, places PlaceFinder) *TripHandler {
	return &TripHandler{trips: svc, legs: legs, places: places}
}

type tripResp struct {
	Itinerary *itinerary.Itinerary `json:"itinerary"`
}

// List handles GET /api/trips.
func (h *TripHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	list, err := h.trips.List(c.Request.Context(), middleware.ClientIDFrom(c), limit)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trips": list})
}

// Get handles GET /api/trips/:id.
func (h *TripHandler) Get(c *gin.Context) {
	it, err := h.trips.Get(c.Request.Context(), middleware.ClientIDFrom(c), c.Param("id"))
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tripResp{Itinerary: it})
}

// Put handles PUT /api/trips/:id. The body is an itinerary; the id in the
// path wins over any id in the body.
func (h *TripHandler) Put(c *gin.Context) {
	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	it, err := itinerary.Parse(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid itinerary: "+err.Error())
		return
	}
	saved, err := h.trips.Save(c.Request.Context(), middleware.ClientIDFrom(c), c.Param("id"), *it)
	if err != nil {
		writeTripError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, tripResp{Itinerary: saved})
}

// Delete handles DELETE /api/trips/:id.
func (h *TripHandler) Delete(c *gin.Context) {
	if err := h.trips.Delete(c.Request.Context(), middleware.ClientIDFrom(c), c.Param("id")); err != nil {
		writeTripError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Legs handles GET /api/trips/:id/legs.
func (h *TripHandler) Legs(c *gin.Context) {
	if h.legs == nil {
		writeError(c, http.StatusServiceUnavailable, "travel estimates are not configured")
		return
	}
	it, err := h.trips.Get(c.Request.Context(), middleware.ClientIDFrom(c), c.Param("id"))
	if err != nil {
		writeTripError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	legs, err := h.legs.Legs(ctx, *it)
	if err != nil {
		writeError(c, http.StatusGatewayTimeout, "travel estimate lookup timed out")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"legs": legs})
}

// Places handles GET /api/trips/:id/places?q=.
func (h *TripHandler) Places(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "place search is not configured")
		return
	}
	it, err := h.trips.Get(c.Request.Context(), middleware.ClientIDFrom(c), c.Param("id"))
	if err != nil {
		writeTripError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 20*time.Second)
	defer cancel()

	places, err := h.places.SearchTrip(ctx, *it, c.Query("q"))
	switch {
	case errors.Is(err, maps.ErrBadQuery):
		writeError(c, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(c, http.StatusGatewayTimeout, "place search timed out")
	default:
		writeJSON(c, http.StatusOK, gin.H{"places": places})
	}
}
