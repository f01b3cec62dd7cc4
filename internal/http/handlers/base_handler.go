// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyage/internal/http/middleware"
	"voyage/internal/modules/chat"
	"voyage/internal/modules/planner"
	"voyage/internal/modules/quota"
	"voyage/internal/modules/trips"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Quota charges one LLM call to a client. *quota.Service implements it.
type Quota interface {
	Use(ctx context.Context, clientID string) error
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Success: false, Error: msg})
}

// chargeQuota writes the error response itself and reports whether the
// request may go on. A nil Quota always allows.
func chargeQuota(c *gin.Context, q Quota) bool {
	if q == nil {
		return true
	}
	err := q.Use(c.Request.Context(), middleware.ClientIDFrom(c))
	switch {
	case err == nil:
		return true
	case errors.Is(err, quota.ErrInsufficientQuota):
		writeError(c, http.StatusTooManyRequests, err.Error())
	default:
		log.Printf("quota check failed: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
	return false
}

// writePlannerError hides provider details: the full error is logged, the
// client gets failMsg.
func writePlannerError(c *gin.Context, err error, failMsg string) {
	switch {
	case errors.Is(err, planner.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, planner.ErrProvider):
		log.Printf("%s: %v", failMsg, err)
		writeError(c, http.StatusBadGateway, failMsg)
	default:
		log.Printf("%s: %v", failMsg, err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeTripError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trips.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trips.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		log.Printf("trips: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, chat.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("sessions: %v", err)
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
