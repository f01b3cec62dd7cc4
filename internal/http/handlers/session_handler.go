// README: Server-side chat sessions, one chat.Chat per session id.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voyage/internal/modules/chat"
)

type SessionHandler struct {
	sessions *chat.Registry
	quota    Quota
	timeout  time.Duration
}

func NewSessionHandler(sessions *chat.Registry, q Quota, timeout time.Duration) *SessionHandler {
	return &SessionHandler{sessions: sessions, quota: q, timeout: timeout}
}

type sessionCreatedResp struct {
	SessionID string     `json:"session_id"`
	State     chat.State `json:"state"`
}

type outcomeResp struct {
	Outcome chat.Outcome `json:"outcome"`
	State   chat.State   `json:"state"`
}

type sessionPromptReq struct {
	Prompt string `json:"prompt"`
}

type sessionRefineReq struct {
	Refinement string `json:"refinement"`
}

type clearReq struct {
	Scope string `json:"scope"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	id, ch := h.sessions.Create()
	writeJSON(c, http.StatusCreated, sessionCreatedResp{SessionID: id, State: ch.Snapshot()})
}

// Get handles GET /api/sessions/:id.
func (h *SessionHandler) Get(c *gin.Context) {
	ch, ok := h.lookup(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, ch.Snapshot())
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("id")); err != nil {
		writeSessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Generate handles POST /api/sessions/:id/generate.
func (h *SessionHandler) Generate(c *gin.Context) {
	ch, ok := h.lookup(c)
	if !ok {
		return
	}
	var req sessionPromptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeSessionError(c, chat.ErrInvalidInput)
		return
	}
	h.run(c, ch, func(ctx context.Context) (chat.Outcome, error) {
		return ch.GenerateItinerary(ctx, req.Prompt)
	})
}

// Refine handles POST /api/sessions/:id/refine.
func (h *SessionHandler) Refine(c *gin.Context) {
	ch, ok := h.lookup(c)
	if !ok {
		return
	}
	var req sessionRefineReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Refinement) == "" {
		writeSessionError(c, chat.ErrInvalidInput)
		return
	}
	if ch.Snapshot().CurrentItinerary == nil {
		writeError(c, http.StatusConflict, "no itinerary to refine")
		return
	}
	h.run(c, ch, func(ctx context.Context) (chat.Outcome, error) {
		return ch.RefineItinerary(ctx, req.Refinement)
	})
}

// run charges quota and executes one chat call. A busy chat answers 409
// before anything is charged.
func (h *SessionHandler) run(c *gin.Context, ch *chat.Chat, call func(ctx context.Context) (chat.Outcome, error)) {
	if ch.Busy() {
		writeError(c, http.StatusConflict, "a request is already in progress")
		return
	}
	if !chargeQuota(c, h.quota) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	out, err := call(ctx)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	status := http.StatusOK
	if out == chat.OutcomeIgnored {
		status = http.StatusConflict
	}
	writeJSON(c, status, outcomeResp{Outcome: out, State: ch.Snapshot()})
}

// Select handles PUT /api/sessions/:id/current/:itineraryId.
func (h *SessionHandler) Select(c *gin.Context) {
	ch, ok := h.lookup(c)
	if !ok {
		return
	}
	if !ch.SelectItinerary(c.Param("itineraryId")) {
		writeError(c, http.StatusNotFound, "itinerary not found")
		return
	}
	writeJSON(c, http.StatusOK, ch.Snapshot())
}

// DeleteItinerary handles DELETE /api/sessions/:id/itineraries/:itineraryId.
func (h *SessionHandler) DeleteItinerary(c *gin.Context) {
	ch, ok := h.lookup(c)
	if !ok {
		return
	}
	if !ch.DeleteItinerary(c.Param("itineraryId")) {
		writeError(c, http.StatusNotFound, "itinerary not found")
		return
	}
	writeJSON(c, http.StatusOK, ch.Snapshot())
}

// Clear handles POST /api/sessions/:id/clear. scope is "messages" (default)
// or "all".
func (h *SessionHandler) Clear(c *gin.Context) {
	ch, ok := h.lookup(c)
	if !ok {
		return
	}
	var req clearReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	switch req.Scope {
	case "", "messages":
		ch.ClearMessages()
	case "all":
		ch.ClearAll()
	default:
		writeError(c, http.StatusBadRequest, `scope must be "messages" or "all"`)
		return
	}
	writeJSON(c, http.StatusOK, ch.Snapshot())
}

func (h *SessionHandler) lookup(c *gin.Context) (*chat.Chat, bool) {
	ch, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeSessionError(c, err)
		return nil, false
	}
	return ch, true
}
