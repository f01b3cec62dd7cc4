package chat

import (
	"errors"
	"time"

	"voyage/internal/itinerary"
	"voyage/internal/modules/planner"
)

var (
	// ErrInvalidInput is returned synchronously for an empty prompt or
	// refinement. It is the same value as planner.ErrInvalidInput.
	ErrInvalidInput = planner.ErrInvalidInput

	ErrSessionNotFound = errors.New("session not found")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one transcript entry. Itinerary is set on assistant messages
// that produced or updated a plan.
type Message struct {
	Role      Role                 `json:"role"`
	Content   string               `json:"content"`
	Timestamp time.Time            `json:"timestamp"`
	Itinerary *itinerary.Itinerary `json:"itinerary,omitempty"`
}

type RequestState struct {
	IsLoading bool   `json:"is_loading"`
	Error     string `json:"error,omitempty"`
}

// State is a point-in-time copy of a Chat for rendering. Itinerary values
// inside share backing arrays with the Chat and must be treated as read-only.
type State struct {
	Messages         []Message             `json:"messages"`
	Itineraries      []itinerary.Itinerary `json:"itineraries"`
	CurrentItinerary *itinerary.Itinerary  `json:"current_itinerary"`
	Request          RequestState          `json:"request"`
}

// Outcome reports what a generate or refine call did to the state.
type Outcome string

const (
	// OutcomeIgnored: the call was dropped without touching state, because
	// another request was in flight or there was nothing to refine.
	OutcomeIgnored Outcome = "ignored"

	OutcomeSucceeded Outcome = "succeeded"

	// OutcomeFailed: the provider failed; the error is in State.Request and
	// a system message was appended.
	OutcomeFailed Outcome = "failed"

	// OutcomeDiscarded: the reply arrived but its target was gone (the
	// itinerary was deleted or the chat was cleared while the call ran).
	OutcomeDiscarded Outcome = "discarded"
)

const (
	generateFailurePrefix = "Error generating itinerary"
	refineFailurePrefix   = "Error refining itinerary"
	refinedReply          = "I've updated your itinerary based on your request."
	discardedReply        = "The itinerary was deleted before the update arrived, so the changes were discarded."
)
