// README: Per-session chat and itinerary state with one request in flight at a time.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"voyage/internal/itinerary"
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (*itinerary.Itinerary, error)
}

type Refiner interface {
	Refine(ctx context.Context, current itinerary.Itinerary, instruction string) (*itinerary.Itinerary, error)
}

type Option func(*Chat)

// WithClock replaces time.Now for message and itinerary timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Chat) { c.now = now }
}

// WithIDSource replaces uuid.NewString for new itinerary ids.
func WithIDSource(newID func() string) Option {
	return func(c *Chat) { c.newID = newID }
}

// Chat owns one conversation: its transcript, the itineraries it produced
// and which of them is current. The lock is never held across a provider
// call; IsLoading is what keeps a second request from starting.
type Chat struct {
	gen   Generator
	ref   Refiner
	now   func() time.Time
	newID func() string

	mu          sync.Mutex
	messages    []Message
	itineraries []itinerary.Itinerary
	current     string
	request     RequestState
	// epoch changes on every clear so replies to older requests can tell
	// they are stale.
	epoch      uint64
	lastActive time.Time
}

func New(gen Generator, ref Refiner, opts ...Option) *Chat {
	c := &Chat{
		gen:   gen,
		ref:   ref,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastActive = c.now()
	return c
}

// GenerateItinerary asks for a new itinerary from prompt. Provider failures
// never come back as errors; they land in the state.
func (c *Chat) GenerateItinerary(ctx context.Context, prompt string) (Outcome, error) {
	if strings.TrimSpace(prompt) == "" {
		return OutcomeIgnored, fmt.Errorf("%w: prompt is empty", ErrInvalidInput)
	}

	c.mu.Lock()
	if c.request.IsLoading {
		c.mu.Unlock()
		return OutcomeIgnored, nil
	}
	c.appendLocked(Message{Role: RoleUser, Content: prompt})
	c.request = RequestState{IsLoading: true}
	epoch := c.epoch
	c.mu.Unlock()

	it, err := guarded(func() (*itinerary.Itinerary, error) { return c.gen.Generate(ctx, prompt) })
	if err == nil && it == nil {
		err = errors.New("failed to generate itinerary")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.request.IsLoading = false
	c.lastActive = c.now()
	if epoch != c.epoch {
		return OutcomeDiscarded, nil
	}
	if err != nil {
		c.failLocked(generateFailurePrefix, err)
		return OutcomeFailed, nil
	}

	owned := it.WithIdentity(c.newID(), c.now())
	owned.UpdatedAt = nil
	c.itineraries = append(c.itineraries, owned)
	c.current = owned.ID
	c.appendLocked(Message{
		Role:      RoleAssistant,
		Content:   fmt.Sprintf("I've created your %d-day %s itinerary: \"%s\"", owned.Duration, owned.TripStyle, owned.Title),
		Itinerary: &owned,
	})
	return OutcomeSucceeded, nil
}

// RefineItinerary applies instruction to the current itinerary. The result
// keeps the original id and created_at whatever the provider returned.
func (c *Chat) RefineItinerary(ctx context.Context, instruction string) (Outcome, error) {
	if strings.TrimSpace(instruction) == "" {
		return OutcomeIgnored, fmt.Errorf("%w: refinement is empty", ErrInvalidInput)
	}

	c.mu.Lock()
	idx := c.indexLocked(c.current)
	if c.request.IsLoading || idx < 0 {
		c.mu.Unlock()
		return OutcomeIgnored, nil
	}
	original := c.itineraries[idx]
	c.appendLocked(Message{Role: RoleUser, Content: instruction})
	c.request = RequestState{IsLoading: true}
	epoch := c.epoch
	c.mu.Unlock()

	it, err := guarded(func() (*itinerary.Itinerary, error) { return c.ref.Refine(ctx, original, instruction) })
	if err == nil && it == nil {
		err = errors.New("failed to refine itinerary")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.request.IsLoading = false
	c.lastActive = c.now()
	if epoch != c.epoch {
		return OutcomeDiscarded, nil
	}
	if err != nil {
		c.failLocked(refineFailurePrefix, err)
		return OutcomeFailed, nil
	}

	idx = c.indexLocked(original.ID)
	if idx < 0 {
		c.appendLocked(Message{Role: RoleSystem, Content: discardedReply})
		return OutcomeDiscarded, nil
	}

	updated := it.WithIdentity(original.ID, original.CreatedAt)
	now := c.now()
	updated.UpdatedAt = &now
	c.itineraries[idx] = updated
	c.current = updated.ID
	c.appendLocked(Message{Role: RoleAssistant, Content: refinedReply, Itinerary: &updated})
	return OutcomeSucceeded, nil
}

// DeleteItinerary removes id and reports whether it existed. The current
// reference is cleared when it pointed at id.
func (c *Chat) DeleteItinerary(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()

	idx := c.indexLocked(id)
	if idx < 0 {
		return false
	}
	c.itineraries = append(c.itineraries[:idx:idx], c.itineraries[idx+1:]...)
	if c.current == id {
		c.current = ""
	}
	return true
}

// SelectItinerary makes an existing itinerary current.
func (c *Chat) SelectItinerary(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()

	if c.indexLocked(id) < 0 {
		return false
	}
	c.current = id
	return true
}

// ClearMessages empties the transcript and the request error. A request
// still in flight keeps IsLoading set; its reply is dropped on arrival.
func (c *Chat) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.request.Error = ""
	c.epoch++
	c.lastActive = c.now()
}

// ClearAll resets the transcript, itineraries and current selection.
func (c *Chat) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.itineraries = nil
	c.current = ""
	c.request.Error = ""
	c.epoch++
	c.lastActive = c.now()
}

func (c *Chat) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Messages:    append([]Message(nil), c.messages...),
		Itineraries: append([]itinerary.Itinerary(nil), c.itineraries...),
		Request:     c.request,
	}
	if idx := c.indexLocked(c.current); idx >= 0 {
		cur := c.itineraries[idx]
		st.CurrentItinerary = &cur
	}
	if st.Messages == nil {
		st.Messages = []Message{}
	}
	if st.Itineraries == nil {
		st.Itineraries = []itinerary.Itinerary{}
	}
	return st
}

// Busy reports whether a request is in flight.
func (c *Chat) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.request.IsLoading
}

// LastActive is when the chat was last used.
func (c *Chat) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Chat) appendLocked(m Message) {
	m.Timestamp = c.now()
	c.messages = append(c.messages, m)
	c.lastActive = m.Timestamp
}

func (c *Chat) failLocked(prefix string, err error) {
	c.request.Error = err.Error()
	c.appendLocked(Message{Role: RoleSystem, Content: prefix + ": " + err.Error()})
}

// guarded turns a provider panic into an ordinary failure so the request
// state is always settled.
func guarded(call func() (*itinerary.Itinerary, error)) (it *itinerary.Itinerary, err error) {
	defer func() {
		if r := recover(); r != nil {
			it, err = nil, fmt.Errorf("provider panic: %v", r)
		}
	}()
	return call()
}

func (c *Chat) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.itineraries {
		if c.itineraries[i].ID == id {
			return i
		}
	}
	return -1
}
