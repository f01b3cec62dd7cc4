package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds one Chat per server-side session.
type Registry struct {
	newChat func() *Chat
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Chat
}

// NewRegistry builds chats with newChat. now drives idle sweeping; nil
// means time.Now.
func NewRegistry(newChat func() *Chat, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		newChat:  newChat,
		now:      now,
		sessions: make(map[string]*Chat),
	}
}

func (r *Registry) Create() (string, *Chat) {
	id := uuid.NewString()
	c := r.newChat()

	r.mu.Lock()
	r.sessions[id] = c
	r.mu.Unlock()
	return id, c
}

func (r *Registry) Get(id string) (*Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return c, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions unused for longer than idle and returns how many
// went. Sessions with a request in flight are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, c := range r.sessions {
		if c.Busy() || c.LastActive().After(cutoff) {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}
