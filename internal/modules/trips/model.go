// README: Saved itineraries, one row per trip holding the itinerary document.
package trips

import (
	"errors"
	"time"

	"voyage/internal/itinerary"
)

var (
	ErrNotFound   = errors.New("trip not found")
	ErrBadRequest = errors.New("bad request")
)

// Trip is a saved itinerary owned by one client.
type Trip struct {
	ClientID  string
	Itinerary itinerary.Itinerary
}

// Summary is the listing view of a Trip.
type Summary struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Duration  int        `json:"duration"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

const (
	maxIDLength  = 64
	defaultLimit = 50
	maxLimit     = 200
)
