package trips

import (
	"context"
	"strings"
	"time"

	"voyage/internal/itinerary"
)

// Repository is the persistence Service needs. *Store implements it.
type Repository interface {
	Upsert(ctx context.Context, t Trip) (time.Time, error)
	Get(ctx context.Context, clientID, id string) (*itinerary.Itinerary, error)
	List(ctx context.Context, clientID string, limit int) ([]Summary, error)
	Delete(ctx context.Context, clientID, id string) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Save stores it under id for clientID. it must already be validated. The
// id argument wins over it.ID; a zero CreatedAt is set to now. Saving an
// existing id keeps its original created_at.
func (s *Service) Save(ctx context.Context, clientID, id string, it itinerary.Itinerary) (*itinerary.Itinerary, error) {
	if clientID == "" || !isValidID(id) {
		return nil, ErrBadRequest
	}
	it.ID = id
	if it.CreatedAt.IsZero() {
		it.CreatedAt = s.now().UTC()
	}
	createdAt, err := s.repo.Upsert(ctx, Trip{ClientID: clientID, Itinerary: it})
	if err != nil {
		return nil, err
	}
	it.CreatedAt = createdAt
	return &it, nil
}

func (s *Service) Get(ctx context.Context, clientID, id string) (*itinerary.Itinerary, error) {
	if clientID == "" || !isValidID(id) {
		return nil, ErrBadRequest
	}
	return s.repo.Get(ctx, clientID, id)
}

// List returns the newest trips first. limit <= 0 means the default page.
func (s *Service) List(ctx context.Context, clientID string, limit int) ([]Summary, error) {
	if clientID == "" {
		return nil, ErrBadRequest
	}
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	return s.repo.List(ctx, clientID, limit)
}

func (s *Service) Delete(ctx context.Context, clientID, id string) error {
	if clientID == "" || !isValidID(id) {
		return ErrBadRequest
	}
	return s.repo.Delete(ctx, clientID, id)
}

// isValidID accepts uuids and other short slugs: letters, digits, '-' and '_'.
func isValidID(v string) bool {
	if v == "" || len(v) > maxIDLength {
		return false
	}
	return strings.IndexFunc(v, func(c rune) bool {
		return !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-' || c == '_')
	}) < 0
}
