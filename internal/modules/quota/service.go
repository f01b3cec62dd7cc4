// README: Per-client monthly allowance of LLM calls.
package quota

import (
	"context"
	"errors"
	"time"
)

// Service orchestrates quota logic on top of Store.
type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Use deducts one call from clientID's monthly allowance. A client seen for
// the first time is initialised and charged in the same call.
func (s *Service) Use(ctx context.Context, clientID string) error {
	now := s.now()
	err := s.store.Use(ctx, clientID, now)
	if !errors.Is(err, ErrInsufficientQuota) {
		return err
	}

	// Row may be missing: create it, then retry the deduction once.
	if initErr := s.store.Ensure(ctx, clientID, now); initErr != nil {
		return initErr
	}
	return s.store.Use(ctx, clientID, now)
}

func (s *Service) Remaining(ctx context.Context, clientID string) (int, error) {
	return s.store.Remaining(ctx, clientID, s.now())
}
