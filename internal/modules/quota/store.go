package quota

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles generation_quota persistence.
type Store struct {
	db      *pgxpool.Pool
	monthly int
}

func NewStore(db *pgxpool.Pool, monthly int) *Store {
	if monthly <= 0 {
		monthly = DefaultMonthly
	}
	return &Store{db: db, monthly: monthly}
}

// Use atomically checks the allowance for period and deducts one call. A row
// from an earlier period is reset to the full allowance first. Returns
// ErrInsufficientQuota when nothing was updated (exhausted or no row yet).
func (s *Store) Use(ctx context.Context, clientID string, now time.Time) error {
	period := now.UTC().Format(periodLayout)

	tag, err := s.db.Exec(ctx, `
		UPDATE generation_quota SET
			remaining = CASE WHEN period <> $1 THEN $2 - 1 ELSE remaining - 1 END,
			period = $1
		WHERE client_id = $3 AND (period < $1 OR remaining > 0)
	`, period, s.monthly, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientQuota
	}
	return nil
}

// Ensure inserts a row for clientID with the full allowance. Existing rows
// are left alone.
func (s *Store) Ensure(ctx context.Context, clientID string, now time.Time) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO generation_quota (client_id, remaining, period)
		VALUES ($1, $2, $3)
		ON CONFLICT (client_id) DO NOTHING
	`, clientID, s.monthly, now.UTC().Format(periodLayout))
	return err
}

// Remaining reports the calls left in the current period. A client with no
// row, or a row from an earlier period, has the full allowance.
func (s *Store) Remaining(ctx context.Context, clientID string, now time.Time) (int, error) {
	period := now.UTC().Format(periodLayout)

	var remaining int
	var stored string
	err := s.db.QueryRow(ctx,
		`SELECT remaining, period FROM generation_quota WHERE client_id = $1`, clientID,
	).Scan(&remaining, &stored)
	if errors.Is(err, pgx.ErrNoRows) {
		return s.monthly, nil
	}
	if err != nil {
		return 0, err
	}
	if stored < period {
		return s.monthly, nil
	}
	return remaining, nil
}
