package trips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"voyage/internal/itinerary"
)

// Store handles trips persistence.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Upsert writes the trip and returns the stored created_at, which is kept
// from the first write.
func (s *Store) Upsert(ctx context.Context, t Trip) (time.Time, error) {
	doc, err := json.Marshal(t.Itinerary)
	if err != nil {
		return time.Time{}, fmt.Errorf("encode itinerary: %w", err)
	}
	var createdAt time.Time
	err = s.db.QueryRow(ctx, `
		INSERT INTO trips (id, client_id, title, duration, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			duration = EXCLUDED.duration,
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at
		WHERE trips.client_id = EXCLUDED.client_id
		RETURNING created_at`,
		t.Itinerary.ID,
		t.ClientID,
		t.Itinerary.Title,
		t.Itinerary.Duration,
		doc,
		t.Itinerary.CreatedAt,
		t.Itinerary.UpdatedAt,
	).Scan(&createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// The id exists but belongs to another client.
		return time.Time{}, ErrNotFound
	}
	return createdAt, err
}

func (s *Store) Get(ctx context.Context, clientID, id string) (*itinerary.Itinerary, error) {
	var doc []byte
	var createdAt time.Time
	err := s.db.QueryRow(ctx,
		`SELECT document, created_at FROM trips WHERE id = $1 AND client_id = $2`, id, clientID,
	).Scan(&doc, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var it itinerary.Itinerary
	if err := json.Unmarshal(doc, &it); err != nil {
		return nil, fmt.Errorf("decode trip %s: %w", id, err)
	}
	it.CreatedAt = createdAt
	return &it, nil
}

func (s *Store) List(ctx context.Context, clientID string, limit int) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, duration, created_at, updated_at
		FROM trips
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, clientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.Duration, &sm.CreatedAt, &sm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, clientID, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
