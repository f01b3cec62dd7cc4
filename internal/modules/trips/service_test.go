package trips

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/itinerary"
	"voyage/internal/testutil"
)

type memRepo struct {
	mu    sync.Mutex
	trips map[string]Trip
}

func newMemRepo() *memRepo { return &memRepo{trips: map[string]Trip{}} }

func (m *memRepo) Upsert(_ context.Context, t Trip) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.trips[t.Itinerary.ID]; ok {
		if prev.ClientID != t.ClientID {
			return time.Time{}, ErrNotFound
		}
		t.Itinerary.CreatedAt = prev.Itinerary.CreatedAt
	}
	m.trips[t.Itinerary.ID] = t
	return t.Itinerary.CreatedAt, nil
}

func (m *memRepo) Get(_ context.Context, clientID, id string) (*itinerary.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.ClientID != clientID {
		return nil, ErrNotFound
	}
	it := t.Itinerary
	return &it, nil
}

func (m *memRepo) List(_ context.Context, clientID string, limit int) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Summary{}
	for _, t := range m.trips {
		if t.ClientID == clientID && len(out) < limit {
			out = append(out, Summary{ID: t.Itinerary.ID, Title: t.Itinerary.Title})
		}
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, clientID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok || t.ClientID != clientID {
		return ErrNotFound
	}
	delete(m.trips, id)
	return nil
}

func TestSave_PathIDWinsAndCreatedAtDefaults(t *testing.T) {
	svc := NewService(newMemRepo())
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	it := testutil.Paris()
	it.ID = "body-id"
	saved, err := svc.Save(context.Background(), "client-a", "trip-1", it)
	require.NoError(t, err)
	assert.Equal(t, "trip-1", saved.ID)
	assert.Equal(t, fixed, saved.CreatedAt)

	later := testutil.Paris()
	later.Title = "Changed"
	later.CreatedAt = fixed.Add(48 * time.Hour)
	again, err := svc.Save(context.Background(), "client-a", "trip-1", later)
	require.NoError(t, err)
	assert.Equal(t, fixed, again.CreatedAt)

	got, err := svc.Get(context.Background(), "client-a", "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.Title)
}

func TestSave_OtherClientCannotOverwrite(t *testing.T) {
	svc := NewService(newMemRepo())
	_, err := svc.Save(context.Background(), "client-a", "trip-1", testutil.Paris())
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), "client-b", "trip-1", testutil.Paris())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), "client-b", "trip-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBadRequests(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	for _, id := range []string{"", "has space", "semi;colon", string(make([]byte, maxIDLength+1))} {
		_, err := svc.Save(ctx, "client-a", id, testutil.Paris())
		assert.ErrorIs(t, err, ErrBadRequest, "id %q", id)
	}
	_, err := svc.Get(ctx, "", "trip-1")
	assert.ErrorIs(t, err, ErrBadRequest)
	_, err = svc.List(ctx, "", 10)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.ErrorIs(t, svc.Delete(ctx, "client-a", "../etc"), ErrBadRequest)
}

func TestDelete(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()
	_, err := svc.Save(ctx, "client-a", "3f1c-uuid_like", testutil.Paris())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "client-a", "3f1c-uuid_like"))
	assert.ErrorIs(t, svc.Delete(ctx, "client-a", "3f1c-uuid_like"), ErrNotFound)
}

func TestList_ClampsLimit(t *testing.T) {
	repo := &limitRecorder{}
	svc := NewService(repo)
	ctx := context.Background()

	_, _ = svc.List(ctx, "c", 0)
	_, _ = svc.List(ctx, "c", 10_000)
	_, _ = svc.List(ctx, "c", 7)
	assert.Equal(t, []int{defaultLimit, maxLimit, 7}, repo.limits)
}

type limitRecorder struct {
	memRepo
	limits []int
}

func (l *limitRecorder) List(_ context.Context, _ string, limit int) ([]Summary, error) {
	l.limits = append(l.limits, limit)
	return nil, nil
}
