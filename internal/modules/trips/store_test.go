package trips

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/testutil"
)

func TestStore_RoundTrip(t *testing.T) {
	db := testutil.Postgres(t, "trips")
	svc := NewService(NewStore(db))
	ctx := context.Background()

	it := testutil.Paris()
	it.CreatedAt = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	saved, err := svc.Save(ctx, "client-db", "trip-db-1", it)
	require.NoError(t, err)
	assert.True(t, it.CreatedAt.Equal(saved.CreatedAt))

	got, err := svc.Get(ctx, "client-db", "trip-db-1")
	require.NoError(t, err)
	assert.Equal(t, "trip-db-1", got.ID)
	assert.Equal(t, it.DailyItinerary, got.DailyItinerary)
	assert.True(t, it.CreatedAt.Equal(got.CreatedAt))

	updated := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	it.Title = "Paris Again"
	it.CreatedAt = time.Now()
	it.UpdatedAt = &updated
	saved, err = svc.Save(ctx, "client-db", "trip-db-1", it)
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC).Equal(saved.CreatedAt))

	list, err := svc.List(ctx, "client-db", 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Paris Again", list[0].Title)
	assert.Equal(t, 3, list[0].Duration)
	require.NotNil(t, list[0].UpdatedAt)

	_, err = svc.Save(ctx, "someone-else", "trip-db-1", it)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "client-db", "trip-db-1"))
	_, err = svc.Get(ctx, "client-db", "trip-db-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
