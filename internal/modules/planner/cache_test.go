package planner

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/testutil"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("VOYAGE_REDIS_ADDR")
	if addr == "" {
		t.Skip("VOYAGE_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestGenerateKey_TrimsPrompt(t *testing.T) {
	assert.Equal(t, generateKey("Paris"), generateKey("  Paris\n"))
	assert.NotEqual(t, generateKey("Paris"), generateKey("paris"))
	assert.Contains(t, generateKey("Paris"), "planner:generate:")
}

func TestCachedService_InvalidInputSkipsEverything(t *testing.T) {
	p := &stubProvider{reply: testutil.ParisJSON}
	// A nil client is never touched when input is rejected first.
	c := NewCachedService(NewService(p, nil), nil, time.Minute)

	_, err := c.Generate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, p.calls())
}

func TestCachedService_HitSkipsProvider(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()
	prompt := "cache test " + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { rdb.Del(ctx, generateKey(prompt)) })

	p := &stubProvider{reply: testutil.ParisJSON}
	c := NewCachedService(NewService(p, nil), rdb, time.Minute)

	first, err := c.Generate(ctx, prompt)
	require.NoError(t, err)
	second, err := c.Generate(ctx, prompt)
	require.NoError(t, err)

	assert.Equal(t, 1, p.calls())
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.DailyItinerary, second.DailyItinerary)
}

func TestCachedService_FailuresNotCached(t *testing.T) {
	rdb := setupRedis(t)
	ctx := context.Background()
	prompt := "cache failure " + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { rdb.Del(ctx, generateKey(prompt)) })

	p := &stubProvider{reply: "{}"}
	c := NewCachedService(NewService(p, nil), rdb, time.Minute)

	_, err := c.Generate(ctx, prompt)
	assert.ErrorIs(t, err, ErrProvider)
	_, err = c.Generate(ctx, prompt)
	assert.ErrorIs(t, err, ErrProvider)
	assert.Equal(t, 2, p.calls())

	n, err := rdb.Exists(ctx, generateKey(prompt)).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}
