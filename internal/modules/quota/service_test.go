package quota

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/testutil"
)

func setupTestService(t *testing.T, monthly int) (*Service, *pgxpool.Pool) {
	t.Helper()
	db := testutil.Postgres(t, "generation_quota")
	return NewService(NewStore(db, monthly)), db
}

func TestUse_NewClient(t *testing.T) {
	svc, db := setupTestService(t, 5)
	ctx := context.Background()

	require.NoError(t, svc.Use(ctx, "client_new"))

	var remaining int
	require.NoError(t, db.QueryRow(ctx, "SELECT remaining FROM generation_quota WHERE client_id = 'client_new'").Scan(&remaining))
	assert.Equal(t, 4, remaining)
}

func TestUse_CrossMonthReset(t *testing.T) {
	svc, db := setupTestService(t, 5)
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO generation_quota VALUES ('client_reset', 0, '2000-01')")
	require.NoError(t, err)

	require.NoError(t, svc.Use(ctx, "client_reset"))
	left, err := svc.Remaining(ctx, "client_reset")
	require.NoError(t, err)
	assert.Equal(t, 4, left)
}

func TestUse_Exhausted(t *testing.T) {
	svc, _ := setupTestService(t, 2)
	ctx := context.Background()

	require.NoError(t, svc.Use(ctx, "client_busy"))
	require.NoError(t, svc.Use(ctx, "client_busy"))
	assert.ErrorIs(t, svc.Use(ctx, "client_busy"), ErrInsufficientQuota)

	left, err := svc.Remaining(ctx, "client_busy")
	require.NoError(t, err)
	assert.Zero(t, left)
}

func TestRemaining_UnknownClient(t *testing.T) {
	svc, _ := setupTestService(t, 7)
	left, err := svc.Remaining(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 7, left)
}

func TestRemaining_NextMonthResets(t *testing.T) {
	svc, _ := setupTestService(t, 3)
	ctx := context.Background()
	require.NoError(t, svc.Use(ctx, "client_month"))

	svc.now = func() time.Time { return time.Now().AddDate(0, 1, 0) }
	left, err := svc.Remaining(ctx, "client_month")
	require.NoError(t, err)
	assert.Equal(t, 3, left)
}

func TestNewStore_DefaultAllowance(t *testing.T) {
	assert.Equal(t, DefaultMonthly, NewStore(nil, 0).monthly)
	assert.Equal(t, 9, NewStore(nil, 9).monthly)
}
