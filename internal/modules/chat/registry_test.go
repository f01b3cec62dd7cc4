package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lifecycle(t *testing.T) {
	svc := &fakeService{}
	reg := NewRegistry(func() *Chat { return New(svc, svc) }, nil)

	id, c := reg.Create()
	require.NotEmpty(t, id)
	got, err := reg.Get(id)
	require.NoError(t, err)
	assert.Same(t, c, got)

	id2, c2 := reg.Create()
	assert.NotEqual(t, id, id2)
	assert.NotSame(t, c, c2)
	assert.Equal(t, 2, reg.Len())

	require.NoError(t, reg.Delete(id))
	_, err = reg.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, reg.Delete(id), ErrSessionNotFound)
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	svc := &fakeService{}
	svc.push(paris(), nil)
	reg := NewRegistry(func() *Chat { return New(svc, svc) }, nil)

	_, a := reg.Create()
	_, b := reg.Create()
	_, _ = a.GenerateItinerary(context.Background(), "Paris")

	assert.Len(t, a.Snapshot().Itineraries, 1)
	assert.Empty(t, b.Snapshot().Itineraries)
	assert.Empty(t, b.Snapshot().Messages)
}

func TestRegistry_SweepRemovesIdleOnly(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := &fakeService{}
	reg := NewRegistry(func() *Chat { return New(svc, svc, WithClock(clock.Now)) }, clock.Now)

	idle, _ := reg.Create()
	clock.Advance(20 * time.Minute)
	fresh, _ := reg.Create()
	clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	_, err := reg.Get(idle)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = reg.Get(fresh)
	assert.NoError(t, err)
}

func TestRegistry_SweepKeepsBusySessions(t *testing.T) {
	clock := &fixedClock{t: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := &fakeService{gate: make(chan struct{}), started: make(chan struct{}, 1)}
	svc.push(paris(), nil)
	reg := NewRegistry(func() *Chat { return New(svc, svc, WithClock(clock.Now)) }, clock.Now)

	id, c := reg.Create()
	done := make(chan struct{})
	go func() {
		_, _ = c.GenerateItinerary(context.Background(), "Paris")
		close(done)
	}()
	<-svc.started

	clock.Advance(time.Hour)
	assert.Zero(t, reg.Sweep(time.Minute))
	_, err := reg.Get(id)
	assert.NoError(t, err)

	close(svc.gate)
	<-done
}
