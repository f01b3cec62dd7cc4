package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/itinerary"
	"voyage/internal/maps"
	"voyage/internal/modules/chat"
	"voyage/internal/modules/trips"
	"voyage/internal/testutil"
)

type fakePlanner struct {
	err      error
	refined  []string
	prompts  []string
	newTitle string
}

func (f *fakePlanner) Generate(_ context.Context, prompt string) (*itinerary.Itinerary, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	it := testutil.Paris()
	return &it, nil
}

func (f *fakePlanner) Refine(_ context.Context, current itinerary.Itinerary, instruction string) (*itinerary.Itinerary, error) {
	f.refined = append(f.refined, instruction)
	if f.err != nil {
		return nil, f.err
	}
	if f.newTitle != "" {
		current.Title = f.newTitle
	}
	return &current, nil
}

type fakeTrips struct {
	saved   map[string]itinerary.Itinerary
	deleted []string
}

func newFakeTrips() *fakeTrips {
	return &fakeTrips{saved: map[string]itinerary.Itinerary{}}
}

func (f *fakeTrips) ListTrips(context.Context, int) ([]trips.Summary, error) {
	var out []trips.Summary
	for id, it := range f.saved {
		out = append(out, trips.Summary{ID: id, Title: it.Title, Duration: it.Duration, CreatedAt: it.CreatedAt})
	}
	return out, nil
}

func (f *fakeTrips) GetTrip(_ context.Context, id string) (*itinerary.Itinerary, error) {
	it, ok := f.saved[id]
	if !ok {
		return nil, trips.ErrNotFound
	}
	return &it, nil
}

func (f *fakeTrips) SaveTrip(_ context.Context, id string, it itinerary.Itinerary) (*itinerary.Itinerary, error) {
	it.ID = id
	f.saved[id] = it
	return &it, nil
}

func (f *fakeTrips) DeleteTrip(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.saved, id)
	return nil
}

func (f *fakeTrips) Legs(context.Context, string) ([]maps.Leg, error) {
	return []maps.Leg{{Hop: maps.Hop{From: "Paris, France", To: "Lyon, France"}, Mode: "driving", DurationMinutes: 90, Distance: "465 km"}}, nil
}

func (f *fakeTrips) Places(_ context.Context, _ string, query string) ([]maps.Place, error) {
	return []maps.Place{{Near: "Paris, France", Name: "Best " + query, Rating: 4.5}}, nil
}

func execute(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newApp(p *fakePlanner, tr *fakeTrips) *App {
	return &App{Chat: chat.New(p, p), Trips: tr}
}

func TestGenerateCmd(t *testing.T) {
	p := &fakePlanner{}
	tr := newFakeTrips()
	out, err := execute(t, newApp(p, tr), "", "generate", "3", "days", "in", "Paris", "--save")
	require.NoError(t, err)

	assert.Equal(t, []string{"3 days in Paris"}, p.prompts)
	assert.Contains(t, out, "Three Days in Paris")
	assert.Contains(t, out, "saved as")
	assert.Len(t, tr.saved, 1)
}

func TestGenerateCmd_Failure(t *testing.T) {
	p := &fakePlanner{err: errors.New("unexpected status 502")}
	_, err := execute(t, newApp(p, newFakeTrips()), "", "generate", "Rome")
	assert.EqualError(t, err, "unexpected status 502")
}

func TestTripsCmds(t *testing.T) {
	tr := newFakeTrips()
	it := testutil.Paris()
	tr.saved["t1"] = it
	app := newApp(&fakePlanner{}, tr)

	out, err := execute(t, app, "", "trips", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "t1")

	out, err = execute(t, app, "", "trips", "show", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "Eiffel Tower Visit")

	out, err = execute(t, app, "", "trips", "legs", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "1h30m")

	out, err = execute(t, app, "", "trips", "places", "t1", "street", "food")
	require.NoError(t, err)
	assert.Contains(t, out, "Best street food")

	_, err = execute(t, app, "", "trips", "delete", "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, tr.deleted)

	_, err = execute(t, app, "", "trips", "show", "t1")
	assert.ErrorIs(t, err, trips.ErrNotFound)
}

func TestChatCmd_GenerateThenRefine(t *testing.T) {
	p := &fakePlanner{newTitle: "Slow Paris"}
	tr := newFakeTrips()
	app := newApp(p, tr)

	out, err := execute(t, app, "3 days in Paris\nmore cafés\n/save\n/list\n/quit\n", "chat")
	require.NoError(t, err)

	assert.Equal(t, []string{"3 days in Paris"}, p.prompts)
	assert.Equal(t, []string{"more cafés"}, p.refined)
	assert.Contains(t, out, `I've created your 3-day Cultural itinerary: "Three Days in Paris"`)
	assert.Contains(t, out, "I've updated your itinerary based on your request.")
	assert.Contains(t, out, "saved as")
	assert.Contains(t, out, "1. Slow Paris")
	require.Len(t, tr.saved, 1)
	for _, it := range tr.saved {
		assert.Equal(t, "Slow Paris", it.Title)
	}
}

func TestChatCmd_FailureShownAsSystemMessage(t *testing.T) {
	p := &fakePlanner{err: errors.New("unexpected status 500")}
	out, err := execute(t, newApp(p, newFakeTrips()), "Rome\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "! Error generating itinerary: unexpected status 500")
}

func TestChatCmd_SelectDeleteReset(t *testing.T) {
	p := &fakePlanner{}
	app := newApp(p, newFakeTrips())

	out, err := execute(t, app, "/new a\n/new b\n/select 1\n/delete 2\n/select 9\n/bogus\n/reset\n/list\n", "chat")
	require.NoError(t, err)
	assert.Len(t, p.prompts, 2)
	assert.Contains(t, out, "/select expects a number between 1 and 1")
	assert.Contains(t, out, "unknown command /bogus")
	assert.Contains(t, out, "No itineraries yet.")
	assert.Empty(t, app.Chat.Snapshot().Itineraries)
}
