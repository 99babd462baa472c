package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/pkg/events"
)

type recordingEmitter struct {
	events.NoopEmitter
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingEmitter) EmitWindowTransition(game string, session string, open bool) error {
	return r.record(events.Event{Type: events.TypeWindowTransition, Game: game, Data: map[string]any{"session": session, "open": open}})
}

func (r *recordingEmitter) EmitResultDeclared(game string, session string, result string) error {
	return r.record(events.Event{Type: events.TypeResultDeclared, Game: game, Data: map[string]string{"session": session, "result": result}})
}

func (r *recordingEmitter) EmitError(game string, err error) error {
	return r.record(events.Event{Type: events.TypeError, Game: game})
}

func (r *recordingEmitter) record(e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEmitter) byType(typ string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func TestPollerRunsImmediatelyAndStops(t *testing.T) {
	var runs atomic.Int32
	p := New("test", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}, nil)

	p.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	p.Stop()
	assert.Equal(t, int32(1), runs.Load(), "hour-long interval must not tick during the test")

	// Stop again is a no-op
	p.Stop()
}

func TestPollerRefreshTriggersRound(t *testing.T) {
	var runs atomic.Int32
	p := New("test", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}, nil)

	p.Start(context.Background())
	defer p.Stop()
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	p.Refresh()
	require.Eventually(t, func() bool { return runs.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestPollerEmitsPersistentFailure(t *testing.T) {
	rec := &recordingEmitter{}
	p := New("games", 30*time.Millisecond, func(ctx context.Context) error {
		return errors.New("api down")
	}, rec)

	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool {
		return len(rec.byType(events.TypeError)) >= 1
	}, 5*time.Second, 10*time.Millisecond)
}

func TestGamesWatcherDiffsSnapshots(t *testing.T) {
	rec := &recordingEmitter{}

	game := api.Game{ID: "g1", Name: "Kalyan", OpenTime: "10:00", CloseTime: "12:00"}
	games := []api.Game{game}

	var snapshots int
	w := NewGamesWatcher(
		func(ctx context.Context) ([]api.Game, error) { return games, nil },
		rec,
		func([]api.Game) { snapshots++ },
	)

	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local)
	w.now = func() time.Time { return clock }

	// first sighting: no transitions
	require.NoError(t, w.Tick(context.Background()))
	assert.Empty(t, rec.byType(events.TypeWindowTransition))
	assert.Equal(t, 1, snapshots)

	// clock passes openTime: the open session shuts
	clock = time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	require.NoError(t, w.Tick(context.Background()))
	transitions := rec.byType(events.TypeWindowTransition)
	require.Len(t, transitions, 1)
	assert.Equal(t, "Kalyan", transitions[0].Game)

	// open result lands: result event, no further window change for open
	games = []api.Game{{ID: "g1", Name: "Kalyan", OpenTime: "10:00", CloseTime: "12:00", OpenResult: "123-6"}}
	require.NoError(t, w.Tick(context.Background()))
	declared := rec.byType(events.TypeResultDeclared)
	require.Len(t, declared, 1)

	// clock passes closeTime inclusive boundary: close shuts at 12:01
	clock = time.Date(2025, 6, 1, 12, 1, 0, 0, time.Local)
	require.NoError(t, w.Tick(context.Background()))
	assert.Len(t, rec.byType(events.TypeWindowTransition), 2)
}
