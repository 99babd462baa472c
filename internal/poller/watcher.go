package poller

import (
	"context"
	"time"

	"github.com/matkahub/matka-client/internal/api"
	"github.com/matkahub/matka-client/internal/bet"
	"github.com/matkahub/matka-client/pkg/events"
)

type gameState struct {
	openBettable  bool
	closeBettable bool
	openResult    string
	closeResult   string
}

// GamesWatcher diffs successive game-list snapshots and emits
// window-transition and result-declared events. Availability is re-derived
// from the clock on every round, since it changes without any server push.
type GamesWatcher struct {
	fetch   func(ctx context.Context) ([]api.Game, error)
	emitter events.Emitter
	now     func() time.Time
	update  func([]api.Game)

	prev map[string]gameState
}

// NewGamesWatcher builds a watcher. update (optional) receives every fresh
// snapshot, e.g. to refresh a rendered table.
func NewGamesWatcher(
	fetch func(ctx context.Context) ([]api.Game, error),
	emitter events.Emitter,
	update func([]api.Game),
) *GamesWatcher {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &GamesWatcher{
		fetch:   fetch,
		emitter: emitter,
		now:     time.Now,
		update:  update,
		prev:    map[string]gameState{},
	}
}

// Tick is the watcher's poll Job.
func (w *GamesWatcher) Tick(ctx context.Context) error {
	games, err := w.fetch(ctx)
	if err != nil {
		return err
	}

	now := w.now()
	next := make(map[string]gameState, len(games))
	for _, g := range games {
		win := g.Window()
		cur := gameState{
			openBettable:  win.CanBet(bet.SessionOpen, now),
			closeBettable: win.CanBet(bet.SessionClose, now),
			openResult:    g.OpenResult,
			closeResult:   g.CloseResult,
		}
		next[g.ID] = cur

		old, seen := w.prev[g.ID]
		if !seen {
			continue // first sighting is not a transition
		}
		if old.openBettable != cur.openBettable {
			_ = w.emitter.EmitWindowTransition(g.Name, string(bet.SessionOpen), cur.openBettable)
		}
		if old.closeBettable != cur.closeBettable {
			_ = w.emitter.EmitWindowTransition(g.Name, string(bet.SessionClose), cur.closeBettable)
		}
		if old.openResult == "" && cur.openResult != "" {
			_ = w.emitter.EmitResultDeclared(g.Name, string(bet.SessionOpen), cur.openResult)
		}
		if old.closeResult == "" && cur.closeResult != "" {
			_ = w.emitter.EmitResultDeclared(g.Name, string(bet.SessionClose), cur.closeResult)
		}
	}
	w.prev = next

	if w.update != nil {
		w.update(games)
	}
	return nil
}
