// Package poller runs the periodic refresh loops behind the game list and
// balance views. Loops are cancellable, runs are serialized, and a manual
// refresh supersedes the scheduled tick so overlapping fetches can never
// write view state out of order.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/matkahub/matka-client/pkg/events"
	"github.com/matkahub/matka-client/pkg/logger"
	"github.com/matkahub/matka-client/pkg/retry"
)

// Job is one poll round. It should honor ctx promptly.
type Job func(ctx context.Context) error

type Poller struct {
	name     string
	interval time.Duration
	job      Job
	emitter  events.Emitter
	log      *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	refresh chan struct{}
	done    chan struct{}
}

func New(name string, interval time.Duration, job Job, emitter events.Emitter) *Poller {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Poller{
		name:     name,
		interval: interval,
		job:      job,
		emitter:  emitter,
		log:      logger.With(slog.String("poller", name)),
	}
}

// Start launches the loop. The first round runs immediately; subsequent
// rounds follow the ticker or a manual Refresh.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return // already running
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.refresh = make(chan struct{}, 1)
	p.done = make(chan struct{})

	go p.run(ctx)
}

// Stop cancels the loop and waits for the in-flight round to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.log.Info("Poller stopped")
}

// Refresh requests an immediate round. The ticker is reset afterwards, so
// the manual round supersedes the scheduled one instead of racing it.
func (p *Poller) Refresh() {
	p.mu.Lock()
	refresh := p.refresh
	p.mu.Unlock()
	if refresh == nil {
		return
	}
	select {
	case refresh <- struct{}{}:
	default: // one pending refresh is enough
	}
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.refresh:
			p.runOnce(ctx)
			ticker.Reset(p.interval)
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	err := retry.ExponentialContext(ctx, func() error { return p.job(ctx) }, retry.ExponentialConfig{
		InitialInterval: retry.DefaultInterval,
		MaxElapsedTime:  p.interval,
		OnRetry: func(err error, next time.Duration) {
			p.log.Debug("Retrying poll round", "err", err, "next_retry_in", next)
		},
	})
	if err != nil && ctx.Err() == nil {
		p.log.Error("Poll round failed", "err", err)
		_ = p.emitter.EmitError(p.name, err)
	}
}
