// Package poller refreshes the draft snapshot on a fixed interval.
package poller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/draftassist/pkg/logger"
)

// ErrInvalidInterval is returned for a non-positive interval.
var ErrInvalidInterval = errors.New("poll interval must be positive")

// Refresher runs one refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefresherFunc adapts a function to Refresher.
type RefresherFunc func(ctx context.Context) error

// Refresh calls f.
func (f RefresherFunc) Refresh(ctx context.Context) error { return f(ctx) }

// Poller calls a Refresher on every tick until stopped. A tick that fires
// while a refresh is still running is dropped by the ticker.
type Poller struct {
	refresher Refresher
	interval  time.Duration
	name      string
	immediate bool
	clock     clockwork.Clock

	stopOnce sync.Once
	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a poller with configuration options.
func New(r Refresher, interval time.Duration, opts ...Option) (*Poller, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	p := &Poller{
		refresher: r,
		interval:  interval,
		name:      "poller",
		clock:     clockwork.NewRealClock(),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.Named(p.name)
	return p, nil
}

// Run starts the poll loop. It returns when ctx is canceled or Shutdown is
// called.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.done)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info(ctx, "poller started", logger.Duration("interval", p.interval))
	if p.immediate {
		p.tick(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.Chan():
			p.tick(ctx)
		}
	}
}

// Shutdown stops the loop and waits for the running refresh to return.
func (p *Poller) Shutdown(ctx context.Context) error {
	p.stopOnce.Do(func() { close(p.shutdown) })

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		p.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (p *Poller) tick(ctx context.Context) {
	if err := p.refresher.Refresh(ctx); err != nil && ctx.Err() == nil {
		p.logger.Warn(ctx, "scheduled refresh failed", logger.Error(err))
	}
}
