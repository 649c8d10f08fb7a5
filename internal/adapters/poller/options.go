package poller

import (
	"github.com/jonboulle/clockwork"
	"github.com/okian/draftassist/pkg/logger"
)

// Option applies a configuration option to the Poller.
type Option func(*Poller)

// WithName sets the poller name for identification and logging.
func WithName(name string) Option {
	return func(p *Poller) {
		if name != "" {
			p.name = name
		}
	}
}

// WithLogger sets a custom logger for the poller.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock sets the clock driving the ticker.
func WithClock(c clockwork.Clock) Option {
	return func(p *Poller) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithImmediate makes Run refresh once before waiting for the first tick.
func WithImmediate(on bool) Option {
	return func(p *Poller) { p.immediate = on }
}
