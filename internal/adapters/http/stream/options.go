package stream

import (
	"net/http"
	"slices"
	"time"

	"github.com/okian/draftassist/pkg/logger"
)

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(l logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithPingInterval sets how often idle connections are pinged. The read
// deadline must stay longer than this.
func WithPingInterval(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.pingInterval = d
		}
	}
}

// WithWriteTimeout bounds each frame write.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

// WithAllowedOrigins restricts upgrades to the listed Origin values. A "*"
// entry allows any origin. Requests without an Origin header are allowed.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) {
		allowAll := slices.Contains(origins, "*")
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowAll || origin == "" || slices.Contains(origins, origin)
		}
	}
}
