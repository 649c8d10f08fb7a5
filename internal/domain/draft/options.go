package draft

import "github.com/okian/draftassist/pkg/logger"

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithIdentity sets how the local user's team is recognized.
func WithIdentity(id Identity) Option {
	return func(n *Normalizer) {
		n.identity = id
	}
}

// WithLogger sets the logger used for reconciliation warnings.
func WithLogger(l logger.Logger) Option {
	return func(n *Normalizer) {
		if l != nil {
			n.log = l
		}
	}
}
