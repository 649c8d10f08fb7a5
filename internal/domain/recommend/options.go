package recommend

// Option configures an Engine.
type Option func(*Engine)

// WithLimit sets how many recommendations are kept.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithLatePositionRounds sets the first rounds at which kickers and
// defenses become eligible.
func WithLatePositionRounds(kicker, defense int) Option {
	return func(e *Engine) {
		if kicker > 0 {
			e.kickerRound = kicker
		}
		if defense > 0 {
			e.defenseRound = defense
		}
	}
}
