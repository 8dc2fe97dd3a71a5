package wheel

// Limits holds the explosion guards applied before any enumeration result is
// allocated. Binomial growth makes naive enumeration intractable past modest
// pool sizes, so every entry point checks the estimated combination count
// against these ceilings first. Values are configuration, not constants:
// cmd/engine overrides them from the environment.
type Limits struct {
	// MaxTrackedSubsets caps the t-subset universe the coverage evaluator
	// and the greedy optimizer keep in memory.
	MaxTrackedSubsets int64

	// MaxCandidates caps the candidate K-subset space enumerated by the
	// full wheel and the greedy optimizer.
	MaxCandidates int64

	// MaxCandidatesLargeK replaces MaxCandidates once GameSize reaches
	// LargeKThreshold. Each ticket then carries proportionally more weight,
	// so the ceiling drops sharply.
	MaxCandidatesLargeK int64
	LargeKThreshold     int

	// MaxGreedyTickets bounds the greedy covering loop. Hitting it is not
	// an error: the result simply reports a coverage score below 100.
	MaxGreedyTickets int

	// SampleSize is how many unused candidates the balanced generator draws
	// per ticket pick (sampling, not full enumeration, for tractability).
	SampleSize int

	// MaxBalancedTickets is the default target for balanced wheels when the
	// caller does not supply one.
	MaxBalancedTickets int
}

// DefaultLimits returns the production ceilings. At these values a worst
// case generation runs in seconds, not minutes.
func DefaultLimits() Limits {
	return Limits{
		MaxTrackedSubsets:   50_000,
		MaxCandidates:       100_000,
		MaxCandidatesLargeK: 500,
		LargeKThreshold:     50,
		MaxGreedyTickets:    5_000,
		SampleSize:          1_000,
		MaxBalancedTickets:  200,
	}
}

// candidateCeiling returns the candidate-ticket ceiling for a given ticket
// size K.
func (l Limits) candidateCeiling(k int) int64 {
	if l.LargeKThreshold > 0 && k >= l.LargeKThreshold {
		return l.MaxCandidatesLargeK
	}
	return l.MaxCandidates
}
