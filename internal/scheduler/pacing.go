package scheduler

import (
	"math"

	"github.com/avdelgado/paideia/internal/domain"
)

// PacingPolicy holds the tunable constants the allocator and ranker consult.
// These are configuration, not hidden literals: callers may override them,
// and DefaultPacingPolicy is the single place the shipped numbers live.
type PacingPolicy struct {
	// BufferFraction is the fraction of each day's blocks reserved as idle
	// buffer when buffer preservation is on, keyed by strategy. Reservation
	// is per day: reserved(day) = floor(dayBlockCount * fraction), taken
	// from the chronologically last blocks of the day so assigned work
	// lands early and flex time trails.
	BufferFraction map[domain.PacingStrategy]float64

	// DefaultHorizonDays is the deadline horizon assumed for milestones and
	// units that have no target date.
	DefaultHorizonDays int
}

// DefaultPacingPolicy returns the shipped pacing configuration.
func DefaultPacingPolicy() PacingPolicy {
	return PacingPolicy{
		BufferFraction: map[domain.PacingStrategy]float64{
			domain.PacingRelaxed:    0.40,
			domain.PacingStandard:   0.25,
			domain.PacingAggressive: 0.10,
		},
		DefaultHorizonDays: 30,
	}
}

// reservedFor returns how many of a day's n blocks are reserved as buffer
// under the given strategy. Unknown strategies fall back to standard pacing.
func (p PacingPolicy) reservedFor(strategy domain.PacingStrategy, n int) int {
	frac, ok := p.BufferFraction[strategy]
	if !ok {
		frac = p.BufferFraction[domain.PacingStandard]
	}
	return int(math.Floor(float64(n) * frac))
}
