package scheduler

import (
	"math"
	"sort"
	"time"
)

// Progressor is anything with a completion ratio and an optional target date.
// Milestones and units both satisfy it, which keeps the two ranking
// granularities on one formula.
type Progressor interface {
	ProgressID() string
	Completion() float64
	Target() *time.Time
}

// Urgency scores a single progressor: (1 - completion) / daysUntil(target),
// with daysUntil floored at 1 (overdue work gets the maximal score for its
// remaining share) and horizonDays substituted when no target date is set.
// A fully complete progressor scores 0 regardless of deadline. The result is
// always finite and non-negative.
func Urgency(p Progressor, now time.Time, horizonDays int) float64 {
	remaining := 1 - p.Completion()
	if remaining <= 0 {
		return 0
	}
	days := horizonDays
	if t := p.Target(); t != nil {
		days = daysUntil(*t, now)
	}
	if days < 1 {
		days = 1
	}
	return remaining / float64(days)
}

func daysUntil(target, now time.Time) int {
	return int(math.Ceil(target.Sub(now).Hours() / 24))
}

// Rank scores every progressor and returns urgency keyed by progress ID.
func Rank[T Progressor](items []T, now time.Time, horizonDays int) map[string]float64 {
	scores := make(map[string]float64, len(items))
	for _, it := range items {
		scores[it.ProgressID()] = Urgency(it, now, horizonDays)
	}
	return scores
}

// Ranked is one entry of a sorted urgency view.
type Ranked struct {
	ID      string
	Urgency float64
}

// SortedByUrgency returns all progressors ranked descending by urgency,
// ties broken by ID ascending for determinism.
func SortedByUrgency[T Progressor](items []T, now time.Time, horizonDays int) []Ranked {
	ranked := make([]Ranked, 0, len(items))
	for _, it := range items {
		ranked = append(ranked, Ranked{ID: it.ProgressID(), Urgency: Urgency(it, now, horizonDays)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Urgency != ranked[j].Urgency {
			return ranked[i].Urgency > ranked[j].Urgency
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
