package scheduler

import "github.com/avdelgado/paideia/internal/domain"

// Suggest filters a work-item catalogue by tag predicates. An item is
// excluded when it carries any tag whose filter flag is false; items with no
// matching tag pass through. Tags absent from the filter map are neutral.
func Suggest(catalogue []domain.WorkItem, filters map[string]bool) []domain.WorkItem {
	out := make([]domain.WorkItem, 0, len(catalogue))
	for _, it := range catalogue {
		if suggestExcluded(it, filters) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func suggestExcluded(it domain.WorkItem, filters map[string]bool) bool {
	for _, tag := range it.Tags {
		if allowed, ok := filters[tag]; ok && !allowed {
			return true
		}
	}
	return false
}
