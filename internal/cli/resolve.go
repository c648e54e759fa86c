package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avdelgado/paideia/internal/domain"
)

// resolveSubjectID accepts a subject name (case-insensitive), a full ID, or
// an unambiguous ID prefix.
func resolveSubjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("subject is required")
	}

	subjects, err := app.Subjects.List(ctx)
	if err != nil {
		return "", err
	}

	for _, s := range subjects {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}
	for _, s := range subjects {
		if s.ID == input {
			return s.ID, nil
		}
	}

	var matches []string
	for _, s := range subjects {
		if strings.HasPrefix(s.ID, input) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("subject not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("subject ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveMilestoneID accepts a milestone title (case-insensitive), a full ID,
// or an unambiguous ID prefix.
func resolveMilestoneID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("milestone is required")
	}

	milestones, err := app.Milestones.List(ctx)
	if err != nil {
		return "", err
	}

	for _, m := range milestones {
		if strings.EqualFold(m.Title, input) {
			return m.ID, nil
		}
	}
	for _, m := range milestones {
		if m.ID == input {
			return m.ID, nil
		}
	}

	var matches []string
	for _, m := range milestones {
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("milestone not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("milestone ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

var dayAliases = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
}

// parseDay accepts a weekday name ("mon", "Monday") or index ("0".."4").
func parseDay(input string) (int, error) {
	lower := strings.ToLower(strings.TrimSpace(input))
	if day, ok := dayAliases[lower]; ok {
		return day, nil
	}
	day, err := strconv.Atoi(lower)
	if err != nil || day < 0 || day >= domain.DaysPerWeek {
		return 0, fmt.Errorf("invalid day %q (use mon..fri or 0..4)", input)
	}
	return day, nil
}

// parseClock converts "HH:MM" to a minute-of-day offset.
func parseClock(input string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(input), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q (use HH:MM)", input)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (use HH:MM)", input)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (use HH:MM)", input)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", input)
	}
	return hour*60 + minute, nil
}

// parseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func parseDate(input string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", input, err)
	}
	return t, nil
}
