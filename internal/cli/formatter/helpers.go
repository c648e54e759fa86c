package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// DayName returns the weekday label for a timetable day index (0 = Monday).
func DayName(day int) string {
	if day < 0 || day >= len(dayNames) {
		return fmt.Sprintf("Day %d", day)
	}
	return dayNames[day]
}

// Clock formats a minute-of-day offset as HH:MM.
func Clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ClockRange formats a start/end minute pair as HH:MM-HH:MM.
func ClockRange(start, end int) string {
	return Clock(start) + "-" + Clock(end)
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a
// reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// RelativeDate returns RelativeDateFrom measured against the wall clock.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}
