package formatter

import (
	"fmt"
	"strings"

	"github.com/avdelgado/paideia/internal/contract"
	"github.com/avdelgado/paideia/internal/domain"
)

// FormatSchedule renders a weekly schedule day by day. subjectNames and
// itemTitles map IDs to display names; unknown IDs fall back to the raw ID.
func FormatSchedule(ws *domain.WeeklySchedule, subjectNames, itemTitles map[string]string) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Week of %s (%s pacing)", ws.WeekStart.Format("Jan 2 2006"), ws.Strategy)))
	b.WriteString("\n")

	byDay := make(map[int][]domain.ScheduleEntry)
	for _, e := range ws.Entries {
		byDay[e.Day] = append(byDay[e.Day], e)
	}

	for day := 0; day < domain.DaysPerWeek; day++ {
		entries := byDay[day]
		if len(entries) == 0 {
			continue
		}
		date := ws.WeekStart.AddDate(0, 0, day)
		b.WriteString("\n" + Bold(fmt.Sprintf("%s %s", DayName(day), date.Format("Jan 2"))) + "\n")
		for _, e := range entries {
			b.WriteString(formatEntryLine(e, subjectNames, itemTitles) + "\n")
		}
	}

	if len(ws.Entries) == 0 {
		b.WriteString("\n" + Dim("No usable blocks this week.") + "\n")
	}
	return b.String()
}

func formatEntryLine(e domain.ScheduleEntry, subjectNames, itemTitles map[string]string) string {
	subject := displayName(subjectNames, e.SubjectID)
	slot := fmt.Sprintf("  %s  %-12s", StyleBlue.Render(ClockRange(e.StartMinute, e.EndMinute)), subject)
	if e.IsBuffer() {
		return slot + Dim("buffer")
	}
	return slot + StyleFg.Render(displayName(itemTitles, *e.WorkItemID))
}

// FormatPlanSummary renders the outcome of a planning run: counts, the
// schedule itself, dropped items and warnings.
func FormatPlanSummary(resp *contract.PlanWeekResponse, subjectNames, itemTitles map[string]string) string {
	var b strings.Builder

	schedule := &domain.WeeklySchedule{
		ID:          resp.ScheduleID,
		WeekStart:   resp.WeekStart,
		Strategy:    resp.Strategy,
		GeneratedAt: resp.GeneratedAt,
		Entries:     resp.Entries,
	}
	b.WriteString(FormatSchedule(schedule, subjectNames, itemTitles))

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d usable, %s %d, %s %d\n",
		Dim("blocks:"), resp.UsableBlocks,
		Dim("assigned:"), resp.AssignedCount,
		Dim("buffer:"), resp.BufferCount))

	if len(resp.Dropped) > 0 {
		b.WriteString("\n" + StyleYellow.Render(fmt.Sprintf("Did not fit (%d):", len(resp.Dropped))) + "\n")
		rows := make([][]string, 0, len(resp.Dropped))
		for _, d := range resp.Dropped {
			rows = append(rows, []string{
				d.Title,
				displayName(subjectNames, d.SubjectID),
				fmt.Sprintf("%.3f", d.Urgency),
			})
		}
		b.WriteString(RenderTable([]string{"ITEM", "SUBJECT", "URGENCY"}, rows))
	}

	for _, w := range resp.Warnings {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	return b.String()
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}
