package formatter

import (
	"fmt"
	"strings"

	"github.com/avdelgado/paideia/internal/contract"
)

// FormatUrgencyReport renders the milestone urgency board, optionally with
// the per-unit breakdown appended.
func FormatUrgencyReport(report *contract.UrgencyReport, withUnits bool) string {
	var b strings.Builder
	b.WriteString(Header("Milestone urgency"))
	b.WriteString("\n")

	if len(report.Milestones) == 0 {
		b.WriteString(Dim("No milestones yet.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(report.Milestones))
	for _, m := range report.Milestones {
		rows = append(rows, []string{
			m.Title,
			m.SubjectName,
			targetCell(m.TargetDate),
			RenderProgress(m.Completion, 10),
			UrgencyStyle(m.Urgency).Render(urgencyCell(m.Urgency)),
		})
	}
	b.WriteString(RenderTable([]string{"MILESTONE", "SUBJECT", "TARGET", "PROGRESS", "URGENCY"}, rows))

	if withUnits && len(report.Units) > 0 {
		b.WriteString("\n" + Header("Unit pacing") + "\n")
		unitRows := make([][]string, 0, len(report.Units))
		for _, u := range report.Units {
			unitRows = append(unitRows, []string{
				u.Title,
				targetCell(u.TargetDate),
				RenderProgress(u.Completion, 10),
				UrgencyStyle(u.Urgency).Render(urgencyCell(u.Urgency)),
			})
		}
		b.WriteString(RenderTable([]string{"UNIT", "TARGET", "PROGRESS", "URGENCY"}, unitRows))
	}
	return b.String()
}

func targetCell(date *string) string {
	if date == nil {
		return Dim("none")
	}
	return *date
}

func urgencyCell(urgency float64) string {
	if urgency <= 0 {
		return "done"
	}
	return fmt.Sprintf("%.3f", urgency)
}
