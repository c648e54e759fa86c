package cli

import (
	"github.com/avdelgado/paideia/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Subjects   service.SubjectService
	Timetable  service.TimetableService
	Calendar   service.CalendarService
	Milestones service.MilestoneService
	WorkItems  service.WorkItemService
	Plan       service.PlanService
	Status     service.StatusService

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// and the schedule browser require it.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "paideia" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "paideia",
		Short: "Weekly teaching-schedule planner",
	}

	root.AddCommand(
		newSubjectCmd(app),
		newTimetableCmd(app),
		newCalendarCmd(app),
		newMilestoneCmd(app),
		newWorkCmd(app),
		newPlanCmd(app),
		newStatusCmd(app),
	)

	return root
}
