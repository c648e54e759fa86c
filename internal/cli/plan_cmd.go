package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/avdelgado/paideia/internal/contract"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/avdelgado/paideia/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// strategyValue is a pflag.Value that rejects unknown pacing strategies at
// parse time.
type strategyValue domain.PacingStrategy

var _ pflag.Value = (*strategyValue)(nil)

func (s *strategyValue) String() string { return string(*s) }
func (s *strategyValue) Type() string   { return "strategy" }

func (s *strategyValue) Set(v string) error {
	if !domain.ValidPacingStrategies[v] {
		return fmt.Errorf("unknown pacing strategy %q (use relaxed, standard or aggressive)", v)
	}
	*s = strategyValue(v)
	return nil
}

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and inspect weekly schedules",
	}

	cmd.AddCommand(
		newPlanGenerateCmd(app),
		newPlanShowCmd(app),
		newPlanViewCmd(app),
	)

	return cmd
}

// defaultWeekStart picks the Monday being planned for: today when run on a
// Monday, otherwise the next one.
func defaultWeekStart(now time.Time) time.Time {
	ws := service.WeekStartOf(now)
	if now.UTC().Weekday() != time.Monday {
		ws = ws.AddDate(0, 0, 7)
	}
	return ws
}

func parseWeekFlag(week string) (time.Time, error) {
	if week == "" {
		return defaultWeekStart(time.Now()), nil
	}
	return parseDate(week)
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	var week string
	strategy := strategyValue(domain.PacingStandard)
	var noBuffer, dryRun bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Allocate the backlog onto next week's usable blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			weekStart, err := parseWeekFlag(week)
			if err != nil {
				return err
			}

			req := contract.NewPlanWeekRequest(weekStart)
			req.Strategy = domain.PacingStrategy(strategy)
			req.PreserveBuffer = !noBuffer
			req.DryRun = dryRun

			resp, err := app.Plan.PlanWeek(ctx, req)
			if err != nil {
				return err
			}

			subjectNames, itemTitles, err := displayMaps(ctx, app)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatPlanSummary(resp, subjectNames, itemTitles))
			if dryRun {
				fmt.Println(formatter.Dim("Dry run: nothing was saved."))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week start Monday (YYYY-MM-DD, default next week)")
	cmd.Flags().Var(&strategy, "strategy", "Pacing strategy (relaxed, standard, aggressive)")
	cmd.Flags().BoolVar(&noBuffer, "no-buffer", false, "Fill every usable block, reserving nothing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute without saving")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a saved weekly schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			weekStart, err := parseWeekFlag(week)
			if err != nil {
				return err
			}

			schedule, err := app.Plan.GetWeek(ctx, weekStart)
			if err != nil {
				return err
			}
			subjectNames, itemTitles, err := displayMaps(ctx, app)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatSchedule(schedule, subjectNames, itemTitles))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week start Monday (YYYY-MM-DD, default next week)")

	return cmd
}

func newPlanViewCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse a saved schedule day by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("plan view requires a terminal (use `plan show` instead)")
			}

			ctx := context.Background()
			weekStart, err := parseWeekFlag(week)
			if err != nil {
				return err
			}
			schedule, err := app.Plan.GetWeek(ctx, weekStart)
			if err != nil {
				return err
			}
			subjectNames, itemTitles, err := displayMaps(ctx, app)
			if err != nil {
				return err
			}

			model := newScheduleViewModel(schedule, subjectNames, itemTitles)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week start Monday (YYYY-MM-DD, default next week)")

	return cmd
}

// displayMaps loads ID-to-name lookups for schedule rendering. Item titles
// cover every milestone's items so past runs render even after completion.
func displayMaps(ctx context.Context, app *App) (subjectNames, itemTitles map[string]string, err error) {
	subjects, err := app.Subjects.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	subjectNames = make(map[string]string, len(subjects))
	for _, s := range subjects {
		subjectNames[s.ID] = s.Name
	}

	milestones, err := app.Milestones.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	itemTitles = make(map[string]string)
	for _, m := range milestones {
		items, err := app.WorkItems.ListByMilestone(ctx, m.ID)
		if err != nil {
			return nil, nil, err
		}
		for _, w := range items {
			itemTitles[w.ID] = w.Title
		}
	}
	return subjectNames, itemTitles, nil
}
