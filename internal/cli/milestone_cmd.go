package cli

import (
	"context"
	"fmt"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestone",
		Short: "Manage milestones and their units",
	}

	cmd.AddCommand(
		newMilestoneAddCmd(app),
		newMilestoneListCmd(app),
		newMilestoneUpdateCmd(app),
		newMilestoneRemoveCmd(app),
		newUnitCmd(app),
	)

	return cmd
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var subject, title, target string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			subjectID, err := resolveSubjectID(ctx, app, subject)
			if err != nil {
				return err
			}

			m := &domain.Milestone{SubjectID: subjectID, Title: title}
			if target != "" {
				t, err := parseDate(target)
				if err != nil {
					return err
				}
				m.TargetDate = &t
			}
			if err := app.Milestones.Create(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Created milestone %s\n", m.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Milestone title")
	cmd.Flags().StringVar(&target, "target", "", "Target date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newMilestoneListCmd(app *App) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List milestones",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var milestones []domain.Milestone
			var err error
			if subject != "" {
				subjectID, rerr := resolveSubjectID(ctx, app, subject)
				if rerr != nil {
					return rerr
				}
				milestones, err = app.Milestones.ListBySubject(ctx, subjectID)
			} else {
				milestones, err = app.Milestones.List(ctx)
			}
			if err != nil {
				return err
			}
			if len(milestones) == 0 {
				fmt.Println(formatter.Dim("No milestones yet."))
				return nil
			}

			subjects, err := app.Subjects.List(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(subjects))
			for _, s := range subjects {
				names[s.ID] = s.Name
			}

			rows := make([][]string, 0, len(milestones))
			for _, m := range milestones {
				target := formatter.Dim("none")
				if m.TargetDate != nil {
					target = m.TargetDate.Format("2006-01-02")
				}
				rows = append(rows, []string{
					shortID(m.ID),
					m.Title,
					names[m.SubjectID],
					target,
					formatter.RenderProgress(m.CompletionRate, 10),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "MILESTONE", "SUBJECT", "TARGET", "PROGRESS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Only this subject's milestones")

	return cmd
}

func newMilestoneUpdateCmd(app *App) *cobra.Command {
	var title, target string

	cmd := &cobra.Command{
		Use:   "update <milestone>",
		Short: "Update a milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMilestoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			m, err := app.Milestones.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				m.Title = title
			}
			if cmd.Flags().Changed("target") {
				if target == "" {
					m.TargetDate = nil
				} else {
					t, err := parseDate(target)
					if err != nil {
						return err
					}
					m.TargetDate = &t
				}
			}
			if err := app.Milestones.Update(ctx, m); err != nil {
				return err
			}
			fmt.Printf("Updated milestone %s\n", m.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&target, "target", "", "New target date (YYYY-MM-DD, empty clears)")

	return cmd
}

func newMilestoneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <milestone>",
		Short: "Delete a milestone and its work items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveMilestoneID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Milestones.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Milestone removed")
			return nil
		},
	}
}

func newUnitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage a milestone's units",
	}

	cmd.AddCommand(
		newUnitAddCmd(app),
		newUnitListCmd(app),
		newUnitProgressCmd(app),
		newUnitRemoveCmd(app),
	)

	return cmd
}

func newUnitAddCmd(app *App) *cobra.Command {
	var milestone, title, target string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a unit to a milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestoneID, err := resolveMilestoneID(ctx, app, milestone)
			if err != nil {
				return err
			}

			u := &domain.Unit{MilestoneID: milestoneID, Title: title}
			if target != "" {
				t, err := parseDate(target)
				if err != nil {
					return err
				}
				u.TargetDate = &t
			}
			if err := app.Milestones.AddUnit(ctx, u); err != nil {
				return err
			}
			fmt.Printf("Added unit %s\n", u.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "Milestone title or ID")
	cmd.Flags().StringVar(&title, "title", "", "Unit title")
	cmd.Flags().StringVar(&target, "target", "", "Target date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("milestone")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newUnitListCmd(app *App) *cobra.Command {
	var milestone string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a milestone's units",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestoneID, err := resolveMilestoneID(ctx, app, milestone)
			if err != nil {
				return err
			}
			units, err := app.Milestones.ListUnits(ctx, milestoneID)
			if err != nil {
				return err
			}
			if len(units) == 0 {
				fmt.Println(formatter.Dim("No units yet."))
				return nil
			}

			rows := make([][]string, 0, len(units))
			for _, u := range units {
				target := formatter.Dim("none")
				if u.TargetDate != nil {
					target = u.TargetDate.Format("2006-01-02")
				}
				rows = append(rows, []string{
					shortID(u.ID),
					u.Title,
					target,
					formatter.RenderProgress(u.CompletionRate, 10),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "UNIT", "TARGET", "PROGRESS"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "Milestone title or ID")
	_ = cmd.MarkFlagRequired("milestone")

	return cmd
}

func newUnitProgressCmd(app *App) *cobra.Command {
	var milestone string
	var completion float64

	cmd := &cobra.Command{
		Use:   "progress <unit-id>",
		Short: "Record a unit's completion (0..1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestoneID, err := resolveMilestoneID(ctx, app, milestone)
			if err != nil {
				return err
			}
			unit, err := findUnit(ctx, app, milestoneID, args[0])
			if err != nil {
				return err
			}
			unit.CompletionRate = completion
			if err := app.Milestones.UpdateUnit(ctx, unit); err != nil {
				return err
			}
			fmt.Printf("Unit %s at %s\n", unit.Title, formatter.RenderProgress(unit.CompletionRate, 10))
			return nil
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "Milestone title or ID")
	cmd.Flags().Float64Var(&completion, "completion", 0, "Completion rate (0..1)")
	_ = cmd.MarkFlagRequired("milestone")
	_ = cmd.MarkFlagRequired("completion")

	return cmd
}

func newUnitRemoveCmd(app *App) *cobra.Command {
	var milestone string

	cmd := &cobra.Command{
		Use:   "remove <unit-id>",
		Short: "Remove a unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestoneID, err := resolveMilestoneID(ctx, app, milestone)
			if err != nil {
				return err
			}
			unit, err := findUnit(ctx, app, milestoneID, args[0])
			if err != nil {
				return err
			}
			if err := app.Milestones.DeleteUnit(ctx, unit.ID); err != nil {
				return err
			}
			fmt.Println("Unit removed")
			return nil
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "Milestone title or ID")
	_ = cmd.MarkFlagRequired("milestone")

	return cmd
}

// findUnit matches a unit within a milestone by title, ID or ID prefix.
func findUnit(ctx context.Context, app *App, milestoneID, input string) (*domain.Unit, error) {
	units, err := app.Milestones.ListUnits(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Unit
	for i := range units {
		u := &units[i]
		if u.ID == input || u.Title == input {
			return u, nil
		}
		if len(u.ID) >= len(input) && u.ID[:len(input)] == input {
			matches = append(matches, u)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("unit not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("unit ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
