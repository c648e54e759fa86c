package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/spf13/cobra"
)

func newTimetableCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timetable",
		Short: "Manage the fixed weekly timetable",
	}

	cmd.AddCommand(
		newTimetableAddCmd(app),
		newTimetableListCmd(app),
		newTimetableRemoveCmd(app),
	)

	return cmd
}

func newTimetableAddCmd(app *App) *cobra.Command {
	var subject, day, start, end string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a recurring time block",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if interactive {
				if app.IsInteractive != nil && !app.IsInteractive() {
					return fmt.Errorf("interactive mode requires a terminal")
				}
				if err := runTimetableAddForm(ctx, app, &subject, &day, &start, &end); err != nil {
					return err
				}
			}
			if subject == "" || day == "" || start == "" || end == "" {
				return fmt.Errorf("--subject, --day, --start and --end are required (or use -i)")
			}

			subjectID, err := resolveSubjectID(ctx, app, subject)
			if err != nil {
				return err
			}
			dayIdx, err := parseDay(day)
			if err != nil {
				return err
			}
			startMin, err := parseClock(start)
			if err != nil {
				return err
			}
			endMin, err := parseClock(end)
			if err != nil {
				return err
			}

			b := &domain.TimeBlock{
				SubjectID:   subjectID,
				Day:         dayIdx,
				StartMinute: startMin,
				EndMinute:   endMin,
			}
			if err := app.Timetable.AddBlock(ctx, b); err != nil {
				return err
			}
			fmt.Printf("Added %s block %s %s\n", subject, formatter.DayName(dayIdx), formatter.ClockRange(startMin, endMin))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject name or ID")
	cmd.Flags().StringVar(&day, "day", "", "Weekday (mon..fri or 0..4)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the block via a form")

	return cmd
}

func newTimetableListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the weekly timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			blocks, err := app.Timetable.ListBlocks(ctx)
			if err != nil {
				return err
			}
			if len(blocks) == 0 {
				fmt.Println(formatter.Dim("Timetable is empty."))
				return nil
			}
			subjects, err := app.Subjects.List(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(subjects))
			colors := make(map[string]string, len(subjects))
			for _, s := range subjects {
				names[s.ID] = s.Name
				colors[s.ID] = s.Color
			}

			sort.SliceStable(blocks, func(i, j int) bool {
				if blocks[i].Day != blocks[j].Day {
					return blocks[i].Day < blocks[j].Day
				}
				return blocks[i].StartMinute < blocks[j].StartMinute
			})

			rows := make([][]string, 0, len(blocks))
			for _, b := range blocks {
				rows = append(rows, []string{
					shortID(b.ID),
					formatter.DayName(b.Day),
					formatter.ClockRange(b.StartMinute, b.EndMinute),
					formatter.SubjectStyle(colors[b.SubjectID]).Render(names[b.SubjectID]),
					fmt.Sprintf("%dm", b.Duration()),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "DAY", "TIME", "SUBJECT", "LENGTH"}, rows))
			return nil
		},
	}
}

func newTimetableRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <block-id>",
		Short: "Remove a time block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBlockID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Timetable.RemoveBlock(ctx, id); err != nil {
				return err
			}
			fmt.Println("Block removed")
			return nil
		},
	}
}

// resolveBlockID accepts a full block ID or an unambiguous prefix.
func resolveBlockID(ctx context.Context, app *App, input string) (string, error) {
	blocks, err := app.Timetable.ListBlocks(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, b := range blocks {
		if b.ID == input {
			return b.ID, nil
		}
		if len(input) > 0 && len(b.ID) >= len(input) && b.ID[:len(input)] == input {
			matches = append(matches, b.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("block not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("block ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
