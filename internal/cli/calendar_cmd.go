package cli

import (
	"context"
	"fmt"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage calendar exceptions",
	}

	cmd.AddCommand(
		newCalendarAddCmd(app),
		newCalendarListCmd(app),
		newCalendarRemoveCmd(app),
	)

	return cmd
}

func newCalendarAddCmd(app *App) *cobra.Command {
	var date, start, end, reason string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Block out a date (whole day, or a time window with --start/--end)",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDate(date)
			if err != nil {
				return err
			}

			e := &domain.CalendarException{
				Kind:   domain.ExceptionWholeDay,
				Date:   day,
				Reason: reason,
			}
			if start != "" || end != "" {
				if start == "" || end == "" {
					return fmt.Errorf("partial exceptions need both --start and --end")
				}
				e.Kind = domain.ExceptionPartial
				if e.StartMinute, err = parseClock(start); err != nil {
					return err
				}
				if e.EndMinute, err = parseClock(end); err != nil {
					return err
				}
			}

			if err := app.Calendar.AddException(context.Background(), e); err != nil {
				return err
			}
			if e.WholeDay() {
				fmt.Printf("Blocked %s (whole day)\n", day.Format("2006-01-02"))
			} else {
				fmt.Printf("Blocked %s %s\n", day.Format("2006-01-02"), formatter.ClockRange(e.StartMinute, e.EndMinute))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Window start (HH:MM), for partial exceptions")
	cmd.Flags().StringVar(&end, "end", "", "Window end (HH:MM), for partial exceptions")
	cmd.Flags().StringVar(&reason, "reason", "", "Why the time is unavailable")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newCalendarListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calendar exceptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			exceptions, err := app.Calendar.ListExceptions(context.Background())
			if err != nil {
				return err
			}
			if len(exceptions) == 0 {
				fmt.Println(formatter.Dim("No exceptions."))
				return nil
			}

			rows := make([][]string, 0, len(exceptions))
			for _, e := range exceptions {
				window := "whole day"
				if !e.WholeDay() {
					window = formatter.ClockRange(e.StartMinute, e.EndMinute)
				}
				rows = append(rows, []string{
					shortID(e.ID),
					e.Date.Format("2006-01-02"),
					window,
					e.Reason,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "DATE", "WINDOW", "REASON"}, rows))
			return nil
		},
	}
}

func newCalendarRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <exception-id>",
		Short: "Remove a calendar exception",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			exceptions, err := app.Calendar.ListExceptions(ctx)
			if err != nil {
				return err
			}
			var matches []string
			for _, e := range exceptions {
				if e.ID == args[0] {
					matches = []string{e.ID}
					break
				}
				if len(e.ID) >= len(args[0]) && e.ID[:len(args[0])] == args[0] {
					matches = append(matches, e.ID)
				}
			}
			switch len(matches) {
			case 0:
				return fmt.Errorf("exception not found: %q", args[0])
			case 1:
			default:
				return fmt.Errorf("exception ID prefix %q is ambiguous (%d matches)", args[0], len(matches))
			}
			if err := app.Calendar.RemoveException(ctx, matches[0]); err != nil {
				return err
			}
			fmt.Println("Exception removed")
			return nil
		},
	}
}
