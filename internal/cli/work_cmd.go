package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Manage the work item backlog",
	}

	cmd.AddCommand(
		newWorkAddCmd(app),
		newWorkListCmd(app),
		newWorkDoneCmd(app),
		newWorkArchiveCmd(app),
		newWorkRemoveCmd(app),
		newWorkSuggestCmd(app),
	)

	return cmd
}

func newWorkAddCmd(app *App) *cobra.Command {
	var milestone, title, itemType string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a work item to a milestone",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			milestoneID, err := resolveMilestoneID(ctx, app, milestone)
			if err != nil {
				return err
			}

			w := &domain.WorkItem{
				MilestoneID: milestoneID,
				Title:       title,
				Type:        itemType,
				Tags:        tags,
			}
			if err := app.WorkItems.Create(ctx, w); err != nil {
				return err
			}
			fmt.Printf("Added work item %s (#%d)\n", w.Title, w.Seq)
			return nil
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "Milestone title or ID")
	cmd.Flags().StringVar(&title, "title", "", "Work item title")
	cmd.Flags().StringVar(&itemType, "type", "lesson", "Type (lesson, activity, assessment, review, project, reading)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags (repeatable)")
	_ = cmd.MarkFlagRequired("milestone")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newWorkListCmd(app *App) *cobra.Command {
	var milestone string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backlog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var items []domain.WorkItem
			var err error
			if milestone != "" {
				milestoneID, rerr := resolveMilestoneID(ctx, app, milestone)
				if rerr != nil {
					return rerr
				}
				items, err = app.WorkItems.ListByMilestone(ctx, milestoneID)
			} else {
				items, err = app.WorkItems.ListBacklog(ctx)
			}
			if err != nil {
				return err
			}
			printWorkItems(items)
			return nil
		},
	}

	cmd.Flags().StringVar(&milestone, "milestone", "", "Only this milestone's items (any status)")

	return cmd
}

func newWorkDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <item-id>",
		Short: "Mark a work item done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkItems.MarkDone(ctx, id); err != nil {
				return err
			}
			fmt.Println("Marked done")
			return nil
		},
	}
}

func newWorkArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <item-id>",
		Short: "Archive a work item (removed from planning and progress)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkItems.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Println("Archived")
			return nil
		},
	}
}

func newWorkRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Delete a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkItemID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkItems.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Work item removed")
			return nil
		},
	}
}

func newWorkSuggestCmd(app *App) *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest backlog items, filtering out excluded tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := make(map[string]bool, len(exclude))
			for _, tag := range exclude {
				filters[tag] = false
			}
			items, err := app.WorkItems.Suggest(context.Background(), filters)
			if err != nil {
				return err
			}
			printWorkItems(items)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Skip items carrying this tag (repeatable)")

	return cmd
}

func printWorkItems(items []domain.WorkItem) {
	if len(items) == 0 {
		fmt.Println(formatter.Dim("No work items."))
		return
	}
	rows := make([][]string, 0, len(items))
	for _, w := range items {
		rows = append(rows, []string{
			shortID(w.ID),
			fmt.Sprintf("#%d", w.Seq),
			w.Title,
			w.Type,
			string(w.Status),
			strings.Join(w.Tags, ","),
		})
	}
	fmt.Print(formatter.RenderTable([]string{"ID", "SEQ", "TITLE", "TYPE", "STATUS", "TAGS"}, rows))
}

// resolveWorkItemID accepts a full work item ID or an unambiguous prefix,
// searched over the backlog first and milestone-independent by full ID.
func resolveWorkItemID(ctx context.Context, app *App, input string) (string, error) {
	if w, err := app.WorkItems.GetByID(ctx, input); err == nil {
		return w.ID, nil
	}
	items, err := app.WorkItems.ListBacklog(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, w := range items {
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("work item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("work item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
