package cli

import (
	"context"
	"fmt"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/avdelgado/paideia/internal/domain"
	"github.com/spf13/cobra"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subject",
		Short: "Manage subjects",
	}

	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectUpdateCmd(app),
		newSubjectRemoveCmd(app),
	)

	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Subject{Name: name, Color: color}
			if err := app.Subjects.Create(context.Background(), s); err != nil {
				return err
			}
			fmt.Printf("Created subject %s\n", s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Subject name")
	cmd.Flags().StringVar(&color, "color", "", "Hex color for rendering (e.g. #83a598)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := app.Subjects.List(context.Background())
			if err != nil {
				return err
			}
			if len(subjects) == 0 {
				fmt.Println(formatter.Dim("No subjects yet."))
				return nil
			}

			rows := make([][]string, 0, len(subjects))
			for _, s := range subjects {
				rows = append(rows, []string{
					shortID(s.ID),
					formatter.SubjectStyle(s.Color).Render(s.Name),
					s.Color,
				})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "COLOR"}, rows))
			return nil
		},
	}
}

func newSubjectUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update <subject>",
		Short: "Update a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSubjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			s, err := app.Subjects.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				s.Name = name
			}
			if cmd.Flags().Changed("color") {
				s.Color = color
			}
			if err := app.Subjects.Update(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Updated subject %s\n", s.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New hex color")

	return cmd
}

func newSubjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <subject>",
		Short: "Delete a subject and its timetable blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveSubjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Subjects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Println("Subject removed")
			return nil
		},
	}
}

// shortID truncates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
