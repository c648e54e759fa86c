package cli

import (
	"context"
	"fmt"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// paideiaHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func paideiaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateClock(input string) error {
	if input == "" {
		return fmt.Errorf("required")
	}
	_, err := parseClock(input)
	return err
}

// runTimetableAddForm collects the new block's fields interactively.
func runTimetableAddForm(ctx context.Context, app *App, subject, day, start, end *string) error {
	subjects, err := app.Subjects.List(ctx)
	if err != nil {
		return err
	}
	if len(subjects) == 0 {
		return fmt.Errorf("no subjects yet; create one with `paideia subject add` first")
	}

	subjectOptions := make([]huh.Option[string], 0, len(subjects))
	for _, s := range subjects {
		subjectOptions = append(subjectOptions, huh.NewOption(s.Name, s.ID))
	}
	dayOptions := []huh.Option[string]{
		huh.NewOption("Monday", "0"),
		huh.NewOption("Tuesday", "1"),
		huh.NewOption("Wednesday", "2"),
		huh.NewOption("Thursday", "3"),
		huh.NewOption("Friday", "4"),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Subject").
				Options(subjectOptions...).
				Value(subject),
			huh.NewSelect[string]().
				Title("Day").
				Options(dayOptions...).
				Value(day),
			huh.NewInput().
				Title("Start (HH:MM)").
				Placeholder("08:00").
				Value(start).
				Validate(validateClock),
			huh.NewInput().
				Title("End (HH:MM)").
				Placeholder("09:00").
				Value(end).
				Validate(validateClock),
		),
	).WithTheme(paideiaHuhTheme()).WithShowHelp(false)

	return form.Run()
}
