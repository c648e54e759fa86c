package cli

import (
	"context"
	"fmt"

	"github.com/avdelgado/paideia/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var withUnits bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show milestone urgency",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Status.UrgencyReport(context.Background(), nil)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatUrgencyReport(report, withUnits))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withUnits, "units", false, "Include the per-unit pacing view")

	return cmd
}
