package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardwatch/roster/pkg/core/services"
)

// DefineRosterCmd creates the defineRoster command
func DefineRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "defineRoster <from> <to>",
		Short: "Expand configured shift patterns into shifts over a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}

			shifts, err := services.DefineRoster(app.Ctx, app.Database, app.Logger, app.Cfg.ShiftPatterns, from, to)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster defined: %d shifts created\n\n", len(shifts))
			for _, s := range shifts {
				fmt.Printf("  %s  site %-12s %s - %s  (%d required)\n",
					s.Start.Format("2006-01-02"), s.SiteID,
					s.Start.Format("15:04"), s.End.Format("15:04"),
					s.RequiredEmployees)
			}
			fmt.Println()
			return nil
		},
	}
}
