package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardwatch/roster/pkg/core/services"
)

// ScoreCandidatesCmd creates the scoreCandidates command
func ScoreCandidatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scoreCandidates <shift_id> <from> <to>",
		Short: "Rank candidate employees for a shift in the given date range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID := args[0]
			from, to, err := parseRange(args[1], args[2])
			if err != nil {
				return err
			}

			scores, err := services.ScoreCandidates(app.Ctx, app.Database, app.Logger, shiftID, from, to, app.Cfg.Limits())
			if err != nil {
				return err
			}

			if len(scores) == 0 {
				fmt.Printf("\nNo candidates available for shift %s\n\n", shiftID)
				return nil
			}

			fmt.Printf("\nCandidates for shift %s:\n\n", shiftID)
			for i, s := range scores {
				fmt.Printf("  %2d. %-16s %6.1f  %-16s", i+1, s.EmployeeID, s.Total, s.Recommendation)
				if len(s.Warnings) > 0 {
					fmt.Printf("  warnings: %v", s.Warnings)
				}
				fmt.Println()
			}
			fmt.Println()
			return nil
		},
	}
}
