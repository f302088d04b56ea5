package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/guardwatch/roster/pkg/core/services"
)

// AnalyzeConflictsCmd creates the analyzeConflicts command
func AnalyzeConflictsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyzeConflicts <from> <to>",
		Short: "Scan the roster for scheduling conflicts in a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}

			conflicts, err := services.AnalyzeConflicts(app.Ctx, app.Database, app.Logger, from, to, time.Now(), app.Cfg.Limits())
			if err != nil {
				return err
			}

			if len(conflicts) == 0 {
				fmt.Printf("\n✓ No conflicts found between %s and %s\n\n", args[0], args[1])
				return nil
			}

			fmt.Printf("\n%d conflicts found:\n\n", len(conflicts))
			for _, c := range conflicts {
				fmt.Printf("  [%-8s] %-26s shift %s\n", c.Severity, c.Type, c.ShiftID)
				fmt.Printf("             %s\n", c.Description)
			}
			fmt.Println()
			return nil
		},
	}
}
