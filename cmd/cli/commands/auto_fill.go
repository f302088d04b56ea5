package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardwatch/roster/pkg/core/autofill"
	"github.com/guardwatch/roster/pkg/core/model"
	"github.com/guardwatch/roster/pkg/core/services"
)

// AutoFillCmd creates the autoFill command
func AutoFillCmd(app *AppContext) *cobra.Command {
	var preview bool
	var siteID string

	cmd := &cobra.Command{
		Use:   "autoFill <from> <to>",
		Short: "Auto-assign top candidates to understaffed shifts in a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}

			outcome, err := services.PlanAutoFill(app.Ctx, app.Database, app.Logger, autofill.Options{
				From:        from,
				To:          to,
				SiteID:      siteID,
				Preview:     preview,
				MinimumTier: model.Recommendation(app.Cfg.MinimumTier),
				Limits:      app.Cfg.Limits(),
			})
			if err != nil {
				return err
			}

			mode := "commit"
			if preview {
				mode = "preview"
			}
			fmt.Printf("\nAuto-fill (%s): %d filled, %d partially filled, %d unfilled, %d assignments\n\n",
				mode, outcome.Summary.Filled, outcome.Summary.PartiallyFilled,
				outcome.Summary.Unfilled, outcome.Summary.Assignments)

			for _, r := range outcome.Results {
				fmt.Printf("  shift %-12s %s\n", r.ShiftID, r.Status)
				for _, a := range r.Assigned {
					fmt.Printf("    + %-16s %6.1f  %s\n", a.EmployeeID, a.Score, a.Recommendation)
				}
				if r.Error != "" {
					fmt.Printf("    ! persistence error: %s\n", r.Error)
				}
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Compute the plan without persisting any assignment")
	cmd.Flags().StringVar(&siteID, "site", "", "Restrict filling to one site")
	return cmd
}
