package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/services"
)

// ClockInCmd creates the clockIn command
func ClockInCmd(app *AppContext) *cobra.Command {
	var at string
	var shiftID string

	cmd := &cobra.Command{
		Use:   "clockIn <employee_id>",
		Short: "Record a clock-in for an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := parseEventTime(at)
			if err != nil {
				return err
			}

			result, err := services.EvaluateClockEvent(app.Ctx, app.Database, app.Logger, args[0], shiftID, services.ClockInEvent, when, 0)
			if err != nil {
				if errors.Is(err, compliance.ErrDuplicateOpenEntry) {
					return fmt.Errorf("employee %s is already clocked in", args[0])
				}
				return err
			}

			fmt.Printf("\n✓ Clocked in %s at %s\n", args[0], result.Entry.StartTime.Format(time.RFC3339))
			printClockWarnings(result.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Event time (RFC3339, default now)")
	cmd.Flags().StringVar(&shiftID, "shift", "", "Shift the entry belongs to")
	return cmd
}

// ClockOutCmd creates the clockOut command
func ClockOutCmd(app *AppContext) *cobra.Command {
	var at string
	var breakMinutes int

	cmd := &cobra.Command{
		Use:   "clockOut <employee_id>",
		Short: "Record a clock-out for an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if breakMinutes < 0 {
				return fmt.Errorf("break minutes must not be negative")
			}
			when, err := parseEventTime(at)
			if err != nil {
				return err
			}

			result, err := services.EvaluateClockEvent(app.Ctx, app.Database, app.Logger, args[0], "", services.ClockOutEvent, when, breakMinutes)
			if err != nil {
				if errors.Is(err, compliance.ErrNoOpenEntry) {
					return fmt.Errorf("employee %s is not clocked in", args[0])
				}
				return err
			}

			fmt.Printf("\n✓ Clocked out %s at %s\n", args[0], result.Entry.EndTime.Format(time.RFC3339))
			printClockWarnings(result.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Event time (RFC3339, default now)")
	cmd.Flags().IntVar(&breakMinutes, "break", 0, "Break time in minutes")
	return cmd
}

func parseEventTime(arg string) (time.Time, error) {
	if arg == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event time %q, expected RFC3339: %w", arg, err)
	}
	return t, nil
}

func printClockWarnings(warnings []compliance.ClockWarning) {
	for _, w := range warnings {
		fmt.Printf("  ⚠ %s\n", w)
	}
	fmt.Println()
}
