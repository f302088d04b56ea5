package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/guardwatch/roster/pkg/clients/gmailclient"
	"github.com/guardwatch/roster/pkg/core/services"
)

// NotifyConflictsCmd creates the notifyConflicts command. The Gmail client
// is built here rather than in initApp so the other commands work without
// OAuth credentials.
func NotifyConflictsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notifyConflicts <from> <to>",
		Short: "Email a conflict digest for a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}

			recipient := app.Cfg.Notify.Recipient
			if recipient == "" {
				return fmt.Errorf("notify.recipient is not configured")
			}

			accessToken := os.Getenv("GMAIL_ACCESS_TOKEN")
			if accessToken == "" {
				return fmt.Errorf("GMAIL_ACCESS_TOKEN environment variable is not set")
			}
			tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

			mailer, err := gmailclient.NewClient(app.Ctx, tokenSource)
			if err != nil {
				return err
			}

			count, err := services.NotifyConflicts(app.Ctx, app.Database, mailer, app.Logger, recipient, from, to, time.Now(), app.Cfg.Limits())
			if err != nil {
				return err
			}

			if count == 0 {
				fmt.Printf("\n✓ No conflicts found, no email sent\n\n")
			} else {
				fmt.Printf("\n✓ Conflict digest with %d conflicts sent to %s\n\n", count, recipient)
			}
			return nil
		},
	}
}
