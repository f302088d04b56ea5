package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/guardwatch/roster/pkg/core/compliance"
	"github.com/guardwatch/roster/pkg/core/model"
)

// Mailer sends plain-text email; the gmail client implements it
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// NotifyConflicts runs conflict analysis over [from, to) and emails a digest
// of the findings to the recipient. Returns the number of conflicts
// reported; when the roster is clean no email is sent.
func NotifyConflicts(ctx context.Context, store RosterSnapshotStore, mailer Mailer, logger *zap.Logger, recipient string, from, to, now time.Time, limits compliance.Limits) (int, error) {
	conflicts, err := AnalyzeConflicts(ctx, store, logger, from, to, now, limits)
	if err != nil {
		return 0, err
	}

	if len(conflicts) == 0 {
		logger.Info("No conflicts to report, skipping notification")
		return 0, nil
	}

	subject := fmt.Sprintf("Roster conflicts: %d found (%s to %s)",
		len(conflicts), from.Format("2006-01-02"), to.Format("2006-01-02"))
	body := renderConflictDigest(conflicts)

	if err := mailer.SendEmail(recipient, subject, body); err != nil {
		return 0, fmt.Errorf("failed to send conflict digest: %w", err)
	}

	logger.Info("Conflict digest sent",
		zap.String("recipient", recipient),
		zap.Int("conflicts", len(conflicts)))
	return len(conflicts), nil
}

// renderConflictDigest builds the plain-text email body, grouping conflicts
// by severity from critical down
func renderConflictDigest(conflicts []model.Conflict) string {
	order := []model.Severity{
		model.SeverityCritical,
		model.SeverityHigh,
		model.SeverityMedium,
		model.SeverityLow,
	}

	var b strings.Builder
	for _, severity := range order {
		var section []model.Conflict
		for _, c := range conflicts {
			if c.Severity == severity {
				section = append(section, c)
			}
		}
		if len(section) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s (%d)\n", strings.ToUpper(string(severity)), len(section))
		for _, c := range section {
			fmt.Fprintf(&b, "  [%s] shift %s: %s\n", c.Type, c.ShiftID, c.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
