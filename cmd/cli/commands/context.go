package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/guardwatch/roster/internal/config"
	"github.com/guardwatch/roster/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}

// parseDate parses a command-line date argument in YYYY-MM-DD form
func parseDate(arg string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", arg, err)
	}
	return t, nil
}

// parseRange parses a from/to date argument pair into a half-open range
func parseRange(fromArg, toArg string) (time.Time, time.Time, error) {
	from, err := parseDate(fromArg)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(toArg)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date must be after from date")
	}
	return from, to, nil
}
