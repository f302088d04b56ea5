package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guardwatch/roster/cmd/cli/commands"
	"github.com/guardwatch/roster/internal/config"
	"github.com/guardwatch/roster/pkg/postgres"
	"github.com/guardwatch/roster/pkg/utils/logging"
)

var (
	env string
	app *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Guard roster CLI - detect conflicts and auto-fill shifts",
		Long:  `A CLI tool for coordinating security-guard shift rosters: conflict detection, candidate scoring, auto-fill planning, and clock event evaluation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.DefineRosterCmd(appRef()))
	rootCmd.AddCommand(commands.AnalyzeConflictsCmd(appRef()))
	rootCmd.AddCommand(commands.ScoreCandidatesCmd(appRef()))
	rootCmd.AddCommand(commands.AutoFillCmd(appRef()))
	rootCmd.AddCommand(commands.ClockInCmd(appRef()))
	rootCmd.AddCommand(commands.ClockOutCmd(appRef()))
	rootCmd.AddCommand(commands.NotifyConflictsCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created empty so commands can bind
// to it before initApp populates the fields
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ref := appRef()
	ref.Cfg = cfg
	ref.Database = database
	ref.Logger = logger
	ref.Ctx = ctx
	return nil
}
