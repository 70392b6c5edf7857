package main

import (
	"fmt"
	"os"
	"strings"

	"relaybot/internal/config"
	"relaybot/internal/moderation"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logger.Sync()

		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return err
		}
		defer db.Close()

		if args[0] == "up" {
			return runMigrations(db, cfg.MigrationsPath, logger)
		}

		m, err := newMigrator(db, cfg.MigrationsPath)
		if err != nil {
			return err
		}
		if err := m.Steps(-1); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		logger.Info("Rolled back one migration", zap.String("source", cfg.MigrationsPath))
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <text>",
	Short: "Report whether text contains a forbidden word",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("words")

		filter, err := moderation.Load(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if term, ok := filter.Match(strings.Join(args, " ")); ok {
			fmt.Fprintf(out, "forbidden: %q\n", term)
			return nil
		}
		fmt.Fprintln(out, "clean")
		return nil
	},
}

func init() {
	checkCmd.Flags().String("words", os.Getenv("FORBIDDEN_WORDS_PATH"), "YAML term list (defaults to the embedded list)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(checkCmd)
}
