package main

import (
	"github.com/spf13/cobra"

	"github.com/algoreed/crs/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	log.Info("Schema applied")
	return nil
}
