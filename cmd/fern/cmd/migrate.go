package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Postgres schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		app, err := newApplication(cfg)
		if err != nil {
			return err
		}

		deps, err := app.start(cmd.Context(), "migrations")
		if err != nil {
			return err
		}
		app.logger.Info("Migrations applied")
		return deps.Stop(context.Background())
	},
}
