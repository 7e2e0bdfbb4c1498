package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/internal/repositories/canonicaljob"
	"github.com/Ramsey-B/fern/pkg/models"
)

var reconcileDate string

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Print the quote to job match groups for a date as JSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		date := models.NewDate(time.Now().In(cfg.Location()))
		if reconcileDate != "" {
			date, err = models.ParseDate(reconcileDate)
			if err != nil {
				return err
			}
		}

		app, err := newApplication(cfg)
		if err != nil {
			return err
		}
		deps, err := app.start(cmd.Context(), "database")
		if err != nil {
			return err
		}
		defer func() { _ = deps.Stop(context.Background()) }()

		service := app.reconcileService(canonicaljob.NewRepository(app.db, app.logger))
		resp, err := service.Reconcile(cmd.Context(), models.JobFilter{
			Date:     &date,
			JobTypes: cfg.MoveJobTypes,
		})
		if err != nil {
			return &exitError{err: err}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	},
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileDate, "date", "", "date to reconcile (YYYY-MM-DD), defaults to today")
}
