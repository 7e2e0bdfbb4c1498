package cmd

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ramsey-B/fern/pkg/hazardous"
	"github.com/Ramsey-B/fern/pkg/models"
)

var hazardousDate string

var hazardousCmd = &cobra.Command{
	Use:   "hazardous",
	Short: "Print the hazardous waste collection sites open on a date",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		date := time.Now().In(cfg.Location())
		if hazardousDate != "" {
			date, err = time.Parse(models.DateLayout, hazardousDate)
			if err != nil {
				return err
			}
		}

		schedule, err := hazardous.Load(cfg.HazardousSchedulePath)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(schedule.For(date))
	},
}

func init() {
	hazardousCmd.Flags().StringVar(&hazardousDate, "date", "", "date to check (YYYY-MM-DD), defaults to today")
}
