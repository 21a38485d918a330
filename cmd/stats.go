package main

import (
	"fmt"
	"time"

	"HandWash/internal/models"
	"HandWash/internal/storage"
	"HandWash/internal/ui"

	"github.com/spf13/cobra"
)

var statsPeriod string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print countdown statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := models.ParsePeriod(statsPeriod)
		if err != nil {
			return err
		}
		_, cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := storage.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		stats, err := db.Stats(period.Since(time.Now()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", period.Label(), ui.FormatStats(stats))
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsPeriod, "range", string(models.PeriodToday), "today, week, month or all")
}
