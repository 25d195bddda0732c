package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

var (
	slotMinutes int
	slotDays    []string
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Preview the candidate slot grid for a duration",
	RunE:  runSlots,
}

func init() {
	slotsCmd.Flags().IntVar(&slotMinutes, "minutes", 60, "slot length in minutes")
	slotsCmd.Flags().StringSliceVar(&slotDays, "days", nil, "weekdays to include (default: configured days)")
	rootCmd.AddCommand(slotsCmd)
}

func runSlots(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	scheduling, err := schedulingConfig(cfg)
	if err != nil {
		return err
	}
	var days []models.Weekday
	for _, raw := range slotDays {
		day, err := models.ParseWeekday(raw)
		if err != nil {
			return err
		}
		days = append(days, day)
	}

	slots := scheduling.PreviewSlots(slotMinutes, days)
	if len(slots) == 0 {
		cmd.Printf("No %d-minute slots fit the grid.\n", slotMinutes)
		return nil
	}
	for _, slot := range slots {
		cmd.Println(slot.String())
	}
	cmd.Printf("%d slots\n", len(slots))
	return nil
}
