package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/atharvamit-2203/CAMPUS-BUDDY-sub000/internal/models"
)

var sweepFormat string

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one conflict sweep and print the findings",
	Long: `Scans every upcoming blocking booking for double bookings, overlapping
faculty or group commitments and room capacity overruns. The report is also
written to the conflict cache when Redis is enabled.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepFormat, "format", "table", "output format: table or json")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(sweepFormat)
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q", sweepFormat)
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sweeper, closeFn, err := openSweeper(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if closeFn != nil {
		defer closeFn()
	}
	if sweeper == nil {
		return errors.New("sweeper not configured")
	}

	report, err := sweeper.RunOnce(cmd.Context())
	if err != nil {
		return fmt.Errorf("sweep failed: %w", err)
	}
	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return printReport(cmd, report)
}

func printReport(cmd *cobra.Command, report *models.ConflictReport) error {
	counts := report.CountBySeverity()
	cmd.Printf("Scanned %d bookings, found %d conflicts (high %d, medium %d, low %d)\n",
		report.Scanned, len(report.Conflicts),
		counts[models.SeverityHigh], counts[models.SeverityMedium], counts[models.SeverityLow])
	if len(report.Conflicts) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tSEVERITY\tRESOURCE\tDATE\tBOOKINGS")
	for _, record := range report.Conflicts {
		bookings := fmt.Sprintf("#%d", record.BookingA.ID)
		if record.BookingB != nil {
			bookings += fmt.Sprintf(", #%d", record.BookingB.ID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			record.Kind, record.Severity, record.Resource, record.Date.Format("2006-01-02"), bookings)
	}
	return w.Flush()
}
