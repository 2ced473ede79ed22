package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/internal/tools"
)

var metricsSince string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display journal activity metrics",
	Long: `Display aggregated metrics derived from the event log.

Metrics include journal entries written, tasks added and completed, weeks
created, notes written, and entries by weekday.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}

		sinceTime, err := tools.ParseSince(metricsSince, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		if outputJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		// Table format.
		fmt.Fprintf(out, "Metrics (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Fprintf(out, "  %-24s %d\n", "Events recorded:", metrics.EventCount)
		fmt.Fprintf(out, "  %-24s %d\n", "Entries added:", metrics.EntriesAdded)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks added:", metrics.TasksAdded)
		fmt.Fprintf(out, "  %-24s %d\n", "Tasks completed:", metrics.TasksCompleted)
		fmt.Fprintf(out, "  %-24s %.0f%%\n", "Completion rate:", metrics.CompletionRate()*100)
		fmt.Fprintf(out, "  %-24s %d\n", "Weeks created:", metrics.WeeksCreated)
		fmt.Fprintf(out, "  %-24s %d\n", "Notes written:", metrics.NotesWritten)
		fmt.Fprintf(out, "  %-24s %d\n", "Active days:", len(metrics.ActiveDays))

		if len(metrics.EntriesByDay) > 0 {
			fmt.Fprintln(out, "\n  Entries by weekday:")
			for i := 1; i <= 7; i++ {
				day := time.Weekday(i % 7).String()
				if n := metrics.EntriesByDay[day]; n > 0 {
					fmt.Fprintf(out, "    %-20s %d\n", day+":", n)
				}
			}
		}

		if metrics.OldestEvent != nil {
			fmt.Fprintf(out, "\n  %-24s %s\n", "Oldest event:", metrics.OldestEvent.Format(time.RFC3339))
		}
		if metrics.NewestEvent != nil {
			fmt.Fprintf(out, "  %-24s %s\n", "Newest event:", metrics.NewestEvent.Format(time.RFC3339))
		}

		return nil
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 2w, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
