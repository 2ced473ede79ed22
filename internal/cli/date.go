package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

var dateReference string

var dateCmd = &cobra.Command{
	Use:   "date [description]",
	Short: "Show the weekday and ISO week of a date",
	Long: `Resolve a date and show it in journal terms.

The date may be YYYY-MM-DD or a description such as "yesterday",
"last friday", "next monday" or "3 days ago". Defaults to today.
Descriptions are resolved against --from when it is given.`,
	ValidArgsFunction: completeDateWords,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		res := Tools.GetDateInfo(tools.GetDateInfoInput{Date: strings.Join(args, " "), ReferenceDate: dateReference})
		return printResult(cmd, res, func(r models.ToolResult) string {
			info := r.Data.(models.DateInfo)
			return fmt.Sprintf("%s  %s\nISO week %d-W%02d (%s to %s)",
				info.Date, info.DayOfWeek, info.ISOYear, info.ISOWeek, info.WeekStart, info.WeekEnd)
		})
	},
}

var weekCmd = &cobra.Command{
	Use:               "week [date]",
	Short:             "List the days of the ISO week containing a date",
	ValidArgsFunction: completeDateWords,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		res := Tools.GetWeekDates(tools.GetWeekDatesInput{Date: strings.Join(args, " "), ReferenceDate: dateReference})
		return printResult(cmd, res, func(r models.ToolResult) string {
			week := r.Data.(tools.WeekDatesResult)
			var b strings.Builder
			b.WriteString(summaryStyle.Render(fmt.Sprintf("%d-W%02d", week.ISOYear, week.ISOWeek)))
			b.WriteString(mutedStyle.Render("  " + week.File))
			for _, d := range week.Days {
				fmt.Fprintf(&b, "\n  %-10s %s", d.DayOfWeek, d.Date)
			}
			return b.String()
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{dateCmd, weekCmd} {
		cmd.Flags().StringVar(&dateReference, "from", "", "Resolve relative descriptions against this date (YYYY-MM-DD)")
	}
	rootCmd.AddCommand(dateCmd)
	rootCmd.AddCommand(weekCmd)
}
