package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

var (
	journalDate        string
	journalPath        string
	journalFrom        string
	journalTo          string
	journalMax         int
	journalWithContent bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Write and read the weekly journal",
}

var journalAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a timestamped entry under today's heading",
	Long: `Add a timestamped entry to the weekly journal file.

The entry is written as "- HH:MM - text" under the heading of the given day
("## 30 Thursday"). The week's file is created from the vault template when
it does not exist yet.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		res := Tools.AddJournalEntry(tools.AddJournalEntryInput{
			Content:     strings.Join(args, " "),
			JournalPath: journalPath,
			Date:        journalDate,
		})
		return printResult(cmd, res, nil)
	},
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal files, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		include := journalWithContent
		res := Tools.ReadJournalEntries(tools.ReadJournalEntriesInput{
			JournalPath:    journalPath,
			FromDate:       journalFrom,
			ToDate:         journalTo,
			MaxEntries:     journalMax,
			IncludeContent: &include,
		})
		return printResult(cmd, res, renderJournalFiles)
	},
}

func renderJournalFiles(res models.ToolResult) string {
	files, _ := res.Data.([]models.JournalFile)
	if len(files) == 0 {
		return res.Message
	}
	var b strings.Builder
	for i, f := range files {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s", f.Date.Format("2006-01-02"), f.RelPath)
		if f.DateSource != "filename" {
			b.WriteString(mutedStyle.Render(" (by modification time)"))
		}
		if f.Content != "" {
			b.WriteString("\n\n")
			b.WriteString(strings.TrimRight(f.Content, "\n"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func init() {
	journalAddCmd.Flags().StringVar(&journalDate, "date", "", "Day to write to (YYYY-MM-DD, defaults to today)")
	journalListCmd.Flags().StringVar(&journalFrom, "from", "", "Earliest date (YYYY-MM-DD)")
	journalListCmd.Flags().StringVar(&journalTo, "to", "", "Latest date (YYYY-MM-DD)")
	journalListCmd.Flags().IntVar(&journalMax, "max", 0, "Maximum number of files (default 10)")
	journalListCmd.Flags().BoolVar(&journalWithContent, "content", false, "Print each file's content")
	journalCmd.PersistentFlags().StringVar(&journalPath, "journal-path", "", "Journal folder relative to the vault root")

	journalCmd.AddCommand(journalAddCmd)
	journalCmd.AddCommand(journalListCmd)
	rootCmd.AddCommand(journalCmd)
}
