package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
	"gopkg.in/yaml.v3"
)

var (
	noteRecursive bool
	noteMode      string
	noteMax       int
	noteSets      []string
	noteDeletes   []string
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Read, write and search notes in the vault",
}

var noteListCmd = &cobra.Command{
	Use:   "list [folder]",
	Short: "List markdown notes in a folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		folder := ""
		if len(args) > 0 {
			folder = args[0]
		}
		res := Tools.ListNotes(tools.ListNotesInput{Folder: folder, Recursive: noteRecursive})
		return printResult(cmd, res, func(r models.ToolResult) string {
			notes, _ := r.Data.([]models.NoteInfo)
			if len(notes) == 0 {
				return "No notes found."
			}
			lines := make([]string, len(notes))
			for i, n := range notes {
				lines[i] = fmt.Sprintf("%s  %s", mutedStyle.Render(n.Modified.Format("2006-01-02 15:04")), n.Path)
			}
			return strings.Join(lines, "\n")
		})
	},
}

var noteReadCmd = &cobra.Command{
	Use:               "read <path>",
	Short:             "Print a note",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNotePaths,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		res := Tools.ReadNote(tools.ReadNoteInput{Path: args[0]})
		return printResult(cmd, res, func(r models.ToolResult) string {
			return strings.TrimRight(r.Data.(tools.NoteContent).Content, "\n")
		})
	},
}

var noteWriteCmd = &cobra.Command{
	Use:   "write <path> [content]",
	Short: "Write a note (content from the argument or stdin)",
	Long: `Write a note in the vault.

The content is taken from the second argument, or read from stdin when it is
omitted or "-". --mode selects overwrite (default), append or prepend;
prepending keeps frontmatter at the top of the note.`,
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completeNotePaths,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		content := ""
		if len(args) == 2 && args[1] != "-" {
			content = args[1]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			content = string(data)
		}
		res := Tools.WriteNote(tools.WriteNoteInput{Path: args[0], Content: content, Mode: noteMode})
		return printResult(cmd, res, nil)
	},
}

var noteSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every note for a line containing the text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		res := Tools.SearchNotes(tools.SearchNotesInput{Query: strings.Join(args, " "), MaxResults: noteMax})
		return printResult(cmd, res, func(r models.ToolResult) string {
			hits, _ := r.Data.([]models.SearchHit)
			if len(hits) == 0 {
				return r.Message
			}
			lines := make([]string, len(hits))
			for i, h := range hits {
				lines[i] = fmt.Sprintf("%s %s", mutedStyle.Render(fmt.Sprintf("%s:%d:", h.Path, h.Line)), strings.TrimSpace(h.Text))
			}
			return strings.Join(lines, "\n")
		})
	},
}

var noteFrontmatterCmd = &cobra.Command{
	Use:   "frontmatter <path>",
	Short: "Set or delete frontmatter keys",
	Long: `Edit a note's YAML frontmatter.

  vb note frontmatter Projects/roadmap --set status=active --set tags=[a,b] --delete draft

Values are parsed as YAML, so numbers, booleans and lists keep their type.
Sets are applied before deletes.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNotePaths,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		ops, err := frontmatterOps(noteSets, noteDeletes)
		if err != nil {
			return err
		}
		res := Tools.UpdateFrontmatter(tools.UpdateFrontmatterInput{Path: args[0], Operations: ops})
		return printResult(cmd, res, func(r models.ToolResult) string {
			data, err := yaml.Marshal(r.Data)
			if err != nil {
				return r.Message
			}
			return r.Message + "\n\n" + strings.TrimRight(string(data), "\n")
		})
	},
}

// frontmatterOps turns --set key=value and --delete key flags into operations.
func frontmatterOps(sets, deletes []string) ([]models.FrontmatterOp, error) {
	ops := make([]models.FrontmatterOp, 0, len(sets)+len(deletes))
	for _, s := range sets {
		key, raw, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", s)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("parsing value of %q: %w", key, err)
		}
		switch value.(type) {
		case nil, time.Time:
			// Keep dates as written instead of re-encoding them as timestamps.
			value = raw
		}
		ops = append(ops, models.FrontmatterOp{Op: "set", Key: strings.TrimSpace(key), Value: value})
	}
	for _, key := range deletes {
		ops = append(ops, models.FrontmatterOp{Op: "delete", Key: strings.TrimSpace(key)})
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("nothing to do: use --set key=value or --delete key")
	}
	return ops, nil
}

func init() {
	noteListCmd.Flags().BoolVarP(&noteRecursive, "recursive", "r", false, "Include notes in subfolders")
	noteWriteCmd.Flags().StringVar(&noteMode, "mode", "overwrite", "overwrite, append or prepend")
	_ = noteWriteCmd.RegisterFlagCompletionFunc("mode", completeWriteModes)
	noteSearchCmd.Flags().IntVar(&noteMax, "max", 0, "Maximum number of matching lines (default 50)")
	noteFrontmatterCmd.Flags().StringArrayVar(&noteSets, "set", nil, "Set key=value (repeatable)")
	noteFrontmatterCmd.Flags().StringArrayVar(&noteDeletes, "delete", nil, "Delete a key (repeatable)")

	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteReadCmd)
	noteCmd.AddCommand(noteWriteCmd)
	noteCmd.AddCommand(noteSearchCmd)
	noteCmd.AddCommand(noteFrontmatterCmd)
	rootCmd.AddCommand(noteCmd)
}
