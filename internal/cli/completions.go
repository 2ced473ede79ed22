package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// completeOpenTasks returns the incomplete task descriptions of the current
// week for shell completion.
func completeOpenTasks(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if Tools == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	hide := false
	res := Tools.ReadJournalTasks(tools.ReadJournalTasksInput{Date: taskDate, ShowCompleted: &hide})
	list, _ := res.Data.(*models.TaskList)
	if !res.Success || list == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	prefix := strings.ToLower(toComplete)
	for _, t := range list.Tasks {
		if strings.HasPrefix(strings.ToLower(t.Description), prefix) {
			completions = append(completions, t.Description)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeNotePaths returns vault notes for shell completion.
func completeNotePaths(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if Tools == nil || len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	res := Tools.ListNotes(tools.ListNotesInput{Recursive: true})
	notes, _ := res.Data.([]models.NoteInfo)

	var completions []string
	for _, n := range notes {
		if strings.HasPrefix(n.Path, toComplete) {
			completions = append(completions, n.Path)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeWriteModes returns the accepted --mode values for note write.
func completeWriteModes(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(models.WriteOverwrite) + "\treplace the note",
		string(models.WriteAppend) + "\tadd to the end",
		string(models.WritePrepend) + "\tadd after the frontmatter",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeDateWords offers the relative date descriptions vb understands.
func completeDateWords(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return []string{"today", "yesterday", "tomorrow", "last monday", "next monday", "1 week ago"}, cobra.ShellCompDirectiveNoFileComp
}
