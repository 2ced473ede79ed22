package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

var (
	taskDate       string
	taskDone       bool
	taskParent     string
	taskChildren   []string
	taskOnlyOpen   bool
	taskOnlyDone   bool
	taskJournalDir string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the week's task list",
	Long: `Manage the checkbox tasks under the week's tasks heading.

Tasks are matched by description: an exact (case-insensitive) match wins,
otherwise the first task containing the text is used.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a task, optionally with subtasks or under a parent task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		res := Tools.AddJournalTask(tools.AddJournalTaskInput{
			Description: strings.Join(args, " "),
			JournalPath: taskJournalDir,
			Date:        taskDate,
			Completed:   taskDone,
			ParentTask:  taskParent,
			ChildTasks:  taskChildren,
		})
		return printResult(cmd, res, nil)
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:               "complete <description>",
	Aliases:           []string{"done"},
	Short:             "Check off the task matching the description",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeOpenTasks,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		res := Tools.CompleteJournalTask(tools.CompleteJournalTaskInput{
			Description: strings.Join(args, " "),
			JournalPath: taskJournalDir,
			Date:        taskDate,
		})
		return printResult(cmd, res, nil)
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the week's tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireTools(); err != nil {
			return err
		}
		showCompleted := !taskOnlyOpen
		showIncomplete := !taskOnlyDone
		res := Tools.ReadJournalTasks(tools.ReadJournalTasksInput{
			JournalPath:    taskJournalDir,
			Date:           taskDate,
			ShowCompleted:  &showCompleted,
			ShowIncomplete: &showIncomplete,
		})
		return printResult(cmd, res, renderTaskList)
	},
}

// renderTaskList colors the summary and each task by state.
func renderTaskList(res models.ToolResult) string {
	list, _ := res.Data.(*models.TaskList)
	if list == nil || !list.HasSection {
		return res.Message
	}
	lines := strings.Split(core.RenderTaskList(list), "\n")
	var b strings.Builder
	b.WriteString(summaryStyle.Render(lines[0]))
	for i, task := range list.Tasks {
		b.WriteString("\n")
		style := taskOpenStyle
		if task.Completed {
			style = taskDoneStyle
		}
		b.WriteString(style.Render(lines[i+1]))
	}
	return b.String()
}

func init() {
	taskCmd.PersistentFlags().StringVar(&taskDate, "date", "", "Any day of the target week (YYYY-MM-DD, defaults to today)")
	taskCmd.PersistentFlags().StringVar(&taskJournalDir, "journal-path", "", "Journal folder relative to the vault root")

	taskAddCmd.Flags().BoolVar(&taskDone, "done", false, "Add the task already completed")
	taskAddCmd.Flags().StringVar(&taskParent, "parent", "", "Add as a subtask of the task matching this text")
	taskAddCmd.Flags().StringArrayVar(&taskChildren, "child", nil, "Subtask to add under the new task (repeatable)")
	taskAddCmd.MarkFlagsMutuallyExclusive("parent", "child")

	taskListCmd.Flags().BoolVar(&taskOnlyOpen, "open", false, "Show only incomplete tasks")
	taskListCmd.Flags().BoolVar(&taskOnlyDone, "completed", false, "Show only completed tasks")
	taskListCmd.MarkFlagsMutuallyExclusive("open", "completed")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskCompleteCmd)
	taskCmd.AddCommand(taskListCmd)
	rootCmd.AddCommand(taskCmd)
}
