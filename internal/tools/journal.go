package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// AddJournalEntryInput holds the arguments of add_journal_entry.
type AddJournalEntryInput struct {
	Content     string `json:"content" jsonschema:"the entry text; a leading bullet or HH:MM timestamp is stripped"`
	JournalPath string `json:"journal_path,omitempty" jsonschema:"journal folder relative to the vault root"`
	Date        string `json:"date,omitempty" jsonschema:"day to write to as YYYY-MM-DD; defaults to today"`
}

// ReadJournalEntriesInput holds the arguments of read_journal_entries.
type ReadJournalEntriesInput struct {
	JournalPath    string `json:"journal_path,omitempty" jsonschema:"journal folder relative to the vault root"`
	FromDate       string `json:"from_date,omitempty" jsonschema:"earliest date as YYYY-MM-DD"`
	ToDate         string `json:"to_date,omitempty" jsonschema:"latest date as YYYY-MM-DD"`
	MaxEntries     int    `json:"max_entries,omitempty" jsonschema:"maximum number of files to return (default 10)"`
	IncludeContent *bool  `json:"include_content,omitempty" jsonschema:"include file content (default true)"`
}

// AddJournalTaskInput holds the arguments of add_journal_task.
type AddJournalTaskInput struct {
	Description string   `json:"description" jsonschema:"the task text"`
	JournalPath string   `json:"journal_path,omitempty" jsonschema:"journal folder relative to the vault root"`
	Date        string   `json:"date,omitempty" jsonschema:"any day of the target week as YYYY-MM-DD; defaults to today"`
	Completed   bool     `json:"completed,omitempty" jsonschema:"write the task already checked"`
	ParentTask  string   `json:"parent_task,omitempty" jsonschema:"add as a subtask of the task matching this text"`
	ChildTasks  []string `json:"child_tasks,omitempty" jsonschema:"subtasks written under the new task"`
}

// CompleteJournalTaskInput holds the arguments of complete_journal_task.
type CompleteJournalTaskInput struct {
	Description string `json:"description" jsonschema:"text identifying the task; exact match first, then substring"`
	JournalPath string `json:"journal_path,omitempty" jsonschema:"journal folder relative to the vault root"`
	Date        string `json:"date,omitempty" jsonschema:"any day of the target week as YYYY-MM-DD; defaults to today"`
}

// ReadJournalTasksInput holds the arguments of read_journal_tasks.
type ReadJournalTasksInput struct {
	JournalPath    string `json:"journal_path,omitempty" jsonschema:"journal folder relative to the vault root"`
	Date           string `json:"date,omitempty" jsonschema:"any day of the target week as YYYY-MM-DD; defaults to today"`
	ShowCompleted  *bool  `json:"show_completed,omitempty" jsonschema:"include completed tasks (default true)"`
	ShowIncomplete *bool  `json:"show_incomplete,omitempty" jsonschema:"include incomplete tasks (default true)"`
}

// AddJournalEntry appends a timestamped entry under the day's heading.
func (t *Toolset) AddJournalEntry(in AddJournalEntryInput) models.ToolResult {
	if strings.TrimSpace(in.Content) == "" {
		return invalid("content is required")
	}
	res, err := t.journal.AddEntry(t.vault, core.AddEntryInput{
		Content:     in.Content,
		JournalPath: in.JournalPath,
		Date:        in.Date,
	})
	if err != nil {
		return fail(err)
	}
	msg := fmt.Sprintf("Added entry to %s under %q", res.Path, res.Heading)
	if res.Created {
		msg = fmt.Sprintf("Created %s and added entry under %q", res.Path, res.Heading)
	}
	return models.OK(msg, res)
}

// ReadJournalEntries lists journal files overlapping the date range, newest first.
func (t *Toolset) ReadJournalEntries(in ReadJournalEntriesInput) models.ToolResult {
	if in.MaxEntries < 0 {
		return invalid("max_entries must not be negative")
	}
	files, err := t.journal.ReadEntries(t.vault, core.ReadEntriesInput{
		JournalPath:    in.JournalPath,
		FromDate:       in.FromDate,
		ToDate:         in.ToDate,
		MaxEntries:     in.MaxEntries,
		IncludeContent: in.IncludeContent,
	})
	if err != nil {
		return fail(err)
	}
	if len(files) == 0 {
		return models.OK("no journal entries found", files)
	}
	return models.OK(fmt.Sprintf("found %d journal file(s)", len(files)), files)
}

// AddJournalTask adds a task, optionally with subtasks or under a parent task.
func (t *Toolset) AddJournalTask(in AddJournalTaskInput) models.ToolResult {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description is required")
	}
	if in.ParentTask != "" && len(in.ChildTasks) > 0 {
		return invalid("parent_task and child_tasks cannot be combined")
	}
	for i, child := range in.ChildTasks {
		if strings.TrimSpace(child) == "" {
			return invalid(fmt.Sprintf("child_tasks[%d] is empty", i))
		}
	}
	res, err := t.journal.AddTask(t.vault, core.AddTaskInput{
		Description: in.Description,
		JournalPath: in.JournalPath,
		Date:        in.Date,
		Completed:   in.Completed,
		ParentTask:  in.ParentTask,
		ChildTasks:  in.ChildTasks,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrParentNotFound):
			return models.Fail(fmt.Sprintf("parent task not found: no task matching %q", in.ParentTask), CodeParentNotFound)
		case errors.Is(err, core.ErrNoTasksSection):
			return models.Fail(fmt.Sprintf("cannot add subtask under %q: the week has no tasks section", in.ParentTask), CodeNoTasksSection)
		}
		return fail(err)
	}
	msg := fmt.Sprintf("Added task %q to %s", res.Task, res.Path)
	if res.Parent != "" {
		msg = fmt.Sprintf("Added subtask %q under %q in %s", res.Task, res.Parent, res.Path)
	} else if n := len(in.ChildTasks); n > 0 {
		msg = fmt.Sprintf("Added task %q with %d subtask(s) to %s", res.Task, n, res.Path)
	}
	return models.OK(msg, res)
}

// CompleteJournalTask checks off the task best matching the description.
func (t *Toolset) CompleteJournalTask(in CompleteJournalTaskInput) models.ToolResult {
	if strings.TrimSpace(in.Description) == "" {
		return invalid("description is required")
	}
	res, err := t.journal.CompleteTask(t.vault, core.CompleteTaskInput{
		Description: in.Description,
		JournalPath: in.JournalPath,
		Date:        in.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.ErrTaskNotFound):
			return models.Fail(fmt.Sprintf("task not found: no task matching %q", in.Description), CodeTaskNotFound)
		case errors.Is(err, core.ErrNoTasksSection):
			return models.Fail(fmt.Sprintf("task not found: the week has no tasks section to search for %q", in.Description), CodeNoTasksSection)
		}
		return fail(err)
	}
	if res.AlreadyCompleted {
		return models.OK(fmt.Sprintf("Task %q is already completed", res.Task), res)
	}
	return models.OK(fmt.Sprintf("Completed task %q in %s", res.Task, res.Path), res)
}

// ReadJournalTasks lists the week's tasks with a summary.
func (t *Toolset) ReadJournalTasks(in ReadJournalTasksInput) models.ToolResult {
	list, err := t.journal.ReadTasks(t.vault, core.ReadTasksInput{
		JournalPath:    in.JournalPath,
		Date:           in.Date,
		ShowCompleted:  in.ShowCompleted,
		ShowIncomplete: in.ShowIncomplete,
	})
	if err != nil {
		return fail(err)
	}
	if !list.HasSection {
		return models.OK("no tasks", list)
	}
	return models.OK(core.RenderTaskList(list), list)
}
