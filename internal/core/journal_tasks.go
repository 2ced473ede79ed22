package core

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// childIndent is the number of spaces a child task is indented past its parent.
const childIndent = 2

// insertTopLevelTasks prepends block to the tasks section, creating the
// section after the title when the document has none.
func insertTopLevelTasks(lines []string, tasksHeading string, block []string) []string {
	if sec, ok := FindHeading(lines, tasksHeading); ok {
		at := sec.Start + 1
		if at < len(lines) && at < sec.End && isBlank(lines[at]) {
			at++
		}
		return insertLines(lines, at, block...)
	}

	section := append([]string{"", tasksHeading, ""}, block...)
	section = append(section, "")
	if title, ok := FindTitle(lines); ok {
		return insertLines(lines, title+1, section...)
	}
	for i, line := range lines {
		if IsLevel2Heading(line) {
			return insertLines(lines, i, section...)
		}
	}
	return insertLines(lines, len(lines), section...)
}

// childInsertionPoint returns the line after parent and the indented task
// lines directly below it.
func childInsertionPoint(lines []string, sec Section, parent models.Task) int {
	at := parent.LineIndex + 1
	for at < sec.End {
		task, ok := ParseTaskLine(lines[at])
		if !ok || task.Indent < childIndent {
			break
		}
		at++
	}
	return at
}

func (j *journalManager) AddTask(vc models.VaultContext, in AddTaskInput) (*models.TaskResult, error) {
	vc, err := checkVault(vc)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("task description is required: %w", ErrValidation)
	}
	for i, child := range in.ChildTasks {
		if strings.TrimSpace(child) == "" {
			return nil, fmt.Errorf("child task %d is empty: %w", i+1, ErrValidation)
		}
	}
	if in.JournalPath != "" {
		vc = vc.WithJournalPath(in.JournalPath)
	}

	date := resolveDate(in.Date, j.now())
	result := &models.TaskResult{}
	err = j.withWeekLock(vc, date, func() error {
		doc, err := j.loadOrCreate(vc, date)
		if err != nil {
			return err
		}
		result.Path = doc.path
		result.Created = doc.created

		if in.ParentTask != "" {
			sec, ok := FindHeading(doc.lines, vc.TasksHeading)
			if !ok {
				return ErrNoTasksSection
			}
			parent, ok := j.matcher.Match(ParseTasks(doc.lines, sec), in.ParentTask)
			if !ok {
				return fmt.Errorf("no task matching %q: %w", in.ParentTask, ErrParentNotFound)
			}
			line := RenderTaskLine(childIndent, in.Completed, in.Description)
			doc.lines = insertLines(doc.lines, childInsertionPoint(doc.lines, sec, parent), line)
			result.Parent = parent.Description
			result.Task = in.Description
			result.Lines = []string{line}
		} else {
			block := []string{RenderTaskLine(0, in.Completed, in.Description)}
			for _, child := range in.ChildTasks {
				block = append(block, RenderTaskLine(childIndent, false, child))
			}
			doc.lines = insertTopLevelTasks(doc.lines, vc.TasksHeading, block)
			result.Task = in.Description
			result.Lines = block
		}
		return j.save(doc)
	})
	if err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}

	j.logEvent("journal.task_added", map[string]any{
		"path":        result.Path,
		"description": in.Description,
		"parent":      result.Parent,
		"children":    in.ChildTasks,
		"completed":   in.Completed,
	})
	return result, nil
}

func (j *journalManager) CompleteTask(vc models.VaultContext, in CompleteTaskInput) (*models.TaskResult, error) {
	vc, err := checkVault(vc)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("task description is required: %w", ErrValidation)
	}
	if in.JournalPath != "" {
		vc = vc.WithJournalPath(in.JournalPath)
	}

	date := resolveDate(in.Date, j.now())
	result := &models.TaskResult{}
	err = j.withWeekLock(vc, date, func() error {
		doc, err := j.loadOrCreate(vc, date)
		if err != nil {
			return err
		}
		result.Path = doc.path

		sec, ok := FindHeading(doc.lines, vc.TasksHeading)
		if !ok {
			return ErrNoTasksSection
		}
		task, ok := j.matcher.Match(ParseTasks(doc.lines, sec), in.Description)
		if !ok {
			return fmt.Errorf("no task matching %q: %w", in.Description, ErrTaskNotFound)
		}
		result.Task = task.Description
		if task.Completed {
			result.AlreadyCompleted = true
			result.Lines = []string{doc.lines[task.LineIndex]}
			return nil
		}
		doc.lines[task.LineIndex] = strings.Replace(doc.lines[task.LineIndex], "[ ]", "[x]", 1)
		result.Lines = []string{doc.lines[task.LineIndex]}
		return j.save(doc)
	})
	if err != nil {
		return nil, fmt.Errorf("completing task: %w", err)
	}

	if !result.AlreadyCompleted {
		j.logEvent("journal.task_completed", map[string]any{
			"path":        result.Path,
			"description": result.Task,
			"query":       in.Description,
		})
	}
	return result, nil
}

func (j *journalManager) ReadTasks(vc models.VaultContext, in ReadTasksInput) (*models.TaskList, error) {
	vc, err := checkVault(vc)
	if err != nil {
		return nil, err
	}
	if in.JournalPath != "" {
		vc = vc.WithJournalPath(in.JournalPath)
	}
	showCompleted := in.ShowCompleted == nil || *in.ShowCompleted
	showIncomplete := in.ShowIncomplete == nil || *in.ShowIncomplete

	date := resolveDate(in.Date, j.now())
	doc, exists, err := j.readExisting(vc, date)
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}
	list := &models.TaskList{Path: doc.path, Tasks: []models.Task{}}
	if !exists {
		return list, nil
	}
	sec, ok := FindHeading(doc.lines, vc.TasksHeading)
	if !ok {
		return list, nil
	}
	list.HasSection = true
	for _, task := range ParseTasks(doc.lines, sec) {
		if (task.Completed && !showCompleted) || (!task.Completed && !showIncomplete) {
			continue
		}
		list.Tasks = append(list.Tasks, task)
	}
	list.Summary = SummarizeTasks(list.Tasks)
	return list, nil
}

// SummarizeTasks counts tasks by completion state.
func SummarizeTasks(tasks []models.Task) models.TaskSummary {
	s := models.TaskSummary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		} else {
			s.Incomplete++
		}
	}
	return s
}

// RenderTaskList renders the summary line followed by every task with its
// indentation preserved.
func RenderTaskList(list *models.TaskList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary: %d total, %d completed, %d incomplete",
		list.Summary.Total, list.Summary.Completed, list.Summary.Incomplete)
	for _, t := range list.Tasks {
		b.WriteString("\n")
		b.WriteString(RenderTaskLine(t.Indent, t.Completed, t.Description))
	}
	return b.String()
}
