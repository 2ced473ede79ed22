package models

import "time"

// WeekKey identifies exactly one weekly journal file by its ISO-8601 year and week.
type WeekKey struct {
	ISOYear int `json:"iso_year"`
	ISOWeek int `json:"iso_week"`
}

// Task is a checkbox line parsed from the tasks section of a weekly file.
// Tasks are never stored on their own; LineIndex points back into the document.
type Task struct {
	LineIndex   int    `json:"line_index"`
	Indent      int    `json:"indent"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

// IsChild reports whether the task is nested under a parent task.
func (t Task) IsChild() bool {
	return t.Indent >= 2
}

// TaskSummary counts tasks after filtering.
type TaskSummary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
}

// TaskList is the result of reading a week's tasks.
type TaskList struct {
	Path       string      `json:"path"`
	HasSection bool        `json:"has_section"`
	Tasks      []Task      `json:"tasks"`
	Summary    TaskSummary `json:"summary"`
}

// EntryResult describes a journal entry that was written.
type EntryResult struct {
	Path    string `json:"path"`
	Heading string `json:"heading"`
	Line    string `json:"line"`
	Created bool   `json:"created"`
}

// TaskResult describes a task mutation.
type TaskResult struct {
	Path             string   `json:"path"`
	Task             string   `json:"task"`
	Lines            []string `json:"lines"`
	Parent           string   `json:"parent,omitempty"`
	AlreadyCompleted bool     `json:"already_completed,omitempty"`
	Created          bool     `json:"created"`
}

// JournalFile is one markdown file found under the journal root.
type JournalFile struct {
	Path       string    `json:"path"`
	RelPath    string    `json:"rel_path"`
	Date       time.Time `json:"date"`
	DateSource string    `json:"date_source"` // "filename" or "mtime"
	Content    string    `json:"content,omitempty"`
}

// DateInfo describes one calendar date in journal terms.
type DateInfo struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	ISOYear   int    `json:"iso_year"`
	ISOWeek   int    `json:"iso_week"`
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
}

// WeekDay is one day of an ISO week.
type WeekDay struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
}
