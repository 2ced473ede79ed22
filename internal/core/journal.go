package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/valter-silva-au/vault-brain/internal/storage"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// EventLogger is the subset of the observability event log that core
// services need. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// AddEntryInput holds the arguments of AddEntry.
type AddEntryInput struct {
	Content     string
	JournalPath string
	Date        string // YYYY-MM-DD; empty or invalid means today
}

// AddTaskInput holds the arguments of AddTask.
type AddTaskInput struct {
	Description string
	JournalPath string
	Date        string
	Completed   bool
	ParentTask  string
	ChildTasks  []string
}

// CompleteTaskInput holds the arguments of CompleteTask.
type CompleteTaskInput struct {
	Description string
	JournalPath string
	Date        string
}

// ReadTasksInput holds the arguments of ReadTasks. Nil flags default to true.
type ReadTasksInput struct {
	JournalPath    string
	Date           string
	ShowCompleted  *bool
	ShowIncomplete *bool
}

// ReadEntriesInput holds the arguments of ReadEntries.
type ReadEntriesInput struct {
	JournalPath    string
	FromDate       string
	ToDate         string
	MaxEntries     int   // zero means DefaultMaxEntries
	IncludeContent *bool // nil means true
}

// DefaultMaxEntries is the number of journal files ReadEntries returns by default.
const DefaultMaxEntries = 10

// JournalManager edits weekly journal files: timestamped entries under day
// sections and the week's checkbox task list.
type JournalManager interface {
	AddEntry(vc models.VaultContext, in AddEntryInput) (*models.EntryResult, error)
	AddTask(vc models.VaultContext, in AddTaskInput) (*models.TaskResult, error)
	CompleteTask(vc models.VaultContext, in CompleteTaskInput) (*models.TaskResult, error)
	ReadTasks(vc models.VaultContext, in ReadTasksInput) (*models.TaskList, error)
	ReadEntries(vc models.VaultContext, in ReadEntriesInput) ([]models.JournalFile, error)
	WeekFile(vc models.VaultContext, date string) (path string, exists bool, err error)
}

// JournalOption configures a JournalManager.
type JournalOption func(*journalManager)

// WithClock overrides the time source used for entry timestamps and
// default dates.
func WithClock(now func() time.Time) JournalOption {
	return func(j *journalManager) { j.now = now }
}

// WithMatcher overrides the fuzzy task matcher.
func WithMatcher(m TaskMatcher) JournalOption {
	return func(j *journalManager) { j.matcher = m }
}

// WithLocker sets the per-file lock used around read-modify-write cycles.
func WithLocker(l Locker) JournalOption {
	return func(j *journalManager) { j.locker = l }
}

// WithEventLogger records journal mutations to the event log.
func WithEventLogger(e EventLogger) JournalOption {
	return func(j *journalManager) { j.events = e }
}

type journalManager struct {
	fs        storage.FileSystem
	locator   WeekFileLocator
	templates TemplateManager
	matcher   TaskMatcher
	locker    Locker
	events    EventLogger
	now       func() time.Time
}

// NewJournalManager creates a JournalManager over fs using templates to seed
// new weekly files.
func NewJournalManager(fs storage.FileSystem, templates TemplateManager, opts ...JournalOption) JournalManager {
	j := &journalManager{
		fs:        fs,
		locator:   NewWeekFileLocator(fs),
		templates: templates,
		matcher:   FuzzyMatcher{},
		locker:    NewNoopLocker(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func checkVault(vc models.VaultContext) (models.VaultContext, error) {
	if strings.TrimSpace(vc.VaultRoot) == "" {
		return vc, ErrNoVaultRoot
	}
	return vc.WithDefaults(), nil
}

func (j *journalManager) WeekFile(vc models.VaultContext, date string) (string, bool, error) {
	vc, err := checkVault(vc)
	if err != nil {
		return "", false, err
	}
	return j.locator.Locate(vc, ISOWeekOf(resolveDate(date, j.now())))
}

// weekDoc is a weekly file loaded into memory for one mutation.
type weekDoc struct {
	path    string
	lines   []string
	created bool
	source  string // "template" or "stub" when created
	week    models.WeekKey
}

// loadOrCreate reads the week file for date, rendering a new one from the
// vault template or the built-in stub when it does not exist yet. A newly
// rendered document is not written until save.
func (j *journalManager) loadOrCreate(vc models.VaultContext, date time.Time) (*weekDoc, error) {
	key := ISOWeekOf(date)
	path, exists, err := j.locator.Locate(vc, key)
	if err != nil {
		return nil, err
	}
	if exists {
		content, err := j.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading week file: %w", err)
		}
		return &weekDoc{path: path, lines: SplitLines(content)}, nil
	}

	tmpl, found, err := j.templates.LoadTemplate(vc, vc.JournalTemplateName)
	if err != nil {
		return nil, err
	}
	source := "template"
	if !found {
		tmpl = builtinWeeklyTemplate
		source = "stub"
	}
	content := NormalizeSpacing(j.templates.Render(tmpl, weeklyTemplateData(key)))
	return &weekDoc{path: path, lines: SplitLines(content), created: true, source: source, week: key}, nil
}

// readExisting loads the week file for date without creating it.
func (j *journalManager) readExisting(vc models.VaultContext, date time.Time) (*weekDoc, bool, error) {
	path, exists, err := j.locator.Locate(vc, ISOWeekOf(date))
	if err != nil || !exists {
		return &weekDoc{path: path}, false, err
	}
	content, err := j.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return &weekDoc{path: path}, false, nil
		}
		return nil, false, fmt.Errorf("reading week file: %w", err)
	}
	return &weekDoc{path: path, lines: SplitLines(content)}, true, nil
}

func (j *journalManager) save(doc *weekDoc) error {
	if err := j.fs.EnsureDir(filepath.Dir(doc.path)); err != nil {
		return err
	}
	if err := j.fs.WriteFile(doc.path, NormalizeSpacing(JoinLines(doc.lines))); err != nil {
		return fmt.Errorf("writing week file: %w", err)
	}
	if doc.created {
		j.logEvent("journal.week_created", map[string]any{
			"path":   doc.path,
			"week":   fmt.Sprintf("%d-W%02d", doc.week.ISOYear, doc.week.ISOWeek),
			"source": doc.source,
		})
	}
	return nil
}

// withWeekLock runs fn while holding the lock for the week containing date.
// The canonical path is the lock key so that a week resolves to one lock
// whichever candidate location holds its file.
func (j *journalManager) withWeekLock(vc models.VaultContext, date time.Time, fn func() error) error {
	unlock, err := j.locker.Lock(WeekFileCandidates(vc, ISOWeekOf(date))[0])
	if err != nil {
		return fmt.Errorf("locking week file: %w", err)
	}
	defer func() { _ = unlock() }()
	return fn()
}

func (j *journalManager) logEvent(eventType string, data map[string]any) {
	if j.events == nil {
		return
	}
	_ = j.events.LogEvent(eventType, data) // Non-fatal.
}
