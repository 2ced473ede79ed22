// Package internal provides the App struct that wires all components of
// vault-brain together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/valter-silva-au/vault-brain/internal/cli"
	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/internal/observability"
	"github.com/valter-silva-au/vault-brain/internal/storage"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// StateDir holds vb's own files (locks, event log) inside the vault.
const StateDir = core.LockDirName

// App holds all service dependencies of vault-brain.
type App struct {
	VaultRoot string
	Config    *models.GlobalConfig

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	FS     storage.FileSystem
	Locker core.Locker

	// Core services
	TmplMgr    core.TemplateManager
	JournalMgr core.JournalManager
	NoteMgr    core.NoteManager
	Tools      *tools.Toolset

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components for the vault at vaultRoot.
// Configuration and event log problems are reported on stderr and fall back
// to defaults so that the journal stays usable.
func NewApp(vaultRoot string) (*App, error) {
	root, err := filepath.Abs(vaultRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving vault root: %w", err)
	}
	app := &App{VaultRoot: root}

	// --- Configuration ---
	// godotenv.Load never overrides variables that are already set.
	envFile := filepath.Join(root, ".env")
	if _, statErr := os.Stat(envFile); statErr == nil {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: loading %s: %v\n", envFile, err)
		}
	}

	app.ConfigMgr = core.NewConfigurationManager(root)
	app.Config, err = app.ConfigMgr.LoadGlobalConfig()
	if err == nil {
		err = app.ConfigMgr.ValidateConfig(app.Config)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; using default configuration\n", err)
		app.Config = core.DefaultGlobalConfig()
	}
	cfg := app.Config

	// --- Storage layer ---
	app.FS = storage.NewFileSystem()
	app.Locker = core.NewFileLocker(filepath.Join(root, StateDir, "locks"))

	// --- Observability ---
	app.EventLog, err = openEventLog(root, cfg.EventBackend)
	if err != nil {
		// Non-fatal: disable observability if the log can't be opened.
		fmt.Fprintf(os.Stderr, "Warning: event log disabled: %v\n", err)
		app.EventLog = nil
	}
	var evtAdapter core.EventLogger
	if app.EventLog != nil {
		evtAdapter = &eventLogAdapter{log: app.EventLog}
		app.AlertEngine = observability.NewAlertEngine(app.EventLog, observability.AlertThresholds{
			OpenTaskDays:   cfg.Alerts.OpenTaskDays,
			JournalGapDays: cfg.Alerts.JournalGapDays,
			MaxOpenTasks:   cfg.Alerts.MaxOpenTasks,
		})
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if cfg.Notifications.Enabled && cfg.Notifications.Slack.WebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.Notifications.Slack.WebhookURL, filepath.Base(root))
	}

	// --- Core services ---
	app.TmplMgr = core.NewTemplateManager(app.FS, time.Now)
	journalOpts := []core.JournalOption{core.WithLocker(app.Locker)}
	if evtAdapter != nil {
		journalOpts = append(journalOpts, core.WithEventLogger(evtAdapter))
	}
	app.JournalMgr = core.NewJournalManager(app.FS, app.TmplMgr, journalOpts...)
	app.NoteMgr = core.NewNoteManager(app.FS, app.Locker, evtAdapter)
	app.Tools = tools.New(cfg.VaultContext(root), app.JournalMgr, app.NoteMgr,
		tools.WithObservability(app.MetricsCalc, app.AlertEngine))

	// --- Wire CLI package-level variables ---
	cli.VaultRoot = root
	cli.Tools = app.Tools
	cli.ConfigMgr = app.ConfigMgr

	cli.EventLog = app.EventLog
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// openEventLog opens the event log backend selected in the configuration.
func openEventLog(root string, backend models.EventBackend) (observability.EventLog, error) {
	dir := filepath.Join(root, StateDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}
	if backend == models.EventBackendSQLite {
		return observability.NewSQLiteEventLog(filepath.Join(dir, "events.db"))
	}
	return observability.NewJSONLEventLog(filepath.Join(dir, "events.jsonl"))
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveVaultRoot determines the vault vb operates on. It checks the
// VB_VAULT env var, then walks up from the current directory looking for
// .vbconfig, and falls back to the current directory.
func ResolveVaultRoot() string {
	if vault := os.Getenv("VB_VAULT"); vault != "" {
		if expanded, err := homedir.Expand(vault); err == nil {
			return expanded
		}
		return vault
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, core.ConfigFileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: observability.MessageFor(eventType),
		Data:    data,
	})
}
