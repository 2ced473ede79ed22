package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/valter-silva-au/vault-brain/internal/cli"
	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/internal/observability"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(origDir) })
}

// evalDir resolves symlinks so comparisons with os.Getwd hold on macOS.
func evalDir(t *testing.T, dir string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}

func newTestApp(t *testing.T, root string) *App {
	t.Helper()
	app, err := NewApp(root)
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestResolveVaultRoot_EnvSet(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("VB_VAULT", tmpDir)

	if got := ResolveVaultRoot(); got != tmpDir {
		t.Errorf("ResolveVaultRoot() = %q, want %q", got, tmpDir)
	}
}

func TestResolveVaultRoot_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home) // Windows
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	t.Setenv("VB_VAULT", "~/Vault")

	want := filepath.Join(home, "Vault")
	if got := ResolveVaultRoot(); got != want {
		t.Errorf("ResolveVaultRoot() = %q, want %q", got, want)
	}
}

func TestResolveVaultRoot_FindsVaultConfig(t *testing.T) {
	tmpDir := evalDir(t, t.TempDir())
	subDir := filepath.Join(tmpDir, "1 Journal", "2025")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, core.ConfigFileName), []byte("journal:\n  path: 1 Journal\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("VB_VAULT", "")
	chdir(t, subDir)

	if got := ResolveVaultRoot(); got != tmpDir {
		t.Errorf("ResolveVaultRoot() = %q, want %q (should find .vbconfig in parent)", got, tmpDir)
	}
}

func TestResolveVaultRoot_FallbackToCwd(t *testing.T) {
	tmpDir := evalDir(t, t.TempDir())
	t.Setenv("VB_VAULT", "")
	chdir(t, tmpDir)

	if got := ResolveVaultRoot(); got != tmpDir {
		t.Errorf("ResolveVaultRoot() = %q, want %q (should fall back to cwd)", got, tmpDir)
	}
}

func TestNewApp_Success(t *testing.T) {
	tmpDir := t.TempDir()
	app := newTestApp(t, tmpDir)

	if app.Tools == nil || app.JournalMgr == nil || app.NoteMgr == nil {
		t.Fatal("core services not wired")
	}
	if app.EventLog == nil || app.AlertEngine == nil || app.MetricsCalc == nil {
		t.Fatal("observability not wired")
	}
	if app.Notifier != nil {
		t.Error("notifier should be nil when notifications are disabled")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, StateDir, "events.jsonl")); err != nil {
		t.Errorf("expected JSONL event log: %v", err)
	}

	if cli.Tools != app.Tools {
		t.Error("cli.Tools not wired")
	}
	if cli.VaultRoot != app.VaultRoot {
		t.Errorf("cli.VaultRoot = %q, want %q", cli.VaultRoot, app.VaultRoot)
	}
	if cli.MetricsCalc == nil || cli.AlertEngine == nil {
		t.Error("cli observability vars not wired")
	}

	vc := app.Tools.Vault()
	if vc.JournalPath != models.DefaultJournalPath {
		t.Errorf("JournalPath = %q", vc.JournalPath)
	}
}

func TestNewApp_JournalEventsReachMetrics(t *testing.T) {
	app := newTestApp(t, t.TempDir())

	if res := app.Tools.AddJournalEntry(tools.AddJournalEntryInput{Content: "Standup notes"}); !res.Success {
		t.Fatalf("AddJournalEntry: %s", res.Message)
	}
	if res := app.Tools.AddJournalTask(tools.AddJournalTaskInput{Description: "Ship release"}); !res.Success {
		t.Fatalf("AddJournalTask: %s", res.Message)
	}

	metrics, err := app.MetricsCalc.Calculate(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if metrics.EntriesAdded != 1 || metrics.TasksAdded != 1 || metrics.WeeksCreated != 1 {
		t.Errorf("metrics = %+v", metrics)
	}

	events, err := app.EventLog.Read(observability.EventFilter{Type: observability.EventEntryAdded})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(events) != 1 || events[0].Message != observability.MessageFor(observability.EventEntryAdded) {
		t.Errorf("events = %+v", events)
	}
}

func TestNewApp_SQLiteBackend(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := "events:\n  backend: sqlite\n"
	if err := os.WriteFile(filepath.Join(tmpDir, core.ConfigFileName), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, tmpDir)
	if app.Config.EventBackend != models.EventBackendSQLite {
		t.Fatalf("EventBackend = %q", app.Config.EventBackend)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, StateDir, "events.db")); err != nil {
		t.Errorf("expected SQLite event log: %v", err)
	}
}

func TestNewApp_InvalidConfigFallsBackToDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := "journal:\n  tasks_heading: Tasks\nalerts:\n  max_open_tasks: -1\n"
	if err := os.WriteFile(filepath.Join(tmpDir, core.ConfigFileName), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, tmpDir)
	if app.Config.TasksHeading != models.DefaultTasksHeading {
		t.Errorf("TasksHeading = %q, want default", app.Config.TasksHeading)
	}
	if app.Config.Alerts.MaxOpenTasks != core.DefaultGlobalConfig().Alerts.MaxOpenTasks {
		t.Errorf("MaxOpenTasks = %d, want default", app.Config.Alerts.MaxOpenTasks)
	}
}

func TestNewApp_LoadsDotEnv(t *testing.T) {
	if _, set := os.LookupEnv("VB_JOURNAL_PATH"); set {
		t.Skip("VB_JOURNAL_PATH is set in the environment")
	}
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("VB_JOURNAL_PATH=Daily\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("VB_JOURNAL_PATH") })

	app := newTestApp(t, tmpDir)
	if got := app.Tools.Vault().JournalPath; got != "Daily" {
		t.Errorf("JournalPath = %q, want Daily from .env", got)
	}
}

func TestNewApp_SlackNotifier(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := "notifications:\n  enabled: true\n  slack:\n    webhook_url: https://hooks.slack.invalid/T000\n"
	if err := os.WriteFile(filepath.Join(tmpDir, core.ConfigFileName), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	app := newTestApp(t, tmpDir)
	if app.Notifier == nil {
		t.Error("expected Slack notifier when notifications are enabled")
	}
	if cli.Notifier != app.Notifier {
		t.Error("cli.Notifier not wired")
	}
}

func TestApp_CloseWithoutEventLog(t *testing.T) {
	app := &App{}
	if err := app.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
