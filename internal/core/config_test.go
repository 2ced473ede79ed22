package core

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// --- LoadGlobalConfig tests ---

func TestLoadGlobalConfig_Defaults_WhenNoFile(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigurationManager(dir)

	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JournalPath != "1 Journal" {
		t.Errorf("JournalPath = %q, want %q", cfg.JournalPath, "1 Journal")
	}
	if cfg.TasksHeading != "## Tasks This Week" {
		t.Errorf("TasksHeading = %q", cfg.TasksHeading)
	}
	if cfg.EventBackend != models.EventBackendJSONL {
		t.Errorf("EventBackend = %q, want jsonl", cfg.EventBackend)
	}
	if cfg.Alerts.OpenTaskDays != 14 || cfg.Alerts.JournalGapDays != 3 || cfg.Alerts.MaxOpenTasks != 20 {
		t.Errorf("Alerts = %+v", cfg.Alerts)
	}
	if cfg.Notifications.Enabled {
		t.Error("notifications should be disabled by default")
	}
}

func TestLoadGlobalConfig_ReadsVbconfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `
journal:
  path: Journal/Weekly
  tasks_heading: "## Todo"
templates:
  folder: _templates
  journal_weekly: week
events:
  backend: SQLite
alerts:
  open_task_days: 7
notifications:
  enabled: true
  slack:
    webhook_url: https://hooks.slack.com/services/T/B/X
`)

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JournalPath != "Journal/Weekly" {
		t.Errorf("JournalPath = %q", cfg.JournalPath)
	}
	if cfg.TasksHeading != "## Todo" {
		t.Errorf("TasksHeading = %q", cfg.TasksHeading)
	}
	if cfg.TemplatesFolderName != "_templates" || cfg.JournalTemplateName != "week" {
		t.Errorf("templates = %q, %q", cfg.TemplatesFolderName, cfg.JournalTemplateName)
	}
	if cfg.EventBackend != models.EventBackendSQLite {
		t.Errorf("EventBackend = %q", cfg.EventBackend)
	}
	if cfg.Alerts.OpenTaskDays != 7 {
		t.Errorf("OpenTaskDays = %d, want 7", cfg.Alerts.OpenTaskDays)
	}
	if cfg.Alerts.JournalGapDays != 3 {
		t.Errorf("JournalGapDays = %d, want default 3", cfg.Alerts.JournalGapDays)
	}
	if !cfg.Notifications.Enabled || !strings.HasPrefix(cfg.Notifications.Slack.WebhookURL, "https://hooks.slack.com/") {
		t.Errorf("Notifications = %+v", cfg.Notifications)
	}

	vc := cfg.VaultContext(dir)
	if vc.JournalPath != "Journal/Weekly" || vc.TasksHeading != "## Todo" || vc.VaultRoot != dir {
		t.Errorf("VaultContext = %+v", vc)
	}
}

func TestLoadGlobalConfig_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), "journal:\n  path: FromFile\n")
	t.Setenv("VB_JOURNAL_PATH", "FromEnv")

	cfg, err := NewConfigurationManager(dir).LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.JournalPath != "FromEnv" {
		t.Errorf("JournalPath = %q, want env override", cfg.JournalPath)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), "journal: [unclosed\n")

	if _, err := NewConfigurationManager(dir).LoadGlobalConfig(); err == nil {
		t.Fatal("expected error for malformed .vbconfig")
	}
}

// --- ValidateConfig tests ---

func TestValidateConfig_Defaults(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	if err := cm.ValidateConfig(DefaultGlobalConfig()); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidateConfig_ReportsAllProblems(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())
	cfg := DefaultGlobalConfig()
	cfg.JournalPath = "../elsewhere"
	cfg.TasksHeading = "Tasks"
	cfg.EventBackend = "postgres"
	cfg.Alerts.MaxOpenTasks = -1
	cfg.Notifications.Enabled = true

	err := cm.ValidateConfig(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"journal.path", "journal.tasks_heading", "events.backend", "alerts.max_open_tasks", "webhook_url"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
	if err := cm.ValidateConfig(nil); err == nil {
		t.Error("nil config should fail")
	}
}

// --- InitConfig tests ---

func TestInitConfig_WritesLoadableDefaults(t *testing.T) {
	dir := t.TempDir()
	cm := NewConfigurationManager(dir)

	path, created, err := cm.InitConfig()
	if err != nil {
		t.Fatal(err)
	}
	if !created || path != filepath.Join(dir, ConfigFileName) {
		t.Errorf("InitConfig = %q, %v", path, created)
	}
	if !strings.Contains(readFile(t, path), "## Tasks This Week") {
		t.Errorf("config =\n%s", readFile(t, path))
	}

	cfg, err := cm.LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultGlobalConfig() {
		t.Errorf("reloaded = %+v, want defaults", cfg)
	}

	if _, created, err := cm.InitConfig(); err != nil || created {
		t.Errorf("second InitConfig created=%v err=%v", created, err)
	}
}
