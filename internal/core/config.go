// Package core contains the journal engine for vault-brain: ISO week math,
// weekly file location and editing, task matching, templates, the markdown
// spacing normalizer, note editing and configuration.
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/vault-brain/pkg/models"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the vault-level configuration file.
const ConfigFileName = ".vbconfig"

// EnvPrefix prefixes environment variables that override .vbconfig keys,
// e.g. VB_JOURNAL_PATH for journal.path.
const EnvPrefix = "VB"

// ConfigurationManager defines the interface for loading, validating and
// initialising the vault configuration in .vbconfig.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
	InitConfig() (path string, created bool, err error)
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the vault root where .vbconfig resides.
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		JournalPath:         models.DefaultJournalPath,
		TasksHeading:        models.DefaultTasksHeading,
		TemplatesFolderName: models.DefaultTemplatesFolderName,
		JournalTemplateName: models.DefaultJournalTemplateName,
		EventBackend:        models.EventBackendJSONL,
		Alerts: models.AlertConfig{
			OpenTaskDays:   14,
			JournalGapDays: 3,
			MaxOpenTasks:   20,
		},
	}
}

// LoadGlobalConfig reads .vbconfig from the base path using Viper.
// If the file does not exist, defaults (plus any VB_ overrides) are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("journal.path", cfg.JournalPath)
	v.SetDefault("journal.tasks_heading", cfg.TasksHeading)
	v.SetDefault("templates.folder", cfg.TemplatesFolderName)
	v.SetDefault("templates.journal_weekly", cfg.JournalTemplateName)
	v.SetDefault("events.backend", string(cfg.EventBackend))
	v.SetDefault("alerts.open_task_days", cfg.Alerts.OpenTaskDays)
	v.SetDefault("alerts.journal_gap_days", cfg.Alerts.JournalGapDays)
	v.SetDefault("alerts.max_open_tasks", cfg.Alerts.MaxOpenTasks)
	v.SetDefault("notifications.enabled", false)
	v.SetDefault("notifications.slack.webhook_url", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
		}
		// No config file found; defaults and environment still apply.
	}

	cfg.JournalPath = v.GetString("journal.path")
	cfg.TasksHeading = v.GetString("journal.tasks_heading")
	cfg.TemplatesFolderName = v.GetString("templates.folder")
	cfg.JournalTemplateName = v.GetString("templates.journal_weekly")
	cfg.EventBackend = models.EventBackend(strings.ToLower(v.GetString("events.backend")))
	cfg.Alerts.OpenTaskDays = v.GetInt("alerts.open_task_days")
	cfg.Alerts.JournalGapDays = v.GetInt("alerts.journal_gap_days")
	cfg.Alerts.MaxOpenTasks = v.GetInt("alerts.max_open_tasks")
	cfg.Notifications.Enabled = v.GetBool("notifications.enabled")
	cfg.Notifications.Slack.WebhookURL = v.GetString("notifications.slack.webhook_url")

	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values and reports
// every problem at once.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if strings.TrimSpace(cfg.JournalPath) == "" {
		errs = append(errs, "journal.path must not be empty")
	}
	if filepath.IsAbs(cfg.JournalPath) || strings.HasPrefix(filepath.Clean(cfg.JournalPath), "..") {
		errs = append(errs, fmt.Sprintf("journal.path %q must be relative to the vault", cfg.JournalPath))
	}
	if !IsLevel2Heading(cfg.TasksHeading) {
		errs = append(errs, fmt.Sprintf("journal.tasks_heading %q must be a level-2 heading (\"## ...\")", cfg.TasksHeading))
	}
	switch cfg.EventBackend {
	case models.EventBackendJSONL, models.EventBackendSQLite:
	default:
		errs = append(errs, fmt.Sprintf("events.backend %q is invalid, must be one of: jsonl, sqlite", cfg.EventBackend))
	}
	if cfg.Alerts.OpenTaskDays < 0 {
		errs = append(errs, fmt.Sprintf("alerts.open_task_days must be non-negative, got %d", cfg.Alerts.OpenTaskDays))
	}
	if cfg.Alerts.JournalGapDays < 0 {
		errs = append(errs, fmt.Sprintf("alerts.journal_gap_days must be non-negative, got %d", cfg.Alerts.JournalGapDays))
	}
	if cfg.Alerts.MaxOpenTasks < 0 {
		errs = append(errs, fmt.Sprintf("alerts.max_open_tasks must be non-negative, got %d", cfg.Alerts.MaxOpenTasks))
	}
	if cfg.Notifications.Enabled && cfg.Notifications.Slack.WebhookURL == "" {
		errs = append(errs, "notifications.slack.webhook_url is required when notifications are enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// fileConfig mirrors the nested layout of .vbconfig for writing.
type fileConfig struct {
	Journal struct {
		Path         string `yaml:"path"`
		TasksHeading string `yaml:"tasks_heading"`
	} `yaml:"journal"`
	Templates struct {
		Folder        string `yaml:"folder"`
		JournalWeekly string `yaml:"journal_weekly"`
	} `yaml:"templates"`
	Events struct {
		Backend string `yaml:"backend"`
	} `yaml:"events"`
	Alerts        models.AlertConfig        `yaml:"alerts"`
	Notifications models.NotificationConfig `yaml:"notifications"`
}

// InitConfig writes a .vbconfig with default values unless one exists.
func (cm *viperConfigManager) InitConfig() (string, bool, error) {
	path := filepath.Join(cm.basePath, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	def := DefaultGlobalConfig()
	var fc fileConfig
	fc.Journal.Path = def.JournalPath
	fc.Journal.TasksHeading = def.TasksHeading
	fc.Templates.Folder = def.TemplatesFolderName
	fc.Templates.JournalWeekly = def.JournalTemplateName
	fc.Events.Backend = string(def.EventBackend)
	fc.Alerts = def.Alerts
	fc.Notifications = def.Notifications

	data, err := yaml.Marshal(&fc)
	if err != nil {
		return "", false, fmt.Errorf("marshaling %s: %w", ConfigFileName, err)
	}
	if err := os.MkdirAll(cm.basePath, 0o755); err != nil {
		return "", false, fmt.Errorf("creating vault directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", false, fmt.Errorf("writing %s: %w", ConfigFileName, err)
	}
	return path, true, nil
}
