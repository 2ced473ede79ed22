package models

// EventBackend selects the storage used by the observability event log.
type EventBackend string

const (
	EventBackendJSONL  EventBackend = "jsonl"
	EventBackendSQLite EventBackend = "sqlite"
)

// AlertConfig holds alert thresholds from the notifications section of .vbconfig.
type AlertConfig struct {
	OpenTaskDays   int `yaml:"open_task_days" mapstructure:"open_task_days"`
	JournalGapDays int `yaml:"journal_gap_days" mapstructure:"journal_gap_days"`
	MaxOpenTasks   int `yaml:"max_open_tasks" mapstructure:"max_open_tasks"`
}

// SlackConfig holds Slack webhook settings.
type SlackConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
}

// NotificationConfig controls whether triggered alerts are pushed anywhere.
type NotificationConfig struct {
	Enabled bool        `yaml:"enabled" mapstructure:"enabled"`
	Slack   SlackConfig `yaml:"slack" mapstructure:"slack"`
}

// GlobalConfig holds vault-wide settings read from .vbconfig via Viper.
type GlobalConfig struct {
	JournalPath         string             `yaml:"journal_path" mapstructure:"journal_path"`
	TasksHeading        string             `yaml:"tasks_heading" mapstructure:"tasks_heading"`
	TemplatesFolderName string             `yaml:"templates_folder" mapstructure:"templates_folder"`
	JournalTemplateName string             `yaml:"journal_template" mapstructure:"journal_template"`
	EventBackend        EventBackend       `yaml:"event_backend" mapstructure:"event_backend"`
	Alerts              AlertConfig        `yaml:"alerts" mapstructure:"alerts"`
	Notifications       NotificationConfig `yaml:"notifications" mapstructure:"notifications"`
}

// VaultContext builds the per-call context for the vault at vaultRoot.
func (c *GlobalConfig) VaultContext(vaultRoot string) VaultContext {
	return VaultContext{
		VaultRoot:           vaultRoot,
		JournalPath:         c.JournalPath,
		TasksHeading:        c.TasksHeading,
		TemplatesFolderName: c.TemplatesFolderName,
		JournalTemplateName: c.JournalTemplateName,
	}.WithDefaults()
}
