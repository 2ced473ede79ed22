package models

// Default values for the per-call vault context.
const (
	DefaultJournalPath         = "1 Journal"
	DefaultTasksHeading        = "## Tasks This Week"
	DefaultTemplatesFolderName = "Templates"
	DefaultJournalTemplateName = "journal-weekly"
)

// VaultContext is the immutable configuration passed to every journal and
// note operation. It carries no behaviour; hosts derive a fresh value whenever
// their environment changes.
type VaultContext struct {
	VaultRoot           string `yaml:"vault_root" json:"vault_root"`
	JournalPath         string `yaml:"journal_path" json:"journal_path"`
	TasksHeading        string `yaml:"tasks_heading" json:"tasks_heading"`
	TemplatesFolderName string `yaml:"templates_folder_name" json:"templates_folder_name"`
	JournalTemplateName string `yaml:"journal_template_name" json:"journal_template_name"`
}

// NewVaultContext returns a VaultContext rooted at vaultRoot with every other
// field set to its default.
func NewVaultContext(vaultRoot string) VaultContext {
	return VaultContext{
		VaultRoot:           vaultRoot,
		JournalPath:         DefaultJournalPath,
		TasksHeading:        DefaultTasksHeading,
		TemplatesFolderName: DefaultTemplatesFolderName,
		JournalTemplateName: DefaultJournalTemplateName,
	}
}

// WithJournalPath returns a copy of vc using journalPath when it is non-empty.
func (vc VaultContext) WithJournalPath(journalPath string) VaultContext {
	if journalPath != "" {
		vc.JournalPath = journalPath
	}
	return vc
}

// WithDefaults fills empty fields with their defaults.
func (vc VaultContext) WithDefaults() VaultContext {
	if vc.JournalPath == "" {
		vc.JournalPath = DefaultJournalPath
	}
	if vc.TasksHeading == "" {
		vc.TasksHeading = DefaultTasksHeading
	}
	if vc.TemplatesFolderName == "" {
		vc.TemplatesFolderName = DefaultTemplatesFolderName
	}
	if vc.JournalTemplateName == "" {
		vc.JournalTemplateName = DefaultJournalTemplateName
	}
	return vc
}
