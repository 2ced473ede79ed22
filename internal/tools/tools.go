// Package tools is the boundary between hosts (the MCP server and the CLI)
// and the journal and note engines. Every operation validates its input
// before touching the vault and reports its outcome as a models.ToolResult;
// no Go error escapes a Toolset method.
package tools

import (
	"errors"
	"time"

	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/internal/observability"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// Machine error codes carried in ToolResult.Error.
const (
	CodeConfig         = "config_error"
	CodeValidation     = "validation_error"
	CodeNoTasksSection = "no_tasks_section"
	CodeTaskNotFound   = "task_not_found"
	CodeParentNotFound = "parent_not_found"
	CodeNotFound       = "not_found"
	CodeInvalidDate    = "invalid_date"
	CodeInvalidPath    = "invalid_path"
	CodeIO             = "io_error"
)

// Toolset exposes the vault operations to hosts.
type Toolset struct {
	vault   models.VaultContext
	journal core.JournalManager
	notes   core.NoteManager
	metrics observability.MetricsCalculator
	alerts  observability.AlertEngine
	now     func() time.Time
}

// Option configures a Toolset.
type Option func(*Toolset)

// WithObservability enables the metrics and alert tools. Either may be nil.
func WithObservability(metrics observability.MetricsCalculator, alerts observability.AlertEngine) Option {
	return func(t *Toolset) {
		t.metrics = metrics
		t.alerts = alerts
	}
}

// WithClock overrides the time source used for relative dates.
func WithClock(now func() time.Time) Option {
	return func(t *Toolset) { t.now = now }
}

// New creates a Toolset operating on the vault described by vc.
func New(vc models.VaultContext, journal core.JournalManager, notes core.NoteManager, opts ...Option) *Toolset {
	t := &Toolset{
		vault:   vc,
		journal: journal,
		notes:   notes,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Vault returns the vault context every call runs against.
func (t *Toolset) Vault() models.VaultContext {
	return t.vault
}

// WithVault returns a copy of the toolset bound to a different vault context.
func (t *Toolset) WithVault(vc models.VaultContext) *Toolset {
	cp := *t
	cp.vault = vc
	return &cp
}

// errorCode maps an engine error to its machine code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, core.ErrNoVaultRoot):
		return CodeConfig
	case errors.Is(err, core.ErrValidation):
		return CodeValidation
	case errors.Is(err, core.ErrNoTasksSection):
		return CodeNoTasksSection
	case errors.Is(err, core.ErrTaskNotFound):
		return CodeTaskNotFound
	case errors.Is(err, core.ErrParentNotFound):
		return CodeParentNotFound
	case errors.Is(err, core.ErrNoteNotFound):
		return CodeNotFound
	case errors.Is(err, core.ErrInvalidDate), errors.Is(err, core.ErrUnrecognizedDate):
		return CodeInvalidDate
	case errors.Is(err, core.ErrPathOutsideVault):
		return CodeInvalidPath
	default:
		return CodeIO
	}
}

func fail(err error) models.ToolResult {
	return models.Fail(err.Error(), errorCode(err))
}

func invalid(message string) models.ToolResult {
	return models.Fail(message, CodeValidation)
}
