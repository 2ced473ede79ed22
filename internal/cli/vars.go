package cli

import (
	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/internal/observability"
	"github.com/valter-silva-au/vault-brain/internal/tools"
)

// Service instances, set during app initialization in app.go.
var (
	VaultRoot string
	Tools     *tools.Toolset
	ConfigMgr core.ConfigurationManager
)

// Observability service instances, set during app initialization in app.go.
var (
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
)
