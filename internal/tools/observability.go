package tools

import (
	"fmt"
	"time"

	"github.com/valter-silva-au/vault-brain/internal/observability"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// GetMetricsInput holds the arguments of get_metrics.
type GetMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window such as 7d, 30d or 24h (default 7d)"`
}

// GetAlertsInput holds the arguments of get_alerts.
type GetAlertsInput struct{}

// MetricsResult is the data of get_metrics.
type MetricsResult struct {
	*observability.Metrics
	CompletionRate float64 `json:"completion_rate"`
	Since          string  `json:"since"`
}

// GetMetrics aggregates journal activity from the event log.
func (t *Toolset) GetMetrics(in GetMetricsInput) models.ToolResult {
	if t.metrics == nil {
		return models.Fail("metrics are not available", CodeConfig)
	}
	window := in.Since
	if window == "" {
		window = "7d"
	}
	since, err := ParseSince(window, t.now())
	if err != nil {
		return invalid(err.Error())
	}
	m, err := t.metrics.Calculate(since)
	if err != nil {
		return fail(err)
	}
	return models.OK(
		fmt.Sprintf("%d entries, %d tasks added, %d completed in the last %s", m.EntriesAdded, m.TasksAdded, m.TasksCompleted, window),
		MetricsResult{Metrics: m, CompletionRate: m.CompletionRate(), Since: since.Format(time.RFC3339)},
	)
}

// GetAlerts evaluates the alert conditions.
func (t *Toolset) GetAlerts(GetAlertsInput) models.ToolResult {
	if t.alerts == nil {
		return models.Fail("alerts are not available", CodeConfig)
	}
	alerts, err := t.alerts.Evaluate()
	if err != nil {
		return fail(err)
	}
	if alerts == nil {
		alerts = []observability.Alert{}
	}
	if len(alerts) == 0 {
		return models.OK("no active alerts", alerts)
	}
	return models.OK(fmt.Sprintf("%d active alert(s)", len(alerts)), alerts)
}

// ParseSince turns a window such as "7d" or "24h" into the instant that
// far before now.
func ParseSince(s string, now time.Time) (time.Time, error) {
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	var num int
	if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if num < 0 {
		return time.Time{}, fmt.Errorf("invalid duration %q: must not be negative", s)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'w':
		return now.AddDate(0, 0, -7*num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d, w or h)", string(suffix))
	}
}
