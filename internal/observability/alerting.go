package observability

import (
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"
	"time"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts should fire. Zero disables a check.
type AlertThresholds struct {
	OpenTaskDays   int `yaml:"open_task_days" json:"open_task_days"`
	JournalGapDays int `yaml:"journal_gap_days" json:"journal_gap_days"`
	MaxOpenTasks   int `yaml:"max_open_tasks" json:"max_open_tasks"`
}

// DefaultAlertThresholds returns sensible defaults for alert thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		OpenTaskDays:   14,
		JournalGapDays: 3,
		MaxOpenTasks:   20,
	}
}

// AlertEngine evaluates alert conditions against the event log.
type AlertEngine interface {
	Evaluate() ([]Alert, error)
}

// alertEngine implements AlertEngine by reading events and checking thresholds.
type alertEngine struct {
	eventLog   EventLog
	thresholds AlertThresholds
	now        func() time.Time
}

// NewAlertEngine creates a new AlertEngine with the given EventLog and thresholds.
func NewAlertEngine(eventLog EventLog, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{
		eventLog:   eventLog,
		thresholds: thresholds,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate reads events and checks all alert conditions, returning any triggered alerts.
func (ae *alertEngine) Evaluate() ([]Alert, error) {
	now := ae.now()
	events, err := ae.eventLog.Read(EventFilter{TypePrefix: "journal."})
	if err != nil {
		return nil, fmt.Errorf("reading journal events: %w", err)
	}

	var alerts []Alert
	open := openTasks(events)
	alerts = append(alerts, ae.checkStaleTasks(open, now)...)
	alerts = append(alerts, ae.checkOpenTaskCount(open, now)...)
	alerts = append(alerts, ae.checkJournalGap(events, now)...)
	return alerts, nil
}

// openTask is a task added through the engine and not yet completed.
type openTask struct {
	path        string
	description string
	addedAt     time.Time
}

func taskKey(path, description string) string {
	return path + "\x00" + strings.ToLower(strings.TrimSpace(description))
}

// openTasks replays task events in order. Tasks completed outside the
// engine (by editing the file) are not seen.
func openTasks(events []Event) []openTask {
	tasks := make(map[string]openTask)
	for _, event := range events {
		path, _ := event.Data["path"].(string)
		description, _ := event.Data["description"].(string)
		if description == "" {
			continue
		}
		switch event.Type {
		case EventTaskAdded:
			if done, _ := event.Data["completed"].(bool); !done {
				tasks[taskKey(path, description)] = openTask{path, description, event.Time}
			}
			for _, child := range stringList(event.Data["children"]) {
				tasks[taskKey(path, child)] = openTask{path, child, event.Time}
			}
		case EventTaskCompleted:
			delete(tasks, taskKey(path, description))
		}
	}

	out := make([]openTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].addedAt.Equal(out[j].addedAt) {
			return out[i].addedAt.Before(out[j].addedAt)
		}
		return out[i].description < out[j].description
	})
	return out
}

// checkStaleTasks looks for tasks left open longer than the threshold.
func (ae *alertEngine) checkStaleTasks(open []openTask, now time.Time) []Alert {
	if ae.thresholds.OpenTaskDays <= 0 {
		return nil
	}
	threshold := time.Duration(ae.thresholds.OpenTaskDays) * 24 * time.Hour
	var alerts []Alert
	for _, t := range open {
		if now.Sub(t.addedAt) > threshold {
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("stale-%x", sha1.Sum([]byte(taskKey(t.path, t.description))))[:18],
				Condition:   "task_open_too_long",
				Severity:    SeverityMedium,
				Message:     fmt.Sprintf("task %q has been open for more than %d days", t.description, ae.thresholds.OpenTaskDays),
				TriggeredAt: now,
			})
		}
	}
	return alerts
}

// checkOpenTaskCount alerts when too many tasks are open at once.
func (ae *alertEngine) checkOpenTaskCount(open []openTask, now time.Time) []Alert {
	if ae.thresholds.MaxOpenTasks <= 0 || len(open) <= ae.thresholds.MaxOpenTasks {
		return nil
	}
	return []Alert{{
		ID:          "open-task-count",
		Condition:   "too_many_open_tasks",
		Severity:    SeverityLow,
		Message:     fmt.Sprintf("%d tasks are open, exceeding the maximum of %d", len(open), ae.thresholds.MaxOpenTasks),
		TriggeredAt: now,
	}}
}

// checkJournalGap alerts when no entry has been written for too long.
func (ae *alertEngine) checkJournalGap(events []Event, now time.Time) []Alert {
	if ae.thresholds.JournalGapDays <= 0 {
		return nil
	}
	var last time.Time
	for _, event := range events {
		if event.Type == EventEntryAdded && event.Time.After(last) {
			last = event.Time
		}
	}
	if last.IsZero() {
		return nil
	}
	threshold := time.Duration(ae.thresholds.JournalGapDays) * 24 * time.Hour
	if now.Sub(last) <= threshold {
		return nil
	}
	return []Alert{{
		ID:          "journal-gap",
		Condition:   "journal_gap",
		Severity:    SeverityHigh,
		Message:     fmt.Sprintf("no journal entry for %d days (last on %s)", int(now.Sub(last).Hours()/24), last.Format("2006-01-02")),
		TriggeredAt: now,
	}}
}
