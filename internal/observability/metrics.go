package observability

import (
	"fmt"
	"sort"
	"time"
)

// Metrics holds calculated metrics derived from the event log.
type Metrics struct {
	EntriesAdded   int            `json:"entries_added"`
	TasksAdded     int            `json:"tasks_added"`
	TasksCompleted int            `json:"tasks_completed"`
	WeeksCreated   int            `json:"weeks_created"`
	NotesWritten   int            `json:"notes_written"`
	EntriesByDay   map[string]int `json:"entries_by_day"` // weekday name -> entries
	ActiveDays     []string       `json:"active_days"`    // YYYY-MM-DD with at least one entry
	EventCount     int            `json:"event_count"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty"`
}

// CompletionRate is the share of added tasks that were completed.
func (m *Metrics) CompletionRate() float64 {
	if m.TasksAdded == 0 {
		return 0
	}
	return float64(m.TasksCompleted) / float64(m.TasksAdded)
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them into metrics.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		EntriesByDay: make(map[string]int),
		ActiveDays:   []string{},
	}
	m.EventCount = len(events)

	days := make(map[string]bool)
	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case EventEntryAdded:
			m.EntriesAdded++
			date, _ := event.Data["date"].(string)
			if d, err := time.Parse("2006-01-02", date); err == nil {
				m.EntriesByDay[d.Weekday().String()]++
				days[date] = true
			}
		case EventTaskAdded:
			m.TasksAdded++
			m.TasksAdded += len(stringList(event.Data["children"]))
		case EventTaskCompleted:
			m.TasksCompleted++
		case EventWeekCreated:
			m.WeeksCreated++
		case EventNoteWritten:
			m.NotesWritten++
		}
	}

	for d := range days {
		m.ActiveDays = append(m.ActiveDays, d)
	}
	sort.Strings(m.ActiveDays)
	return m, nil
}

// stringList reads a []string from event data, which arrives as []any
// after a JSON round trip.
func stringList(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
