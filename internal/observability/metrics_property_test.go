package observability

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"
)

// Property: MetricsCountEvents
// For any mix of journal events, each counter equals the number of events of
// its type and EventCount equals the total.
func TestProperty_MetricsCountEvents(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		el, err := NewJSONLEventLog(filepath.Join(t.TempDir(), "events.jsonl"))
		if err != nil {
			t.Fatalf("creating event log: %v", err)
		}
		defer el.Close()

		types := []string{EventWeekCreated, EventEntryAdded, EventTaskAdded, EventTaskCompleted, EventNoteWritten}
		counts := make(map[string]int)
		baseTime := time.Date(2025, 1, 13, 8, 0, 0, 0, time.UTC)

		n := rapid.IntRange(0, 30).Draw(rt, "n")
		for i := 0; i < n; i++ {
			typ := rapid.SampledFrom(types).Draw(rt, fmt.Sprintf("type_%d", i))
			offset := rapid.IntRange(0, 24*14).Draw(rt, fmt.Sprintf("offset_%d", i))
			at := baseTime.Add(time.Duration(offset) * time.Hour)
			counts[typ]++
			err := el.Write(Event{
				Time:  at,
				Level: "INFO",
				Type:  typ,
				Data:  map[string]any{"date": at.Format("2006-01-02"), "description": "task"},
			})
			if err != nil {
				t.Fatalf("writing event: %v", err)
			}
		}

		m, err := NewMetricsCalculator(el).Calculate(baseTime.Add(-time.Hour))
		if err != nil {
			t.Fatalf("calculating metrics: %v", err)
		}

		if m.EventCount != n {
			rt.Errorf("EventCount = %d, want %d", m.EventCount, n)
		}
		if m.EntriesAdded != counts[EventEntryAdded] {
			rt.Errorf("EntriesAdded = %d, want %d", m.EntriesAdded, counts[EventEntryAdded])
		}
		if m.TasksAdded != counts[EventTaskAdded] {
			rt.Errorf("TasksAdded = %d, want %d", m.TasksAdded, counts[EventTaskAdded])
		}
		if m.TasksCompleted != counts[EventTaskCompleted] {
			rt.Errorf("TasksCompleted = %d, want %d", m.TasksCompleted, counts[EventTaskCompleted])
		}
		if m.WeeksCreated != counts[EventWeekCreated] || m.NotesWritten != counts[EventNoteWritten] {
			rt.Errorf("weeks/notes = %d/%d", m.WeeksCreated, m.NotesWritten)
		}

		byDay := 0
		for _, c := range m.EntriesByDay {
			byDay += c
		}
		if byDay != m.EntriesAdded {
			rt.Errorf("EntriesByDay sums to %d, want %d", byDay, m.EntriesAdded)
		}
	})
}

// Property: CompletionRateBounded
// CompletionRate is zero when nothing was added and otherwise the plain ratio.
func TestProperty_CompletionRateBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		added := rapid.IntRange(0, 1000).Draw(rt, "added")
		completed := rapid.IntRange(0, 1000).Draw(rt, "completed")
		m := &Metrics{TasksAdded: added, TasksCompleted: completed}

		rate := m.CompletionRate()
		if added == 0 {
			if rate != 0 {
				rt.Errorf("rate = %f with no tasks added", rate)
			}
			return
		}
		if want := float64(completed) / float64(added); rate != want {
			rt.Errorf("rate = %f, want %f", rate, want)
		}
	})
}
