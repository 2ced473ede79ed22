package observability

import (
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// backends opens one EventLog per storage implementation.
var backends = map[string]func(t *testing.T) EventLog{
	"jsonl": func(t *testing.T) EventLog {
		log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), ".vb", "events.jsonl"))
		if err != nil {
			t.Fatalf("creating jsonl event log: %v", err)
		}
		return log
	},
	"sqlite": func(t *testing.T) EventLog {
		log, err := NewSQLiteEventLog(filepath.Join(t.TempDir(), ".vb", "events.db"))
		if err != nil {
			t.Fatalf("creating sqlite event log: %v", err)
		}
		return log
	},
}

func forEachBackend(t *testing.T, fn func(t *testing.T, log EventLog)) {
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			log := open(t)
			defer log.Close()
			fn(t, log)
		})
	}
}

func TestEventLog_WriteAndRead(t *testing.T) {
	forEachBackend(t, func(t *testing.T, log EventLog) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		events := []Event{
			{
				Time:    now,
				Level:   "INFO",
				Type:    EventEntryAdded,
				Message: "journal entry added",
				Data:    map[string]any{"path": "1 Journal/2025/2025-W44.md", "date": "2025-10-30"},
			},
			{
				Time:    now.Add(time.Second),
				Level:   "INFO",
				Type:    EventTaskAdded,
				Message: "task added",
				Data:    map[string]any{"description": "Ship release", "children": []string{"Tag"}},
			},
		}
		for _, e := range events {
			if err := log.Write(e); err != nil {
				t.Fatalf("writing event: %v", err)
			}
		}

		result, err := log.Read(EventFilter{})
		if err != nil {
			t.Fatalf("reading events: %v", err)
		}
		if len(result) != 2 {
			t.Fatalf("expected 2 events, got %d", len(result))
		}
		if result[0].Type != EventEntryAdded || result[1].Type != EventTaskAdded {
			t.Errorf("order = %s, %s", result[0].Type, result[1].Type)
		}
		if !result[0].Time.Equal(now) {
			t.Errorf("time = %v, want %v", result[0].Time, now)
		}
		if result[0].Data["date"] != "2025-10-30" {
			t.Errorf("data = %v", result[0].Data)
		}
		if got := stringList(result[1].Data["children"]); len(got) != 1 || got[0] != "Tag" {
			t.Errorf("children = %v", result[1].Data["children"])
		}
	})
}

func TestEventLog_Filters(t *testing.T) {
	forEachBackend(t, func(t *testing.T, log EventLog) {
		base := time.Date(2025, 10, 27, 9, 0, 0, 0, time.UTC)
		writes := []Event{
			{Time: base, Level: "INFO", Type: EventWeekCreated},
			{Time: base.Add(time.Hour), Level: "INFO", Type: EventEntryAdded},
			{Time: base.Add(2 * time.Hour), Level: "WARN", Type: EventNoteWritten},
			{Time: base.Add(3 * time.Hour), Level: "INFO", Type: EventTaskCompleted},
		}
		for _, e := range writes {
			if err := log.Write(e); err != nil {
				t.Fatal(err)
			}
		}

		since := base.Add(30 * time.Minute)
		until := base.Add(2 * time.Hour)
		tests := []struct {
			name   string
			filter EventFilter
			want   int
		}{
			{"type", EventFilter{Type: EventEntryAdded}, 1},
			{"prefix", EventFilter{TypePrefix: "journal."}, 3},
			{"level", EventFilter{Level: "WARN"}, 1},
			{"range", EventFilter{Since: &since, Until: &until}, 2},
			{"combined", EventFilter{Since: &since, TypePrefix: "journal."}, 2},
		}
		for _, tt := range tests {
			got, err := log.Read(tt.filter)
			if err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			if len(got) != tt.want {
				t.Errorf("%s: got %d events, want %d", tt.name, len(got), tt.want)
			}
		}
	})
}

func TestEventLog_EmptyLog(t *testing.T) {
	forEachBackend(t, func(t *testing.T, log EventLog) {
		events, err := log.Read(EventFilter{})
		if err != nil {
			t.Fatalf("reading empty log: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("expected 0 events, got %d", len(events))
		}
	})
}

func TestEventLog_ConcurrentWrites(t *testing.T) {
	forEachBackend(t, func(t *testing.T, log EventLog) {
		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := log.Write(Event{
					Time:  time.Now().UTC(),
					Level: "INFO",
					Type:  EventEntryAdded,
					Data:  map[string]any{"index": i},
				})
				if err != nil {
					t.Errorf("writing event %d: %v", i, err)
				}
			}(i)
		}
		wg.Wait()

		events, err := log.Read(EventFilter{})
		if err != nil {
			t.Fatalf("reading events: %v", err)
		}
		if len(events) != n {
			t.Errorf("expected %d events, got %d", n, len(events))
		}
	})
}

func TestNewSQLiteEventLog_OpenError(t *testing.T) {
	orig := openDB
	defer func() { openDB = orig }()
	openDB = func(string, string) (*sql.DB, error) { return nil, errors.New("boom") }

	if _, err := NewSQLiteEventLog(filepath.Join(t.TempDir(), "events.db")); err == nil {
		t.Fatal("expected open error")
	}
}

func TestMessageFor(t *testing.T) {
	if got := MessageFor(EventTaskCompleted); got != "task completed" {
		t.Errorf("MessageFor = %q", got)
	}
	if got := MessageFor("custom.thing"); got != "custom.thing" {
		t.Errorf("MessageFor(unknown) = %q", got)
	}
}

func TestNewSQLiteEventLog_InMemory(t *testing.T) {
	log, err := NewSQLiteEventLog(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory log: %v", err)
	}
	defer log.Close()

	if err := log.Write(Event{Time: time.Now(), Level: "INFO", Type: EventWeekCreated}); err != nil {
		t.Fatal(err)
	}
	events, err := log.Read(EventFilter{Type: EventWeekCreated})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}
