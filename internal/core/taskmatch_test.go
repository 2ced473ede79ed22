package core

import (
	"testing"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

func TestFuzzyMatcher(t *testing.T) {
	tasks := []models.Task{
		{LineIndex: 4, Description: "Review release notes"},
		{LineIndex: 5, Description: "Release"},
		{LineIndex: 6, Description: "Write release blog"},
	}
	m := FuzzyMatcher{}

	tests := []struct {
		query string
		want  int
		ok    bool
	}{
		{"release", 5, true},       // exact beats an earlier substring match
		{"  RELEASE ", 5, true},    // trimmed, case-insensitive
		{"release notes", 4, true}, // substring
		{"release b", 6, true},
		{"Notes", 4, true},
		{"deploy", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := m.Match(tasks, tt.query)
		if ok != tt.ok {
			t.Errorf("Match(%q) ok = %v, want %v", tt.query, ok, tt.ok)
			continue
		}
		if ok && got.LineIndex != tt.want {
			t.Errorf("Match(%q) = line %d, want %d", tt.query, got.LineIndex, tt.want)
		}
	}
}
