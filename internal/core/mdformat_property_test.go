package core

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func markdownLine() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{
		"",
		"   ",
		"# Week 44 in 2025",
		"## 27 Monday",
		"## Tasks This Week",
		"### note",
		"- 09:00 - entry",
		"- [ ] task",
		"  - [x] child",
		"* star item",
		"1. numbered",
		"plain text",
		"```",
		"---",
		"key: value",
	})
}

func nonBlank(lines []string) []string {
	var out []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// Property: Normalizer Idempotence
// Running NormalizeSpacing on its own output changes nothing.
func TestProperty_NormalizeSpacingIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		doc := strings.Join(rapid.SliceOf(markdownLine()).Draw(rt, "lines"), "\n")
		once := NormalizeSpacing(doc)
		twice := NormalizeSpacing(once)
		if once != twice {
			rt.Fatalf("not idempotent:\n%q\n%q", once, twice)
		}
		if !strings.HasSuffix(once, "\n") || (len(once) > 1 && strings.HasSuffix(once, "\n\n")) {
			rt.Fatalf("output must end with exactly one newline: %q", once)
		}
	})
}

// Property: Normalizer Preserves Content
// Non-blank lines keep their text and order.
func TestProperty_NormalizeSpacingPreservesContent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOf(markdownLine()).Draw(rt, "lines")
		out := SplitLines(NormalizeSpacing(strings.Join(lines, "\n")))

		want := nonBlank(lines)
		got := nonBlank(out)
		if len(got) != len(want) {
			rt.Fatalf("non-blank lines: got %d, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
			}
		}
	})
}
