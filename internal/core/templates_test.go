package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/valter-silva-au/vault-brain/internal/storage"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

var fixedNow = time.Date(2025, 10, 30, 14, 22, 0, 0, time.Local)

func TestRenderTemplate(t *testing.T) {
	data := map[string]any{
		"name":  "Ada",
		"user":  map[string]any{"city": "Perth"},
		"items": []any{"a", "b"},
		"days":  []any{map[string]any{"day": 1}, map[string]any{"day": 2}},
		"empty": []any{},
		"zero":  0,
		"flag":  true,
	}
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"token", "hi {{name}}", "hi Ada"},
		{"dotted path", "{{user.city}}", "Perth"},
		{"unknown token", "[{{missing}}]", "[]"},
		{"each with this", "{{#each items}}<{{this}}>{{/each}}", "<a><b>"},
		{"each scope fallback", "{{#each days}}{{name}}{{day}};{{/each}}", "Ada1;Ada2;"},
		{"each over non-array", "{{#each name}}x{{/each}}", ""},
		{"if true", "{{#if flag}}yes{{/if}}", "yes"},
		{"if empty array", "{{#if empty}}yes{{/if}}", ""},
		{"if zero", "{{#if zero}}yes{{/if}}", ""},
		{"if missing", "{{#if nope}}yes{{/if}}", ""},
		{"nested", "{{#each days}}{{#if day}}d{{day}}{{/if}}{{/each}}", "d1d2"},
		{"datetime", "{{DATETIME.Now}}", "2025-10-30T14:22"},
		{"unclosed block", "a {{#if flag}}b", "a {{#if flag}}b"},
		{"stray close", "a{{/each}}b", "a{{/each}}b"},
		{"unterminated tag", "a {{name", "a {{name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderTemplate(tt.tmpl, data, fixedNow); got != tt.want {
				t.Errorf("RenderTemplate(%q) = %q, want %q", tt.tmpl, got, tt.want)
			}
		})
	}
}

func TestBuiltinWeeklyTemplate(t *testing.T) {
	key := models.WeekKey{ISOYear: 2025, ISOWeek: 44}
	got := NormalizeSpacing(RenderTemplate(builtinWeeklyTemplate, weeklyTemplateData(key), fixedNow))
	want := "# Week 44 in 2025\n\n" +
		"## 27 Monday\n\n" +
		"## 28 Tuesday\n\n" +
		"## 29 Wednesday\n\n" +
		"## 30 Thursday\n\n" +
		"## 31 Friday\n\n" +
		"## 1 Saturday\n\n" +
		"## 2 Sunday\n"
	if got != want {
		t.Errorf("stub =\n%s\nwant\n%s", got, want)
	}
}

func TestSampleWeeklyTemplate(t *testing.T) {
	key := models.WeekKey{ISOYear: 2026, ISOWeek: 1}
	got := NormalizeSpacing(RenderTemplate(SampleWeeklyTemplate, weeklyTemplateData(key), fixedNow))
	wantPrefix := "---\nweek: 2026-W01\nstart: 2025-12-29\nend: 2026-01-04\ncreated: 2025-10-30T14:22\n---\n\n" +
		"# Week 1 in 2026\n\n## Tasks This Week\n\n## 29 Monday\n"
	if len(got) < len(wantPrefix) || got[:len(wantPrefix)] != wantPrefix {
		t.Errorf("sample =\n%s", got)
	}
}

func TestLoadTemplate(t *testing.T) {
	root := t.TempDir()
	vc := models.NewVaultContext(root)
	tm := NewTemplateManager(storage.NewFileSystem(), func() time.Time { return fixedNow })

	if _, found, err := tm.LoadTemplate(vc, vc.JournalTemplateName); err != nil || found {
		t.Fatalf("missing template: found=%v err=%v", found, err)
	}

	dir := filepath.Join(root, vc.TemplatesFolderName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := "# {{title}}\ncreated {{DATETIME.Now}}\n"
	if err := os.WriteFile(filepath.Join(dir, "journal-weekly.md"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	tmpl, found, err := tm.LoadTemplate(vc, vc.JournalTemplateName)
	if err != nil || !found {
		t.Fatalf("LoadTemplate: found=%v err=%v", found, err)
	}
	got := tm.Render(tmpl, map[string]any{"title": "Week 44 in 2025"})
	if got != "# Week 44 in 2025\ncreated 2025-10-30T14:22\n" {
		t.Errorf("Render = %q", got)
	}
}
