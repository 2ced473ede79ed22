package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/valter-silva-au/vault-brain/internal/storage"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

func TestWeekFileName(t *testing.T) {
	if got := WeekFileName(models.WeekKey{ISOYear: 2026, ISOWeek: 1}); got != "2026-W01.md" {
		t.Errorf("WeekFileName = %q", got)
	}
}

func TestLocate(t *testing.T) {
	root := t.TempDir()
	vc := models.NewVaultContext(root)
	key := models.WeekKey{ISOYear: 2025, ISOWeek: 44}
	loc := NewWeekFileLocator(storage.NewFileSystem())

	canonical := filepath.Join(root, "1 Journal", "2025", "2025-W44.md")
	flat := filepath.Join(root, "1 Journal", "2025-W44.md")

	path, exists, err := loc.Locate(vc, key)
	if err != nil {
		t.Fatal(err)
	}
	if exists || path != canonical {
		t.Errorf("Locate on empty vault = %q, %v; want canonical path", path, exists)
	}

	if err := os.MkdirAll(filepath.Dir(flat), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(flat, []byte("# Week 44 in 2025\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path, exists, _ = loc.Locate(vc, key)
	if !exists || path != flat {
		t.Errorf("Locate = %q, %v; want flat legacy file", path, exists)
	}

	if err := os.MkdirAll(filepath.Dir(canonical), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(canonical, []byte("# Week 44 in 2025\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path, exists, _ = loc.Locate(vc, key)
	if !exists || path != canonical {
		t.Errorf("Locate = %q, %v; want year folder to win", path, exists)
	}
}
