package core

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/valter-silva-au/vault-brain/internal/storage"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// WeekFileName returns the bit-exact weekly file name, e.g. "2025-W44.md".
func WeekFileName(key models.WeekKey) string {
	return fmt.Sprintf("%d-W%02d.md", key.ISOYear, key.ISOWeek)
}

// WeekFileCandidates lists the accepted locations for a week's file, in
// lookup order. The first entry is the canonical path for new files.
func WeekFileCandidates(vc models.VaultContext, key models.WeekKey) []string {
	root := filepath.Join(vc.VaultRoot, vc.JournalPath)
	name := WeekFileName(key)
	return []string{
		filepath.Join(root, strconv.Itoa(key.ISOYear), name),
		filepath.Join(root, name),
	}
}

// WeekFileLocator resolves the file backing an ISO week.
type WeekFileLocator interface {
	Locate(vc models.VaultContext, key models.WeekKey) (path string, exists bool, err error)
}

type weekFileLocator struct {
	fs storage.FileSystem
}

// NewWeekFileLocator creates a locator that checks existence through fs.
func NewWeekFileLocator(fs storage.FileSystem) WeekFileLocator {
	return &weekFileLocator{fs: fs}
}

// Locate returns the first existing candidate, or the canonical path with
// exists=false when none is on disk.
func (l *weekFileLocator) Locate(vc models.VaultContext, key models.WeekKey) (string, bool, error) {
	candidates := WeekFileCandidates(vc, key)
	for _, path := range candidates {
		ok, err := l.fs.Exists(path)
		if err != nil {
			return "", false, fmt.Errorf("locating week file: %w", err)
		}
		if ok {
			return path, true, nil
		}
	}
	return candidates[0], false, nil
}
