package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/internal/storage"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// cliNow is Thursday of ISO week 2025-W44.
var cliNow = time.Date(2025, 10, 30, 14, 22, 0, 0, time.Local)

// useTestVault points Tools and VaultRoot at a fresh vault with a fixed
// clock and restores them when the test ends.
func useTestVault(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	clock := func() time.Time { return cliNow }
	fs := storage.NewFileSystem()
	journal := core.NewJournalManager(fs, core.NewTemplateManager(fs, clock), core.WithClock(clock))
	notes := core.NewNoteManager(fs, nil, nil)

	setVar(t, &VaultRoot, root)
	setVar(t, &Tools, tools.New(models.NewVaultContext(root), journal, notes, tools.WithClock(clock)))
	return root
}

// setVar assigns a package-level variable for the duration of the test.
func setVar[T any](t *testing.T, p *T, v T) {
	t.Helper()
	orig := *p
	*p = v
	t.Cleanup(func() { *p = orig })
}

// runCmd invokes cmd.RunE directly and returns what it printed.
func runCmd(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := cmd.RunE(cmd, args)
	return buf.String(), err
}

func readVaultFile(t *testing.T, root string, rel ...string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(append([]string{root}, rel...)...))
	if err != nil {
		t.Fatalf("reading %s: %v", filepath.Join(rel...), err)
	}
	return string(data)
}

func weekFilePath() []string {
	return []string{"1 Journal", "2025", "2025-W44.md"}
}
