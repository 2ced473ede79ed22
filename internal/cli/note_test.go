package cli

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

func TestNoteWriteAndReadCmd(t *testing.T) {
	root := useTestVault(t)
	setVar(t, &noteMode, "overwrite")

	out, err := runCmd(t, noteWriteCmd, "Projects/roadmap", "# Roadmap\n\nShip v2.\n")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(out, "Projects/roadmap.md") {
		t.Errorf("write output = %q", out)
	}
	if got := readVaultFile(t, root, "Projects", "roadmap.md"); got != "# Roadmap\n\nShip v2.\n" {
		t.Errorf("file = %q", got)
	}

	out, err = runCmd(t, noteReadCmd, "Projects/roadmap")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out != "# Roadmap\n\nShip v2.\n" {
		t.Errorf("read output = %q", out)
	}
}

func TestNoteWriteCmd_FromStdin(t *testing.T) {
	root := useTestVault(t)
	setVar(t, &noteMode, "append")

	noteWriteCmd.SetIn(strings.NewReader("piped line\n"))
	t.Cleanup(func() { noteWriteCmd.SetIn(nil) })

	if _, err := runCmd(t, noteWriteCmd, "inbox", "-"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := readVaultFile(t, root, "inbox.md"); !strings.Contains(got, "piped line") {
		t.Errorf("file = %q", got)
	}
}

func TestNoteWriteCmd_InvalidMode(t *testing.T) {
	useTestVault(t)
	setVar(t, &noteMode, "replace")

	_, err := runCmd(t, noteWriteCmd, "inbox", "text")
	if !errors.Is(err, errToolFailed) || !strings.Contains(err.Error(), "validation_error") {
		t.Errorf("err = %v", err)
	}
}

func TestNoteReadCmd_NotFound(t *testing.T) {
	useTestVault(t)

	_, err := runCmd(t, noteReadCmd, "missing")
	if !errors.Is(err, errToolFailed) || !strings.Contains(err.Error(), "not_found") {
		t.Errorf("err = %v", err)
	}
}

func TestNoteReadCmd_OutsideVault(t *testing.T) {
	useTestVault(t)

	_, err := runCmd(t, noteReadCmd, "../secrets")
	if !errors.Is(err, errToolFailed) || !strings.Contains(err.Error(), "invalid_path") {
		t.Errorf("err = %v", err)
	}
}

func TestNoteListAndSearchCmd(t *testing.T) {
	useTestVault(t)
	setVar(t, &noteMode, "overwrite")
	for path, content := range map[string]string{
		"top":          "alpha\n",
		"Projects/one": "beta gamma\n",
	} {
		if _, err := runCmd(t, noteWriteCmd, path, content); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}

	out, err := runCmd(t, noteListCmd)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "top.md") || strings.Contains(out, "Projects/one.md") {
		t.Errorf("non-recursive list:\n%s", out)
	}

	setVar(t, &noteRecursive, true)
	out, err = runCmd(t, noteListCmd)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Projects/one.md") {
		t.Errorf("recursive list:\n%s", out)
	}

	out, err = runCmd(t, noteSearchCmd, "GAMMA")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Projects/one.md:1:") || !strings.Contains(out, "beta gamma") {
		t.Errorf("search output:\n%s", out)
	}

	out, err = runCmd(t, noteSearchCmd, "delta")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, `no notes contain "delta"`) {
		t.Errorf("search output = %q", out)
	}
}

func TestNoteFrontmatterCmd(t *testing.T) {
	root := useTestVault(t)
	setVar(t, &noteMode, "overwrite")
	if _, err := runCmd(t, noteWriteCmd, "draft", "---\ndraft: true\n---\nBody\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	setVar(t, &noteSets, []string{"status=active", "priority=2"})
	setVar(t, &noteDeletes, []string{"draft"})

	out, err := runCmd(t, noteFrontmatterCmd, "draft")
	if err != nil {
		t.Fatalf("frontmatter: %v", err)
	}
	if !strings.Contains(out, "status: active") {
		t.Errorf("output:\n%s", out)
	}

	got := readVaultFile(t, root, "draft.md")
	if !strings.HasPrefix(got, "---\n") || !strings.Contains(got, "status: active\n") || !strings.Contains(got, "priority: 2\n") {
		t.Errorf("file:\n%s", got)
	}
	if strings.Contains(got, "draft:") || !strings.HasSuffix(got, "---\nBody\n") {
		t.Errorf("file:\n%s", got)
	}
}

func TestFrontmatterOps(t *testing.T) {
	ops, err := frontmatterOps(
		[]string{"status=active", "count=3", "tags=[a, b]", "due=2025-11-01", "empty="},
		[]string{" draft "},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.FrontmatterOp{
		{Op: "set", Key: "status", Value: "active"},
		{Op: "set", Key: "count", Value: 3},
		{Op: "set", Key: "tags", Value: []any{"a", "b"}},
		{Op: "set", Key: "due", Value: "2025-11-01"},
		{Op: "set", Key: "empty", Value: ""},
		{Op: "delete", Key: "draft"},
	}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("ops =\n%#v\nwant\n%#v", ops, want)
	}
}

func TestFrontmatterOps_Errors(t *testing.T) {
	tests := []struct {
		name    string
		sets    []string
		deletes []string
	}{
		{"missing equals", []string{"status"}, nil},
		{"empty key", []string{"=value"}, nil},
		{"bad yaml", []string{"tags=[a, b"}, nil},
		{"nothing to do", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := frontmatterOps(tt.sets, tt.deletes); err == nil {
				t.Error("expected error")
			}
		})
	}
}
