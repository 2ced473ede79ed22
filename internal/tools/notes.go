package tools

import (
	"fmt"
	"strings"

	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// ListNotesInput holds the arguments of list_notes.
type ListNotesInput struct {
	Folder    string `json:"folder,omitempty" jsonschema:"folder relative to the vault root; empty lists the whole vault"`
	Recursive bool   `json:"recursive,omitempty" jsonschema:"include notes in subfolders"`
}

// ReadNoteInput holds the arguments of read_note.
type ReadNoteInput struct {
	Path string `json:"path" jsonschema:"note path relative to the vault root; .md is added when there is no extension"`
}

// WriteNoteInput holds the arguments of write_note.
type WriteNoteInput struct {
	Path    string `json:"path" jsonschema:"note path relative to the vault root"`
	Content string `json:"content" jsonschema:"text to write"`
	Mode    string `json:"mode,omitempty" jsonschema:"overwrite (default), append or prepend"`
}

// SearchNotesInput holds the arguments of search_notes.
type SearchNotesInput struct {
	Query      string `json:"query" jsonschema:"case-insensitive text to look for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of matching lines (default 50)"`
}

// UpdateFrontmatterInput holds the arguments of update_frontmatter.
type UpdateFrontmatterInput struct {
	Path       string                 `json:"path" jsonschema:"note path relative to the vault root"`
	Operations []models.FrontmatterOp `json:"operations" jsonschema:"set or delete operations applied in order"`
}

// NoteContent is the data of read_note.
type NoteContent struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ListNotes lists markdown notes in a folder.
func (t *Toolset) ListNotes(in ListNotesInput) models.ToolResult {
	notes, err := t.notes.ListNotes(t.vault, in.Folder, in.Recursive)
	if err != nil {
		return fail(err)
	}
	return models.OK(fmt.Sprintf("found %d note(s)", len(notes)), notes)
}

// ReadNote returns a note's content.
func (t *Toolset) ReadNote(in ReadNoteInput) models.ToolResult {
	if strings.TrimSpace(in.Path) == "" {
		return invalid("path is required")
	}
	content, err := t.notes.ReadNote(t.vault, in.Path)
	if err != nil {
		return fail(err)
	}
	return models.OK(fmt.Sprintf("read %s", in.Path), NoteContent{Path: in.Path, Content: content})
}

// WriteNote creates, overwrites, appends to or prepends to a note.
func (t *Toolset) WriteNote(in WriteNoteInput) models.ToolResult {
	if strings.TrimSpace(in.Path) == "" {
		return invalid("path is required")
	}
	mode := models.WriteMode(strings.ToLower(strings.TrimSpace(in.Mode)))
	switch mode {
	case "", models.WriteOverwrite, models.WriteAppend, models.WritePrepend:
	default:
		return invalid(fmt.Sprintf("invalid mode %q: must be overwrite, append or prepend", in.Mode))
	}
	rel, err := t.notes.WriteNote(t.vault, in.Path, in.Content, mode)
	if err != nil {
		return fail(err)
	}
	if mode == "" {
		mode = models.WriteOverwrite
	}
	return models.OK(fmt.Sprintf("wrote %s (%s)", rel, mode), map[string]string{"path": rel, "mode": string(mode)})
}

// SearchNotes finds lines containing the query across the vault.
func (t *Toolset) SearchNotes(in SearchNotesInput) models.ToolResult {
	if strings.TrimSpace(in.Query) == "" {
		return invalid("query is required")
	}
	if in.MaxResults < 0 {
		return invalid("max_results must not be negative")
	}
	hits, err := t.notes.SearchNotes(t.vault, in.Query, in.MaxResults)
	if err != nil {
		return fail(err)
	}
	if len(hits) == 0 {
		return models.OK(fmt.Sprintf("no notes contain %q", in.Query), hits)
	}
	return models.OK(fmt.Sprintf("found %d match(es) for %q", len(hits), in.Query), hits)
}

// UpdateFrontmatter applies set and delete operations to a note's frontmatter.
func (t *Toolset) UpdateFrontmatter(in UpdateFrontmatterInput) models.ToolResult {
	if strings.TrimSpace(in.Path) == "" {
		return invalid("path is required")
	}
	if len(in.Operations) == 0 {
		return invalid("at least one operation is required")
	}
	for i, op := range in.Operations {
		if strings.TrimSpace(op.Key) == "" {
			return invalid(fmt.Sprintf("operations[%d]: key is required", i))
		}
		switch op.Op {
		case "set":
			if op.Value == nil {
				return invalid(fmt.Sprintf("operations[%d]: set %q needs a value", i, op.Key))
			}
		case "delete":
		default:
			return invalid(fmt.Sprintf("operations[%d]: unknown op %q", i, op.Op))
		}
	}
	fields, err := t.notes.UpdateFrontmatter(t.vault, in.Path, in.Operations)
	if err != nil {
		return fail(err)
	}
	return models.OK(fmt.Sprintf("updated frontmatter of %s", in.Path), fields)
}
