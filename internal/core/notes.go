package core

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/valter-silva-au/vault-brain/internal/storage"
	"github.com/valter-silva-au/vault-brain/pkg/models"
	"gopkg.in/yaml.v3"
)

// DefaultMaxSearchResults caps SearchNotes when the caller gives no limit.
const DefaultMaxSearchResults = 50

// NoteManager reads and edits arbitrary markdown notes inside the vault.
// Every path is relative to the vault root and must stay inside it.
type NoteManager interface {
	ListNotes(vc models.VaultContext, folder string, recursive bool) ([]models.NoteInfo, error)
	ReadNote(vc models.VaultContext, path string) (string, error)
	WriteNote(vc models.VaultContext, path, content string, mode models.WriteMode) (string, error)
	SearchNotes(vc models.VaultContext, query string, maxResults int) ([]models.SearchHit, error)
	UpdateFrontmatter(vc models.VaultContext, path string, ops []models.FrontmatterOp) (map[string]any, error)
}

type noteManager struct {
	fs     storage.FileSystem
	locker Locker
	events EventLogger
}

// NewNoteManager creates a NoteManager. locker and events may be nil.
func NewNoteManager(fs storage.FileSystem, locker Locker, events EventLogger) NoteManager {
	if locker == nil {
		locker = NewNoopLocker()
	}
	return &noteManager{fs: fs, locker: locker, events: events}
}

// ResolveVaultPath joins rel onto the vault root and rejects results that
// escape it. Paths without an extension get ".md".
func ResolveVaultPath(vc models.VaultContext, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", fmt.Errorf("path is required: %w", ErrValidation)
	}
	if filepath.Ext(rel) == "" {
		rel += ".md"
	}
	return resolveInside(vc, rel)
}

// resolveInside resolves rel (relative or absolute) and checks that it lies
// under the vault root.
func resolveInside(vc models.VaultContext, rel string) (string, error) {
	if strings.TrimSpace(vc.VaultRoot) == "" {
		return "", ErrNoVaultRoot
	}
	root, err := filepath.Abs(vc.VaultRoot)
	if err != nil {
		return "", fmt.Errorf("resolving vault root: %w", err)
	}
	full := filepath.Join(root, rel)
	if filepath.IsAbs(rel) {
		full = filepath.Clean(rel)
	}
	inside, err := filepath.Rel(root, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", rel, ErrPathOutsideVault)
	}
	return full, nil
}

func (n *noteManager) relPath(vc models.VaultContext, full string) string {
	root, err := filepath.Abs(vc.VaultRoot)
	if err != nil {
		return full
	}
	rel, err := filepath.Rel(root, full)
	if err != nil {
		return full
	}
	return filepath.ToSlash(rel)
}

func (n *noteManager) ListNotes(vc models.VaultContext, folder string, recursive bool) ([]models.NoteInfo, error) {
	base, err := resolveInside(vc, strings.TrimSpace(folder))
	if err != nil {
		return nil, err
	}

	paths, err := n.fs.WalkMarkdown(base)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	notes := make([]models.NoteInfo, 0, len(paths))
	for _, p := range paths {
		if !recursive && filepath.Dir(p) != base {
			continue
		}
		mod, err := n.fs.ModTime(p)
		if err != nil {
			return nil, fmt.Errorf("listing notes: %w", err)
		}
		notes = append(notes, models.NoteInfo{Path: n.relPath(vc, p), Modified: mod})
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Path < notes[j].Path })
	return notes, nil
}

func (n *noteManager) ReadNote(vc models.VaultContext, path string) (string, error) {
	full, err := ResolveVaultPath(vc, path)
	if err != nil {
		return "", err
	}
	content, err := n.fs.ReadFile(full)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, ErrNoteNotFound)
		}
		return "", err
	}
	return content, nil
}

func (n *noteManager) WriteNote(vc models.VaultContext, path, content string, mode models.WriteMode) (string, error) {
	if mode == "" {
		mode = models.WriteOverwrite
	}
	switch mode {
	case models.WriteOverwrite, models.WriteAppend, models.WritePrepend:
	default:
		return "", fmt.Errorf("unknown write mode %q: %w", mode, ErrValidation)
	}
	full, err := ResolveVaultPath(vc, path)
	if err != nil {
		return "", err
	}

	err = n.withLock(full, func() error {
		next := content
		if mode != models.WriteOverwrite {
			existing, err := n.fs.ReadFile(full)
			if err != nil && !errors.Is(err, storage.ErrNotExist) {
				return err
			}
			next = combineNote(existing, content, mode)
		}
		return n.fs.WriteFile(full, next)
	})
	if err != nil {
		return "", fmt.Errorf("writing note: %w", err)
	}

	rel := n.relPath(vc, full)
	n.logEvent("note.written", map[string]any{"path": rel, "mode": string(mode)})
	return rel, nil
}

// combineNote joins existing and added text on a line boundary. Prepending
// keeps frontmatter at the top of the note.
func combineNote(existing, added string, mode models.WriteMode) string {
	if existing == "" {
		return added
	}
	if mode == models.WriteAppend {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + added
	}
	if !strings.HasSuffix(added, "\n") {
		added += "\n"
	}
	front, body, ok := splitFrontmatter(existing)
	if !ok {
		return added + existing
	}
	return front + added + body
}

func (n *noteManager) SearchNotes(vc models.VaultContext, query string, maxResults int) ([]models.SearchHit, error) {
	root, err := resolveInside(vc, "")
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, fmt.Errorf("search query is required: %w", ErrValidation)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxSearchResults
	}

	paths, err := n.fs.WalkMarkdown(root)
	if err != nil {
		return nil, fmt.Errorf("searching notes: %w", err)
	}
	sort.Strings(paths)
	hits := []models.SearchHit{}
	for _, p := range paths {
		content, err := n.fs.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("searching notes: %w", err)
		}
		for i, line := range SplitLines(content) {
			if !strings.Contains(strings.ToLower(line), q) {
				continue
			}
			hits = append(hits, models.SearchHit{Path: n.relPath(vc, p), Line: i + 1, Text: line})
			if len(hits) >= maxResults {
				return hits, nil
			}
		}
	}
	return hits, nil
}

func (n *noteManager) UpdateFrontmatter(vc models.VaultContext, path string, ops []models.FrontmatterOp) (map[string]any, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("at least one operation is required: %w", ErrValidation)
	}
	for i, op := range ops {
		if err := validateFrontmatterOp(op); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
	}
	full, err := ResolveVaultPath(vc, path)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	err = n.withLock(full, func() error {
		content, err := n.fs.ReadFile(full)
		if err != nil {
			if errors.Is(err, storage.ErrNotExist) {
				return fmt.Errorf("%s: %w", path, ErrNoteNotFound)
			}
			return err
		}
		updated, fields, err := applyFrontmatterOps(content, ops)
		if err != nil {
			return err
		}
		result = fields
		return n.fs.WriteFile(full, updated)
	})
	if err != nil {
		return nil, fmt.Errorf("updating frontmatter: %w", err)
	}

	n.logEvent("note.written", map[string]any{"path": n.relPath(vc, full), "mode": "frontmatter", "ops": len(ops)})
	return result, nil
}

func validateFrontmatterOp(op models.FrontmatterOp) error {
	if strings.TrimSpace(op.Key) == "" {
		return fmt.Errorf("key is required: %w", ErrValidation)
	}
	switch op.Op {
	case "set":
		if op.Value == nil {
			return fmt.Errorf("set %q requires a value: %w", op.Key, ErrValidation)
		}
	case "delete":
	default:
		return fmt.Errorf("unknown operation %q: %w", op.Op, ErrValidation)
	}
	return nil
}

// splitFrontmatter separates a leading "---" block (delimiters included)
// from the rest of the note.
func splitFrontmatter(content string) (front, body string, ok bool) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return "", content, false
	}
	lines := strings.SplitAfter(normalized, "\n")
	offset := len(lines[0])
	for _, line := range lines[1:] {
		offset += len(line)
		if strings.TrimRight(line, " \t\n") == "---" {
			return normalized[:offset], normalized[offset:], true
		}
	}
	return "", content, false
}

// applyFrontmatterOps applies ops in order to the note's frontmatter and
// returns the rewritten note together with the resulting fields.
func applyFrontmatterOps(content string, ops []models.FrontmatterOp) (string, map[string]any, error) {
	front, body, ok := splitFrontmatter(content)

	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if ok {
		inner := strings.TrimPrefix(front, "---\n")
		inner = inner[:strings.LastIndex(inner, "---")]
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(inner), &doc); err != nil {
			return "", nil, fmt.Errorf("parsing frontmatter: %w", err)
		}
		if len(doc.Content) > 0 {
			if doc.Content[0].Kind != yaml.MappingNode {
				return "", nil, fmt.Errorf("frontmatter is not a mapping: %w", ErrValidation)
			}
			mapping = doc.Content[0]
		}
	}

	for _, op := range ops {
		idx := -1
		for i := 0; i+1 < len(mapping.Content); i += 2 {
			if mapping.Content[i].Value == op.Key {
				idx = i
				break
			}
		}
		switch op.Op {
		case "set":
			var value yaml.Node
			if err := value.Encode(op.Value); err != nil {
				return "", nil, fmt.Errorf("encoding %q: %w", op.Key, err)
			}
			if idx >= 0 {
				mapping.Content[idx+1] = &value
			} else {
				key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: op.Key}
				mapping.Content = append(mapping.Content, key, &value)
			}
		case "delete":
			if idx >= 0 {
				mapping.Content = append(mapping.Content[:idx], mapping.Content[idx+2:]...)
			}
		}
	}

	fields := map[string]any{}
	if err := mapping.Decode(&fields); err != nil {
		return "", nil, fmt.Errorf("decoding frontmatter: %w", err)
	}

	if len(mapping.Content) == 0 {
		return strings.TrimLeft(body, "\n"), fields, nil
	}
	out, err := yaml.Marshal(mapping)
	if err != nil {
		return "", nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	if !ok {
		body = content
	}
	return "---\n" + string(out) + "---\n" + body, fields, nil
}

func (n *noteManager) withLock(path string, fn func() error) error {
	unlock, err := n.locker.Lock(path)
	if err != nil {
		return fmt.Errorf("locking %s: %w", path, err)
	}
	defer func() { _ = unlock() }()
	return fn()
}

func (n *noteManager) logEvent(eventType string, data map[string]any) {
	if n.events == nil {
		return
	}
	_ = n.events.LogEvent(eventType, data) // Non-fatal.
}
