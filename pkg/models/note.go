package models

import "time"

// WriteMode selects how WriteNote combines new content with an existing note.
type WriteMode string

const (
	WriteOverwrite WriteMode = "overwrite"
	WriteAppend    WriteMode = "append"
	WritePrepend   WriteMode = "prepend"
)

// NoteInfo is a note listed from the vault.
type NoteInfo struct {
	Path     string    `json:"path"`
	Modified time.Time `json:"modified"`
}

// SearchHit is one matching line in a note.
type SearchHit struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// FrontmatterOp is a single set or delete applied to a note's YAML frontmatter.
type FrontmatterOp struct {
	Op    string `json:"op" yaml:"op"` // "set" or "delete"
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}
