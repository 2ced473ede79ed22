package core

import "errors"

// Sentinel errors returned by the journal and note engines. Callers match
// them with errors.Is; the tool boundary maps them to machine error codes.
var (
	ErrNoVaultRoot      = errors.New("no vault root configured")
	ErrValidation       = errors.New("validation failed")
	ErrNoTasksSection   = errors.New("no tasks section")
	ErrTaskNotFound     = errors.New("task not found")
	ErrParentNotFound   = errors.New("parent task not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrPathOutsideVault = errors.New("path is outside the vault")
)
