// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the vault tools to AI chat agents over stdio.
package mcp

import (
	"context"
	"encoding/json"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/valter-silva-au/vault-brain/internal/tools"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// Server wraps a Toolset and exposes each operation as an MCP tool.
type Server struct {
	server *gomcp.Server
	tools  *tools.Toolset
}

// NewServer creates a new MCP server over the given toolset.
func NewServer(ts *tools.Toolset, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{tools: ts}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "vb", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool registration ---

func (s *Server) registerTools() {
	addTool(s.server, "add_journal_entry",
		"Add a timestamped entry to the weekly journal under the day's heading. Creates the week file from the vault template when missing.",
		s.tools.AddJournalEntry)
	addTool(s.server, "read_journal_entries",
		"List journal files overlapping a date range, newest first, optionally with their content.",
		s.tools.ReadJournalEntries)
	addTool(s.server, "add_journal_task",
		"Add a checkbox task to the week's task list, with optional subtasks or as a subtask of an existing task.",
		s.tools.AddJournalTask)
	addTool(s.server, "complete_journal_task",
		"Check off the task matching the description (exact match first, then substring). Completing a done task is a no-op.",
		s.tools.CompleteJournalTask)
	addTool(s.server, "read_journal_tasks",
		"Read the week's tasks with a completed/incomplete summary. Never creates the week file.",
		s.tools.ReadJournalTasks)
	addTool(s.server, "get_date_info",
		"Describe a date (ISO or relative such as 'last friday'): weekday, ISO week and week bounds.",
		s.tools.GetDateInfo)
	addTool(s.server, "get_week_dates",
		"List Monday through Sunday of the ISO week containing a date, with the week's journal file name.",
		s.tools.GetWeekDates)
	addTool(s.server, "list_notes",
		"List markdown notes in a vault folder.",
		s.tools.ListNotes)
	addTool(s.server, "read_note",
		"Read a note from the vault.",
		s.tools.ReadNote)
	addTool(s.server, "write_note",
		"Create or overwrite a note, or append/prepend text to it. Prepending keeps frontmatter first.",
		s.tools.WriteNote)
	addTool(s.server, "search_notes",
		"Case-insensitive text search over every note, returning matching lines.",
		s.tools.SearchNotes)
	addTool(s.server, "update_frontmatter",
		"Set or delete keys in a note's YAML frontmatter. Nothing is written if any operation is invalid.",
		s.tools.UpdateFrontmatter)
	addTool(s.server, "get_metrics",
		"Get journal activity metrics from the event log: entries, tasks added and completed, active days.",
		s.tools.GetMetrics)
	addTool(s.server, "get_alerts",
		"Evaluate and return active alerts (stale open tasks, too many open tasks, journal gaps).",
		s.tools.GetAlerts)
}

// addTool registers a toolset method. The ToolResult envelope is returned as
// the text content; failed results are flagged with IsError.
func addTool[In any](server *gomcp.Server, name, description string, op func(In) models.ToolResult) {
	gomcp.AddTool(server, &gomcp.Tool{Name: name, Description: description},
		func(_ context.Context, _ *gomcp.CallToolRequest, input In) (*gomcp.CallToolResult, any, error) {
			return envelopeResult(op(input)), nil, nil
		})
}

func envelopeResult(res models.ToolResult) *gomcp.CallToolResult {
	data, err := json.Marshal(res)
	if err != nil {
		return errorResult("encoding result: " + err.Error())
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: string(data)}},
		IsError: !res.Success,
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
