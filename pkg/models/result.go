package models

// ToolResult is the envelope every tool operation returns. Failures are
// reported through Success=false with a human-readable Message and a machine
// Error code; nothing escapes the tool boundary as a Go error.
type ToolResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK builds a successful result.
func OK(message string, data any) ToolResult {
	return ToolResult{Success: true, Message: message, Data: data}
}

// Fail builds a failed result.
func Fail(message, code string) ToolResult {
	return ToolResult{Success: false, Message: message, Error: code}
}
