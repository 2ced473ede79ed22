package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/pkg/models"
)

// outputJSON prints the full tool envelope instead of the message.
var outputJSON bool

var (
	taskOpenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	taskDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Strikethrough(true)
	summaryStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// errToolFailed marks errors whose message was already reported by a tool.
var errToolFailed = errors.New("tool failed")

// requireTools fails when the app wiring has not run.
func requireTools() error {
	if Tools == nil {
		return fmt.Errorf("vault tools not initialized")
	}
	return nil
}

// printResult writes a tool result and converts failures into an error.
// render formats successful data; nil prints the message.
func printResult(cmd *cobra.Command, res models.ToolResult, render func(models.ToolResult) string) error {
	out := cmd.OutOrStdout()
	if outputJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("formatting result as JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else if res.Success {
		text := res.Message
		if render != nil {
			text = render(res)
		}
		fmt.Fprintln(out, text)
	}
	if !res.Success {
		return fmt.Errorf("%s (%s): %w", res.Message, res.Error, errToolFailed)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Print the raw tool result as JSON")
}
