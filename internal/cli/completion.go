package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
)

var completionInstall bool

var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Set up shell completions for vb",
	Long: `Set up shell tab-completions for vb commands, flags, and arguments.

Supported shells: bash, zsh, fish, powershell

Quick install (adds completions to your shell profile):

  vb completion bash --install
  vb completion zsh --install
  vb completion fish --install

Or print the completion script to stdout (for manual setup):

  vb completion bash
  vb completion zsh
  vb completion fish
  vb completion powershell`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MaximumNArgs(1),
	RunE:      runCompletion,
}

func init() {
	completionCmd.Flags().BoolVar(&completionInstall, "install", false,
		"Install completions into your shell profile")

	// Remove Cobra's default completion command and add ours.
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	shell := args[0]

	if completionInstall {
		return installCompletion(cmd, shell)
	}

	// Print script to stdout; usage hints go to stderr so they don't
	// interfere with piping (e.g., eval "$(vb completion bash)").
	switch shell {
	case "bash":
		printHints(cmd,
			"# To load completions in your current session:",
			`#   eval "$(vb completion bash)"`,
			"#",
			"# To install permanently:",
			"#   vb completion bash --install",
			"#",
		)
		return rootCmd.GenBashCompletionV2(cmd.OutOrStdout(), true)
	case "zsh":
		printHints(cmd,
			"# To load completions in your current session:",
			`#   eval "$(vb completion zsh)"`,
			"#",
			"# To install permanently:",
			"#   vb completion zsh --install",
			"#",
		)
		return rootCmd.GenZshCompletion(cmd.OutOrStdout())
	case "fish":
		printHints(cmd,
			"# To load completions in your current session:",
			"#   vb completion fish | source",
			"#",
			"# To install permanently:",
			"#   vb completion fish --install",
			"#",
		)
		return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
	case "powershell":
		printHints(cmd,
			"# To load completions in your current session:",
			"#   vb completion powershell | Out-String | Invoke-Expression",
			"#",
			"# Permanent install is not supported with --install for PowerShell.",
			"# Add the above command to your PowerShell profile manually.",
			"#",
		)
		return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, fish, powershell)", shell)
	}
}

// printHints writes usage hints to stderr so they don't interfere with
// piping the completion script from stdout.
func printHints(cmd *cobra.Command, lines ...string) {
	w := cmd.OutOrStderr()
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
}

// completionTarget describes where a shell looks for user-level completion
// scripts and how to generate one.
type completionTarget struct {
	dir   func(home string) string
	file  string
	gen   func(w io.Writer) error
	hints []string
}

var completionTargets = map[string]completionTarget{
	"bash": {
		dir: func(home string) string {
			return filepath.Join(home, ".local", "share", "bash-completion", "completions")
		},
		file:  "vb",
		gen:   func(w io.Writer) error { return rootCmd.GenBashCompletionV2(w, true) },
		hints: []string{"Restart your shell or source the file above."},
	},
	"zsh": {
		dir:  func(home string) string { return filepath.Join(home, ".local", "share", "zsh", "site-functions") },
		file: "_vb",
		gen:  func(w io.Writer) error { return rootCmd.GenZshCompletion(w) },
		hints: []string{
			"Ensure this directory is in your fpath. Add to ~/.zshrc if needed:",
			"  autoload -Uz compinit && compinit",
		},
	},
	"fish": {
		dir:   func(home string) string { return filepath.Join(home, ".config", "fish", "completions") },
		file:  "vb.fish",
		gen:   func(w io.Writer) error { return rootCmd.GenFishCompletion(w, true) },
		hints: []string{"Completions will be available in new fish sessions automatically."},
	},
}

func installCompletion(cmd *cobra.Command, shell string) error {
	if shell == "powershell" {
		return fmt.Errorf("automatic install is not supported for PowerShell; run 'vb completion powershell' and add the output to your profile")
	}
	target, ok := completionTargets[shell]
	if !ok {
		return fmt.Errorf("unsupported shell %q", shell)
	}

	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("detecting home directory: %w", err)
	}
	dir := target.dir(home)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating completion directory: %w", err)
	}
	path := filepath.Join(dir, target.file)
	if err := writeCompletionFile(path, target.gen); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s completions installed to %s\n", shell, path)
	for _, h := range target.hints {
		fmt.Fprintln(out, h)
	}
	return nil
}

// writeCompletionFile creates path and lets gen write the script into it.
// Close errors are reported.
func writeCompletionFile(path string, gen func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating completion file %s: %w", path, err)
	}
	writeErr := gen(f)
	closeErr := f.Close()
	if writeErr != nil {
		return writeErr
	}
	if closeErr != nil {
		return fmt.Errorf("closing completion file %s: %w", path, closeErr)
	}
	return nil
}
