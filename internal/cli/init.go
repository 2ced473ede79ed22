package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/vault-brain/internal/core"
	"github.com/valter-silva-au/vault-brain/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a vault for vb",
	Long: `Initialize a new or existing markdown vault.

Writes a .vbconfig with default settings, creates the journal folder, and
adds a weekly journal template to the templates folder.

Safe to run on existing vaults -- files that already exist are skipped and
not overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basePath := VaultRoot
		if len(args) > 0 {
			basePath = args[0]
		}
		if basePath == "" {
			basePath = "."
		}
		absPath, err := filepath.Abs(basePath)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		var created, skipped []string
		record := func(path string, isNew bool) {
			rel, _ := filepath.Rel(absPath, path)
			if isNew {
				created = append(created, rel)
			} else {
				skipped = append(skipped, rel)
			}
		}

		cfgMgr := core.NewConfigurationManager(absPath)
		cfgPath, isNew, err := cfgMgr.InitConfig()
		if err != nil {
			return fmt.Errorf("initializing vault: %w", err)
		}
		record(cfgPath, isNew)

		cfg, err := cfgMgr.LoadGlobalConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		vc := cfg.VaultContext(absPath)
		fs := storage.NewFileSystem()

		journalDir := filepath.Join(absPath, vc.JournalPath)
		_, statErr := os.Stat(journalDir)
		if err := fs.EnsureDir(journalDir); err != nil {
			return fmt.Errorf("creating journal folder: %w", err)
		}
		record(journalDir, os.IsNotExist(statErr))

		tmplPath := filepath.Join(absPath, vc.TemplatesFolderName, vc.JournalTemplateName+".md")
		exists, err := fs.Exists(tmplPath)
		if err != nil {
			return fmt.Errorf("checking template: %w", err)
		}
		if !exists {
			if err := fs.WriteFile(tmplPath, core.SampleWeeklyTemplate); err != nil {
				return fmt.Errorf("writing template: %w", err)
			}
		}
		record(tmplPath, !exists)

		out := cmd.OutOrStdout()
		if len(created) > 0 {
			fmt.Fprintln(out, "Created:")
			for _, p := range created {
				fmt.Fprintf(out, "  %s\n", p)
			}
		}
		if len(skipped) > 0 {
			fmt.Fprintln(out, "Skipped (already exist):")
			for _, p := range skipped {
				fmt.Fprintf(out, "  %s\n", p)
			}
		}

		fmt.Fprintf(out, "\nVault initialized at %s\n", absPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
