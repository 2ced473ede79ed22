package main

import (
	"fmt"
	"os"

	app "github.com/valter-silva-au/vault-brain/internal"
	"github.com/valter-silva-au/vault-brain/internal/cli"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	vaultRoot := app.ResolveVaultRoot()

	a, err := app.NewApp(vaultRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing vb: %v\n", err)
		os.Exit(1)
	}

	err = cli.Execute()
	_ = a.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
