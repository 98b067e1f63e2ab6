// Package cli implements the brainhole command-line interface: a
// server entrypoint, an interactive chat shell, and one-shot commands
// for each dispatch operation.
package cli

import (
	"github.com/dax233/brainhole/internal/config"
	"github.com/dax233/brainhole/internal/dispatch"
	"github.com/dax233/brainhole/internal/importer"
	"github.com/dax233/brainhole/internal/lexicon"
	"github.com/dax233/brainhole/internal/repository"
	"github.com/spf13/cobra"
)

// App holds the wired services the CLI commands run against.
type App struct {
	Config   *config.Config
	Registry *lexicon.Registry
	Entries  repository.EntryRepo
	Router   *dispatch.Router
	Importer *importer.Service

	// Generator is nil when word generation is disabled in config.
	Generator dispatch.WordGenerator

	// IsInteractive reports whether stdin is a terminal; the chat
	// command falls back to a plain line loop when it is not.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "brainhole" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "brainhole",
		Short: "Lexicon chat dispatcher: random draws, search, template fill",
	}

	// Read by main before the command tree runs; declared here so cobra
	// accepts it and shows it in help.
	root.PersistentFlags().String("config", "", "Path to the config file (overrides BRAINHOLE_CONFIG)")

	root.AddCommand(
		newServeCmd(app),
		newChatCmd(app),
		newDispatchCmd(app),
		newSearchCmd(app),
		newFillCmd(app),
		newRandomCmd(app),
		newLexiconsCmd(app),
		newImportCmd(app),
		newGenerateCmd(app),
	)

	return root
}
