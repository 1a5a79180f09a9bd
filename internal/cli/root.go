// Package cli wires the command-line surface: the interactive TUI by
// default, the API server behind `inkwell serve`, and a couple of
// scriptable read commands.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"inkwell/internal/client"
	"inkwell/internal/config"
	"inkwell/internal/tui"
)

// App carries the persistent flag state shared by all commands.
type App struct {
	ServerURL string
	Author    string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "inkwell",
		Short:        "Inkwell blog client + server",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  inkwell

  # Run the API server
  inkwell serve

  # Scriptable commands
  inkwell list
  inkwell show <id>
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", "", "API server base URL (default: $INKWELL_SERVER_URL or http://localhost:8000)")
	cmd.PersistentFlags().StringVar(&app.Author, "author", "", "Author name to pre-fill on new posts (default: $INKWELL_AUTHOR)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))

	return cmd
}

// apiClient resolves flags over environment and returns the client plus
// the effective author name.
func apiClient(app *App) (*client.Client, string, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, "", err
	}
	url := app.ServerURL
	if url == "" {
		url = cfg.ServerURL
	}
	author := app.Author
	if author == "" {
		author = cfg.AuthorName
	}
	return client.New(url), author, nil
}

func runTUI(app *App) error {
	api, author, err := apiClient(app)
	if err != nil {
		return err
	}
	return tui.Run(api, author)
}
