package cli

import (
	"fmt"
	"os"
	"strings"

	"shopsphere/internal/format"
	"shopsphere/internal/session"
	"shopsphere/internal/store"
	syncmode "shopsphere/internal/sync"
	"shopsphere/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Remote     string
	User       string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "shopsphere",
		Short:        "Shopping lists (local-first, optional sync) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  shopsphere

  # Scriptable commands
  shopsphere shops list
  shopsphere items add --shop shop-abc123 --list oneOff "Milk"

  # Direct shop lookup (shortcut for: shopsphere shops show <shop-id>)
  shopsphere shop-abc123

  # Run the sync server and point a second device at it
  shopsphere serve --addr :8377
  shopsphere --remote ws://host:8377 --user alice
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("SHOPSPHERE_DIR", ""), "Path to local data dir (default: discovered .shopsphere)")
	cmd.PersistentFlags().StringVar(&app.Remote, "remote", envOr("SHOPSPHERE_REMOTE", ""), "Sync server URL; switches persistence to remote mode")
	cmd.PersistentFlags().StringVar(&app.User, "user", envOr("SHOPSPHERE_USER", ""), "Identity for remote mode (opaque token)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newShopsCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// newAdapter resolves the persistence mode: remote when --remote is set,
// else the local JSON file under the data dir.
func newAdapter(app *App) (store.Adapter, error) {
	if strings.TrimSpace(app.Remote) != "" {
		if strings.TrimSpace(app.User) == "" {
			return nil, fmt.Errorf("remote mode needs --user")
		}
		return &syncmode.Client{BaseURL: app.Remote}, nil
	}
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return store.Local{Dir: dir}, nil
}

// openSession builds and starts a session for one CLI invocation.
func openSession(app *App) (*session.Session, error) {
	adapter, err := newAdapter(app)
	if err != nil {
		return nil, err
	}
	s := session.New(adapter, strings.TrimSpace(app.User))
	s.Start()
	return s, nil
}

func runTUI(app *App) error {
	s, err := openSession(app)
	if err != nil {
		return err
	}
	defer s.Close()
	return tui.Run(s)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
