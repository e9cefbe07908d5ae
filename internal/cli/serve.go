package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shopsphere/internal/store"
	syncmode "shopsphere/internal/sync"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sync server (per-user document store + live channel)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(dbPath) == "" {
				dir := strings.TrimSpace(app.Dir)
				if dir == "" {
					d, err := store.DefaultDir()
					if err != nil {
						return writeErr(cmd, err)
					}
					dir = d
				}
				dbPath = filepath.Join(dir, "sync.sqlite")
			}

			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return writeErr(cmd, err)
			}
			docs, err := store.OpenDocStore(context.Background(), dbPath)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer docs.Close()

			srv, err := syncmode.NewServer(syncmode.ServerConfig{Addr: addr, Docs: docs})
			if err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sync server listening on %s (db: %s)\n", srv.Addr(), dbPath)
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8377", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite path (default: <dir>/sync.sqlite)")
	return cmd
}
