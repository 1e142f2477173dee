package cli

import (
	"log/slog"

	"todo-cli/internal/server"
	"todo-cli/internal/store"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr   string
		driver string
		dsn    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference Task Store API",
		Long: `Serve the Task Store API on --addr, backed by SQLite (default) or MySQL.

Examples:
  todo serve --dsn todo.db
  todo serve --driver mysql --dsn 'user:pass@tcp(127.0.0.1:3306)/todo'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

			st, err := store.Open(cmd.Context(), driver, dsn)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			log.Info("store ready", "driver", driver)
			h := server.New(st, log).Handler()
			if err := server.ListenAndServe(cmd.Context(), addr, h, log, nil); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("TODO_SERVE_ADDR", "127.0.0.1:5000"), "Listen address")
	cmd.Flags().StringVar(&driver, "driver", envOr("TODO_STORE_DRIVER", store.DriverSQLite), "Storage driver (sqlite|mysql)")
	cmd.Flags().StringVar(&dsn, "dsn", envOr("TODO_STORE_DSN", "todo.db"), "Storage DSN (sqlite file path or mysql DSN)")
	return cmd
}
