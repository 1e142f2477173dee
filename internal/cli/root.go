package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"todo-cli/internal/api"
	"todo-cli/internal/config"
	"todo-cli/internal/format"
	"todo-cli/internal/todo"
	"todo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL   string
	Timeout  time.Duration
	DebugLog string
	Format   string
	Pretty   bool

	cfg     *config.Config
	log     *slog.Logger
	closers []io.Closer
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Terminal todo client for a Task Store API",
		SilenceUsage:  true,
		SilenceErrors: true, // commands report failures through writeErr
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  todo

  # Scriptable commands
  todo list --format text
  todo add Buy milk
  todo toggle 3

  # Run the reference Task Store locally
  todo serve --dsn todo.db
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.resolve(); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return writeErr(cmd, err)
	})

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", envOr("TODO_API_URL", ""), "Task Store base URL (default "+api.DefaultBaseURL+")")
	cmd.PersistentFlags().DurationVar(&app.Timeout, "timeout", envDuration("TODO_TIMEOUT"), "Per-request timeout (default 10s)")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("TODO_DEBUG_LOG", ""), "Append request logs to this file")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TODO_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVar(&app.Pretty, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newClearCompletedCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	closeAfterRun(cmd, app)
	return cmd
}

// closeAfterRun closes what resolve opened once a command's RunE returns. cobra skips
// PersistentPostRunE when RunE fails, so the close has to live in RunE itself.
func closeAfterRun(cmd *cobra.Command, app *App) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			defer app.close()
			return run(cmd, args)
		}
	}
	for _, c := range cmd.Commands() {
		closeAfterRun(c, app)
	}
}

// resolve fills unset settings from config.json and then built-in defaults, so the order is
// flag > env > config > default.
func (app *App) resolve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app.cfg = cfg

	if strings.TrimSpace(app.APIURL) == "" {
		app.APIURL = cfg.APIURL
	}
	if strings.TrimSpace(app.APIURL) == "" {
		app.APIURL = api.DefaultBaseURL
	}
	if app.Timeout <= 0 {
		app.Timeout = cfg.TimeoutDuration()
	}
	if app.Timeout <= 0 {
		app.Timeout = api.DefaultTimeout
	}
	if strings.TrimSpace(app.DebugLog) == "" {
		app.DebugLog = cfg.DebugLog
	}

	switch app.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown format: %s (want json or text)", app.Format)
	}

	app.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	if path := strings.TrimSpace(app.DebugLog); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		app.closers = append(app.closers, f)
		app.log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return nil
}

func (app *App) close() {
	for _, c := range app.closers {
		_ = c.Close()
	}
	app.closers = nil
}

func (app *App) newAPIClient() (*api.Client, error) {
	return api.New(api.Options{BaseURL: app.APIURL, Timeout: app.Timeout, Logger: app.log})
}

func (app *App) newTodoClient() (*todo.Client, *api.Client, error) {
	ac, err := app.newAPIClient()
	if err != nil {
		return nil, nil, err
	}
	return todo.New(ac), ac, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	client, ac, err := app.newTodoClient()
	if err != nil {
		return writeErr(cmd, err)
	}
	if app.cfg != nil && app.cfg.Theme != "" && os.Getenv("TODO_TUI_THEME") == "" {
		_ = os.Setenv("TODO_TUI_THEME", app.cfg.Theme)
	}
	if err := tui.Run(cmd.Context(), client, tui.Options{APIURL: ac.BaseURL(), Logger: app.log}); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envDuration parses k as a duration; unset or invalid values yield 0 (resolved later).
func envDuration(k string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return 0
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.Pretty)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return printedError{err: err}
}
