package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"todo-cli/internal/todo"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	// APIURL is shown in the header so it is obvious which store is being edited.
	APIURL string
	// Logger receives request/notice logs. The TUI owns the terminal, so callers should point it
	// at a file (or leave nil to discard).
	Logger *slog.Logger
}

// Run starts the interactive program. The caller owns client and keeps it for the program's
// lifetime; cancelling ctx stops the program and any in-flight requests.
func Run(ctx context.Context, client *todo.Client, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference()

	m := newAppModel(ctx, client, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
