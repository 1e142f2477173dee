package tui

import (
	"fmt"
	"io"
	"strings"

	"todo-cli/internal/format"
	"todo-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// taskRow is one rendered task.
type taskRow struct {
	task     model.Task
	removing bool
}

func (r taskRow) FilterValue() string { return r.task.Text }

type taskDelegate struct{}

func newTaskDelegate() taskDelegate { return taskDelegate{} }

func (d taskDelegate) Height() int                             { return 1 }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(taskRow)
	if !ok {
		return
	}
	fmt.Fprint(w, renderRow(row, m.Width(), index == m.Index()))
}

// renderRow draws "[x] text" padded or cut to width. Task text is sanitized first so it is
// always printed as plain text.
func renderRow(row taskRow, width int, selected bool) string {
	if width < 8 {
		width = 8
	}
	box := "[ ]"
	if row.task.Completed {
		box = "[x]"
	}
	text := format.Sanitize(row.task.Text)

	textStyle := lipgloss.NewStyle()
	if row.task.Completed {
		textStyle = styleMuted().Strikethrough(true)
	}
	suffix := ""
	if row.removing {
		textStyle = styleMuted().Faint(true).Strikethrough(true)
		suffix = " " + styleMuted().Render("deleting"+glyphEllipsis())
	}

	cursor := "  "
	if selected {
		cursor = styleAccent().Render(glyphCursor())
	}

	budget := width - xansi.StringWidth(cursor) - len(box) - 1 - xansi.StringWidth(suffix)
	if budget < 1 {
		budget = 1
	}
	if xansi.StringWidth(text) > budget {
		text = xansi.Truncate(text, budget, glyphEllipsis())
	}

	line := cursor + box + " " + textStyle.Render(text) + suffix
	if lw := xansi.StringWidth(line); lw < width {
		line += strings.Repeat(" ", width-lw)
	}
	if selected {
		return styleSelected().Render(line)
	}
	return line
}
