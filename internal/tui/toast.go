package tui

import (
	"todo-cli/internal/format"
	"todo-cli/internal/todo"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toast is the single notification slot. A new notice replaces the visible one; seq ties each
// dismiss tick to the toast that scheduled it.
type toast struct {
	text string
	kind todo.Kind
	seq  int
}

func (t toast) visible() bool { return t.text != "" }

func (m *appModel) notify(n todo.Notice) tea.Cmd {
	seq := m.toast.seq + 1
	m.toast = toast{text: n.Message, kind: n.Kind, seq: seq}
	return m.after(todo.NoticeDuration, toastDoneMsg{seq: seq})
}

func (t toast) view(width int) string {
	if !t.visible() {
		return ""
	}
	st := lipgloss.NewStyle().Padding(0, 1).Bold(true).MaxWidth(width)
	switch t.kind {
	case todo.KindError:
		st = st.Foreground(colorOnStatus).Background(colorError)
	case todo.KindWarning:
		st = st.Foreground(colorOnStatus).Background(colorWarning)
	default:
		st = st.Foreground(colorOnStatus).Background(colorSuccess)
	}
	return st.Render(format.Sanitize(t.text))
}
