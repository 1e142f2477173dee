package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"todo-cli/internal/model"
	"todo-cli/internal/todo"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmRemove
	modalConfirmClearCompleted
	modalHelp
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// resultMsg carries a settled store request (or a due deferral) back into Update.
type resultMsg struct {
	result todo.Result
}

type toastDoneMsg struct{ seq int }

// afterFunc delivers msg once d has elapsed.
type afterFunc func(d time.Duration, msg tea.Msg) tea.Cmd

func tickAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

type appModel struct {
	ctx    context.Context
	client *todo.Client
	log    *slog.Logger
	after  afterFunc
	apiURL string

	width  int
	height int

	list    list.Model
	input   textinput.Model
	spinner spinner.Model
	focus   focusArea

	// rendered flips once the first successful settlement rebuilt the rows; until then the body
	// shows a loading placeholder.
	rendered       bool
	totalLabel     string
	completedLabel string

	toast toast

	modal        modalKind
	modalForID   model.TaskID
	modalCount   int
	confirmFocus confirmModalFocus

	// confirmQueue holds long completed tasks from a bulk clear still waiting for their own
	// remove prompt.
	confirmQueue []model.TaskID
}

const (
	minListH    = 3
	maxContentW = 96
	chromeLines = 9
)

func newAppModel(ctx context.Context, client *todo.Client, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}

	in := textinput.New()
	in.Placeholder = "What needs to be done?"
	in.Prompt = "> "
	in.Cursor.SetMode(cursor.CursorStatic)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	l := list.New([]list.Item{}, newTaskDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return appModel{
		ctx:     ctx,
		client:  client,
		log:     log,
		after:   tickAfter,
		apiURL:  strings.TrimSpace(opts.APIURL),
		list:    l,
		input:   in,
		spinner: sp,
		focus:   focusList,
	}
}

func (m appModel) Init() tea.Cmd {
	return m.run(m.client.Load())
}

// run turns a store request into a command. Requests only touch the store, so running them off
// the Update goroutine is safe; the result is settled back in Update.
func (m appModel) run(req todo.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return resultMsg{result: req(ctx)}
	}
}

// apply carries out what a settlement asked for.
func (m *appModel) apply(out todo.Outcome) tea.Cmd {
	var cmds []tea.Cmd
	if out.Render {
		m.render()
		m.updateStats()
	}
	if out.ResetInput {
		m.input.SetValue("")
		m.list.Select(0)
	}
	if out.FocusInput {
		m.focusInput()
	}
	if out.Notice != nil {
		cmds = append(cmds, m.notify(*out.Notice))
	}
	if out.After != nil {
		cmds = append(cmds, m.after(out.After.Delay, resultMsg{result: out.After.Result}))
	}
	return tea.Batch(cmds...)
}

// render rebuilds the rows from the client's current list. It depends on nothing but client
// state, so calling it twice in a row yields the same rows.
func (m *appModel) render() {
	tasks := m.client.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, taskRow{task: t, removing: m.client.Removing(t.ID)})
	}
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.rendered = true
}

func (m *appModel) updateStats() {
	s := m.client.Stats()
	m.totalLabel = s.TotalLabel()
	m.completedLabel = s.CompletedLabel()
}

func (m *appModel) focusInput() {
	m.focus = focusInput
	m.input.Focus()
}

func (m *appModel) blurInput() {
	m.focus = focusList
	m.input.Blur()
}

func (m appModel) selectedID() (model.TaskID, bool) {
	row, ok := m.list.SelectedItem().(taskRow)
	if !ok {
		return "", false
	}
	return row.task.ID, true
}

func (m *appModel) resize() {
	w := m.contentWidth()
	h := m.height - chromeLines
	if h < minListH {
		h = minListH
	}
	m.list.SetSize(w, h)
	// Prompt (2) + frame padding (2) + border (2) + submit label.
	iw := w - 6 - lipgloss.Width(submitLabelIdle) - 1
	if iw < 10 {
		iw = 10
	}
	m.input.Width = iw
}

func (m appModel) contentWidth() int {
	w := m.width - 2
	if w > maxContentW {
		w = maxContentW
	}
	if w < 30 {
		w = 30
	}
	return w
}

const (
	submitLabelIdle = "[ Add ]"
	emptyStateText  = "No tasks yet. Press / to add one."
	loadingText     = "Loading tasks…"
	footerHelpList  = "/: add  space: toggle  d: delete  ctrl+d: clear completed  r: reload  ?: help  q: quit"
	footerHelpInput = "enter: add  esc: back to list  ctrl+c: quit"
)

func (m appModel) View() string {
	w := m.contentWidth()

	title := styleTitle().Render("Todo")
	if m.apiURL != "" {
		title += "  " + styleMuted().Render(m.apiURL)
	}

	var body string
	switch m.modal {
	case modalConfirmRemove:
		body = renderConfirmModal(w, "Delete task", "Are you sure you want to delete this task?", "Delete", "Cancel", m.confirmFocus)
	case modalConfirmClearCompleted:
		body = renderConfirmModal(w, "Clear completed", fmt.Sprintf("Delete %d completed tasks?", m.modalCount), "Delete", "Cancel", m.confirmFocus)
	case modalHelp:
		body = renderHelpModal(w)
	default:
		body = m.viewBody()
	}

	helpLine := footerHelpList
	if m.focus == focusInput {
		helpLine = footerHelpInput
	}

	parts := []string{
		title,
		m.viewInput(w),
		body,
		m.viewStats(),
		m.toast.view(w),
		styleMuted().Width(w).Render(helpLine),
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, "\n"))
}

// viewBody shows either the list container or the empty-state placeholder, never both.
func (m appModel) viewBody() string {
	if !m.rendered {
		return styleMuted().Render(loadingText)
	}
	if len(m.list.Items()) == 0 {
		return styleMuted().Render(emptyStateText)
	}
	return m.list.View()
}

func (m appModel) viewStats() string {
	if !m.rendered {
		return ""
	}
	return styleMuted().Render(m.totalLabel + glyphSeparator() + m.completedLabel)
}

func (m appModel) viewInput(w int) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	if m.focus == focusInput {
		frame = frame.BorderForeground(colorAccent)
	}
	if todo.TextLen(m.input.Value()) > todo.WarnTextLen {
		frame = frame.BorderForeground(colorWarning)
	}

	submit := styleButton().Render(submitLabelIdle)
	if m.client.Creating() {
		submit = styleButtonBusy().Render(m.spinner.View() + " Adding")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), " ", submit)
	return frame.Width(w - 2).Render(line)
}
