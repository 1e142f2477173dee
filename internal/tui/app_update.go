package tui

import (
	"todo-cli/internal/model"
	"todo-cli/internal/todo"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case resultMsg:
		out := m.client.Settle(msg.result)
		if out.Notice != nil && out.Notice.Err != nil {
			m.log.Warn("task store operation failed", "notice", out.Notice.Message, "err", out.Notice.Err)
		}
		cmd := m.apply(out)
		return m, cmd

	case toastDoneMsg:
		// Only the newest toast may dismiss itself; older ticks are stale.
		if msg.seq == m.toast.seq {
			m.toast = toast{seq: m.toast.seq}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.client.Creating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		// Page-level bindings work regardless of focus.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+d":
			return m.openClearCompleted()
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "esc":
		m.blurInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/", "a", "i":
		m.focusInput()
		return m, nil
	case " ", "x", "enter":
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		return m, m.run(m.client.Toggle(id))
	case "d", "delete", "backspace":
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		return m.requestRemove(id)
	case "r":
		return m, m.run(m.client.Load())
	case "?":
		m.openModal(modalHelp)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) submit() (tea.Model, tea.Cmd) {
	req, err := m.client.Create(m.input.Value())
	if err != nil {
		return m, m.notify(todo.ValidationNotice(err))
	}
	if req == nil {
		// Already adding; the submit control is disabled until it settles.
		return m, nil
	}
	return m, tea.Batch(m.run(req), m.spinner.Tick)
}

func (m appModel) requestRemove(id model.TaskID) (tea.Model, tea.Cmd) {
	if _, ok := m.client.Find(id); !ok {
		return m, nil
	}
	if m.client.NeedsConfirm(id) {
		m.openModal(modalConfirmRemove)
		m.modalForID = id
		return m, nil
	}
	return m, m.run(m.client.Remove(id))
}

func (m appModel) openClearCompleted() (tea.Model, tea.Cmd) {
	n := len(m.client.Completed())
	if n == 0 {
		return m, nil
	}
	m.openModal(modalConfirmClearCompleted)
	m.modalCount = n
	return m, nil
}

func (m *appModel) openModal(k modalKind) {
	m.modal = k
	m.modalForID = ""
	m.modalCount = 0
	m.confirmFocus = confirmFocusConfirm
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalForID = ""
	m.modalCount = 0
	m.confirmFocus = confirmFocusConfirm
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal == modalHelp {
		switch msg.String() {
		case "esc", "q", "?", "enter", "ctrl+g":
			m.closeModal()
		}
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.confirmModal()
	case "n", "esc", "ctrl+g":
		// Declining sends nothing and says nothing.
		m.closeModal()
		m.askNextQueued()
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.confirmModal()
		}
		m.closeModal()
		m.askNextQueued()
		return m, nil
	}
	return m, nil
}

func (m appModel) confirmModal() (tea.Model, tea.Cmd) {
	kind, id := m.modal, m.modalForID
	m.closeModal()

	switch kind {
	case modalConfirmRemove:
		cmd := m.run(m.client.Remove(id))
		m.askNextQueued()
		return m, cmd
	case modalConfirmClearCompleted:
		// Short tasks go at once; each long one still gets its own prompt.
		var cmds []tea.Cmd
		m.confirmQueue = nil
		for _, t := range m.client.Completed() {
			if m.client.NeedsConfirm(t.ID) {
				m.confirmQueue = append(m.confirmQueue, t.ID)
				continue
			}
			cmds = append(cmds, m.run(m.client.Remove(t.ID)))
		}
		m.askNextQueued()
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// askNextQueued opens the remove prompt for the next queued task that still exists.
func (m *appModel) askNextQueued() {
	for len(m.confirmQueue) > 0 {
		id := m.confirmQueue[0]
		m.confirmQueue = m.confirmQueue[1:]
		if _, ok := m.client.Find(id); !ok || m.client.Removing(id) {
			continue
		}
		m.openModal(modalConfirmRemove)
		m.modalForID = id
		return
	}
}
