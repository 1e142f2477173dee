package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// No borders on the buttons: nested borders inside a background-colored box leave artifacts
	// on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("y: confirm   n/esc: cancel   tab: focus   enter: select")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

const modalMaxW = 64

// modalBodyWidth is the usable text width inside a modal box drawn for the given screen width.
func modalBodyWidth(width int) int {
	w := width - 4
	if w > modalMaxW {
		w = modalMaxW
	}
	// Border (2) + padding (4).
	w -= 6
	if w < 10 {
		w = 10
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 2).
		Width(bodyW + 4).
		Render(header + "\n\n" + content)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}
