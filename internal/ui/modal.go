package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// resultModal summarizes a finished or rejected batch. Any key dismisses it.
type resultModal struct {
	ok     bool
	title  string
	detail string
}

func (r resultModal) Update(msg tea.Msg, _ keyMap) (Modal, tea.Cmd, bool) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return r, nil, true
	}
	return r, nil, false
}

func (r resultModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	titleStyle, border := styles.DangerText, theme.Danger
	if r.ok {
		titleStyle, border = styles.SuccessText, theme.Success
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.title))
	if r.detail != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Text.Render(r.detail))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("press any key"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
