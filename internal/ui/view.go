package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const appTitle = "RaceShot Upload"

// renderMain renders the active screen with header and footer.
func (m Model) renderMain() string {
	var body string
	switch {
	case m.currentView == ViewLogs:
		body = m.logView.View()
	case m.picking:
		body = m.renderPicker()
	default:
		body = m.renderForm()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	title := styles.Logo.Render(appTitle)

	var section string
	switch {
	case m.currentView == ViewLogs:
		section = "Log"
	case m.picking:
		section = "Select images"
	default:
		section = "Upload"
	}

	right := styles.FaintText.Render(m.theme.Name)
	left := title + styles.MutedText.Render("  "+section)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderFooter() string {
	h := help.New()
	h.Styles.ShortKey = m.theme.Styles().AccentText
	h.Styles.ShortDesc = m.theme.Styles().MutedText
	h.Styles.ShortSeparator = m.theme.Styles().FaintText
	return m.theme.Styles().Footer.Render(h.ShortHelpView(m.keys.ShortHelp()))
}

// formRows is the number of lines renderForm uses above the status region.
func formRows() int {
	return int(fieldCount) + maxListedFiles + 4
}

func (m Model) renderForm() string {
	styles := m.theme.Styles()
	var rows []string

	for fd := field(0); fd < fieldCount; fd++ {
		switch fd {
		case fieldFiles:
			rows = append(rows, m.renderFilesRow(fd))
			rows = append(rows, m.renderFileList()...)
		case fieldSubmit:
			rows = append(rows, "")
			rows = append(rows, m.renderSubmit())
		default:
			rows = append(rows, m.renderLabel(fd)+m.form.input(fd).View())
		}
	}

	panel := styles.Panel
	if !m.uploading && !m.statusOK && m.statusMsg != "" {
		panel = panel.BorderForeground(lipgloss.Color(m.theme.Danger))
	} else if m.statusOK {
		panel = panel.BorderForeground(lipgloss.Color(m.theme.Success))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Panel.Render(strings.Join(rows, "\n")),
		panel.Render(m.status.View()),
	)
}

func (m Model) renderLabel(fd field) string {
	styles := m.theme.Styles()
	if m.form.focus == fd && !m.picking {
		return styles.FocusedLabel.Render(fd.label())
	}
	return styles.Label.Render(fd.label())
}

func (m Model) renderFilesRow(fd field) string {
	styles := m.theme.Styles()
	count := len(m.form.files)
	var summary string
	switch count {
	case 0:
		summary = styles.FaintText.Render("none selected (enter or ctrl+o to browse)")
	case 1:
		summary = styles.Text.Render(fmt.Sprintf("1 file, %s", humanize.Bytes(uint64(m.form.totalSize()))))
	default:
		summary = styles.Text.Render(fmt.Sprintf("%d files, %s", count, humanize.Bytes(uint64(m.form.totalSize()))))
	}
	return m.renderLabel(fd) + summary
}

func (m Model) renderFileList() []string {
	styles := m.theme.Styles()
	indent := strings.Repeat(" ", labelWidth)
	var rows []string
	for i, sel := range m.form.files {
		if i == maxListedFiles {
			rows = append(rows, indent+styles.FaintText.Render(fmt.Sprintf("… and %d more", len(m.form.files)-maxListedFiles)))
			break
		}
		rows = append(rows, indent+styles.MutedText.Render(fmt.Sprintf("%-32s %8s", filepath.Base(sel.path), humanize.Bytes(uint64(sel.size)))))
	}
	return rows
}

func (m Model) renderSubmit() string {
	styles := m.theme.Styles()
	indent := strings.Repeat(" ", labelWidth)
	if m.uploading {
		return indent + m.spinner.View() + " " + styles.AccentText.Render(uploadingText)
	}
	if m.form.focus == fieldSubmit {
		return indent + styles.FocusedButton.Render("Upload")
	}
	return indent + styles.Button.Render("Upload")
}

// renderStatus renders the aggregated report for the status region.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	switch {
	case m.uploading:
		return styles.AccentText.Render(uploadingText)
	case m.statusMsg == "":
		return styles.FaintText.Render("Fill in the form and press ctrl+s to upload.")
	case m.statusOK:
		return styles.SuccessText.Render(m.statusMsg)
	default:
		return styles.DangerText.Render(m.statusMsg)
	}
}

func (m Model) renderPicker() string {
	styles := m.theme.Styles()
	info := styles.MutedText.Render(fmt.Sprintf(
		"%s  |  %d selected  |  enter toggles a file, ctrl+o returns to the form",
		m.picker.CurrentDirectory, len(m.form.files)))
	return lipgloss.JoinVertical(lipgloss.Left, info, m.picker.View())
}
