package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/raceshot-upload/internal/logtail"
)

type logLoadedMsg struct {
	lines []string
	err   error
}

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logLoadedMsg{}
		}
		lines, err := logtail.Read(path, LogTailLines)
		return logLoadedMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLoaded(msg logLoadedMsg) {
	m.logLines = msg.lines
	m.logErr = msg.err
	m.logView.SetContent(m.renderLogLines())
	m.logView.GotoBottom()
}

func (m Model) renderLogLines() string {
	styles := m.theme.Styles()
	if m.logErr != nil {
		return styles.DangerText.Render("Unable to read log: " + m.logErr.Error())
	}
	if len(m.logLines) == 0 {
		return styles.FaintText.Render("No log entries yet.")
	}

	var b strings.Builder
	for i, line := range m.logLines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatLogLine(styles, line))
	}
	return b.String()
}

// formatLogLine renders "15:04:05 WARN  upload rejected file=b.jpg" from a
// slog text line. Unstructured lines pass through unstyled.
func formatLogLine(styles Styles, line string) string {
	entry := logtail.Parse(line)
	if entry.Level == "" && entry.Message == "" {
		return entry.Raw
	}

	var b strings.Builder
	if ts := shortTime(entry.Time); ts != "" {
		b.WriteString(styles.FaintText.Render(ts))
		b.WriteString(" ")
	}
	b.WriteString(styles.LevelStyle(entry.Level).Render(padRight(entry.Level, 5)))
	b.WriteString(" ")
	b.WriteString(styles.Text.Render(entry.Message))
	for _, attr := range entry.Attrs {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(attr.Key + "="))
		b.WriteString(styles.AccentText.Render(attr.Value))
	}
	return b.String()
}

// shortTime trims an RFC 3339 timestamp to its clock part.
func shortTime(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+9 {
		return ts[i+1 : i+9]
	}
	return ts
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
