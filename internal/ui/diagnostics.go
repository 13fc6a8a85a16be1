package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/f1nalyzer/internal/logtail"
)

// diagnosticsLines is how much of the log tail the overlay keeps.
const diagnosticsLines = 500

type diagnosticsMsg struct {
	lines []string
	err   error
}

func readDiagnosticsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return diagnosticsMsg{}
		}
		lines, err := logtail.Read(path, diagnosticsLines)
		if err != nil {
			return diagnosticsMsg{err: err}
		}
		return diagnosticsMsg{lines: logtail.FormatLines(lines)}
	}
}

func (m *Model) handleDiagnostics(msg diagnosticsMsg) {
	m.diagErr = msg.err
	if len(msg.lines) == 0 {
		m.diagnostics.SetContent(m.theme.Styles().MutedText.Render("No diagnostic entries yet."))
		return
	}
	styles := m.theme.Styles()
	colored := make([]string, len(msg.lines))
	for i, line := range msg.lines {
		colored[i] = levelStyle(line, styles).Render(line)
	}
	m.diagnostics.SetContent(strings.Join(colored, "\n"))
	m.diagnostics.GotoBottom()
}

// levelStyle colors a formatted line by its level column.
func levelStyle(line string, styles Styles) lipgloss.Style {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return styles.Text
	}
	switch fields[1] {
	case "ERROR", "DPANIC", "PANIC", "FATAL":
		return styles.DangerText
	case "WARN":
		return styles.WarningText
	case "DEBUG":
		return styles.FaintText
	default:
		return styles.Text
	}
}

func (m Model) handleDiagnosticsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Diagnostics):
		m.showDiagnostics = false
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		m.tasks.CancelAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Reload):
		return m, readDiagnosticsCmd(m.logPath)
	case key.Matches(msg, m.keys.Down):
		m.diagnostics.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.diagnostics.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.diagnostics.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.diagnostics.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.diagnostics.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.diagnostics.HalfPageUp()
	}
	return m, nil
}

// renderDiagnostics renders the log tail overlay.
func (m Model) renderDiagnostics() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render("Diagnostics")
	if m.logPath != "" {
		title += "  " + styles.FaintText.Render(truncateMiddle(m.logPath, maxInt(m.width-24, 10)))
	}

	body := m.diagnostics.View()
	if m.diagErr != nil {
		body = styles.DangerText.Render("Cannot read log: "+m.diagErr.Error()) + "\n" + body
	} else if m.logPath == "" {
		body = styles.MutedText.Render("Diagnostics log is not configured.")
	}

	footer := styles.FaintText.Render("r reload  j/k scroll  esc close")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1).
		Width(maxInt(m.width-2, 20))

	return box.Render(title + "\n\n" + body + "\n" + footer)
}
