package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var helpSections = []string{"Panels", "Navigation", "Search", "General"}

// helpMarkdown builds the shortcut tables from the key map.
func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keyboard Shortcuts\n")
	for i, group := range m.keys.FullHelp() {
		title := "More"
		if i < len(helpSections) {
			title = helpSections[i]
		}
		b.WriteString("\n## " + title + "\n\n| Key | Action |\n|---|---|\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("| `" + h.Key + "` | " + h.Desc + " |\n")
		}
	}
	return b.String()
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	modalWidth := minInt(64, maxInt(m.width-4, 30))
	content := m.markdown.render(m.helpMarkdown(), modalWidth-4)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(0, 1).
		Width(modalWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
