package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the logo, panel tabs and service indicators.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("f1nalyzer", styles.Logo)}

	tabs := make([]string, 0, len(allPanels))
	for i, p := range allPanels {
		label := string(rune('1'+i)) + " " + p.Title()
		if p == m.panel {
			tabs = append(tabs, styles.PanelStyle(p.String()).Render(label))
		} else {
			tabs = append(tabs, bg.Render(label, styles.MutedText))
		}
	}
	parts = append(parts, bg.Join(tabs, " "))

	if m.panelLoading() {
		parts = append(parts, bg.Render(m.spinner.View(), styles.WarningText))
	}
	if ind := m.sourceIndicator(styles, bg); ind != "" {
		parts = append(parts, ind)
	}

	switch m.health {
	case healthUp:
		parts = append(parts, bg.Render("● API", styles.SuccessText))
	case healthDown:
		parts = append(parts, bg.Render("● API down", styles.DangerText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}

// sourceIndicator flags panels showing seed data, and services that have
// failed repeatedly.
func (m Model) sourceIndicator(styles Styles, bg BgStyle) string {
	var fallback, offline bool
	switch m.panel {
	case PanelCircuits:
		snap := m.circuits.Snapshot()
		fallback, offline = snap.Fallback, snap.IsOffline()
	case PanelTracks:
		snap := m.tracks.Snapshot()
		fallback, offline = snap.Fallback, snap.IsOffline()
	case PanelDrivers:
		offline = m.drivers.Snapshot().IsOffline()
	case PanelResults:
		offline = m.races.Snapshot().IsOffline()
	}
	switch {
	case offline:
		return bg.Render("OFFLINE", styles.DangerText)
	case fallback:
		return bg.Render("sample data", styles.WarningText)
	}
	return ""
}

// busy reports whether anything the spinner stands for is in flight.
func (m Model) busy() bool {
	return m.panelLoading() || m.previewLoading
}

func (m Model) panelLoading() bool {
	switch m.panel {
	case PanelDrivers:
		return m.drivers.Snapshot().Loading
	case PanelCircuits:
		return m.circuits.Snapshot().Loading || m.previewLoading
	case PanelTracks:
		return m.tracks.Snapshot().Loading
	case PanelResults:
		return m.races.Snapshot().Loading
	}
	return false
}

// renderCommandBar shows the search input while searching, otherwise the
// key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bar := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Width(m.width)

	if m.searching {
		return bar.Render(m.inputs[m.panel].View())
	}

	bg := NewBgStyle(m.theme.SurfaceAlt)
	var hints []string
	if q := m.activeQuery(); q != "" {
		hints = append(hints, bg.Render("/ "+truncate(q, 24), styles.AccentText))
	}
	for _, b := range m.keys.ShortHelp() {
		if m.panel == PanelSeasons && (b.Help().Key == "/" || b.Help().Key == "enter") {
			continue
		}
		h := b.Help()
		hints = append(hints, bg.Render(h.Key, styles.WarningText)+bg.Space()+bg.Render(strings.ToLower(h.Desc), styles.MutedText))
	}
	return bar.Render(bg.Join(hints, "  "))
}

// activeQuery is the query currently applied to the panel's list.
func (m Model) activeQuery() string {
	switch m.panel {
	case PanelTracks:
		return strings.TrimSpace(m.trackQuery)
	case PanelSeasons:
		return ""
	default:
		return strings.TrimSpace(m.inputs[m.panel].Value())
	}
}
