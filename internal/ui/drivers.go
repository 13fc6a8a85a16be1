package ui

import (
	"fmt"
	"strings"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/selection"
)

const driverPlaceholderImage = "https://via.placeholder.com/200x200/374151/ffffff?text=F1"

type driversPanel struct{}

func (driversPanel) failure(m Model) error {
	return m.drivers.Snapshot().LastError
}

func (driversPanel) mode(m Model) selection.Mode {
	return m.driverSel.Mode()
}

func (driversPanel) renderList(m Model) string {
	snap := m.drivers.Snapshot()
	if snap.Loading {
		return m.renderLoading("Searching drivers")
	}
	body := listBody{
		notices: []string{m.notice[PanelDrivers]},
		empty:   "Type / and a name, then enter, to search the current driver line-up.",
	}
	if m.notice[PanelDrivers] != "" {
		body.empty = ""
	}
	for _, d := range snap.Items {
		body.rows = append(body.rows, driverRow(d))
	}
	return m.renderRows(body, m.cursor[PanelDrivers])
}

func driverRow(d f1api.Driver) string {
	return fmt.Sprintf("#%-3d %-24s %-22s %s", d.Number, truncate(d.FullName(), 24), truncate(orDash(d.TeamName), 22), orDash(d.CountryCode))
}

func (driversPanel) renderDetail(m Model) string {
	d, ok := m.driverSel.Selected()
	if !ok {
		return ""
	}
	styles := m.theme.Styles()
	label := func(s string) string { return styles.MutedText.Render(padRight(s, 10)) }

	var b strings.Builder
	b.WriteString(styles.TeamStyle(d.TeamColour).Render("▌ "))
	b.WriteString(styles.Text.Bold(true).Render(d.FullName()))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  #%d", d.Number)))
	b.WriteString("\n\n")

	b.WriteString(label("Team") + styles.TeamStyle(d.TeamColour).Render(orDash(d.TeamName)) + "\n")
	b.WriteString(label("Colour") + styles.Text.Render(orDash(d.TeamColour)) + "\n")
	b.WriteString(label("Country") + styles.Text.Render(orDash(d.CountryCode)) + "\n")
	b.WriteString(label("Headshot") + styles.AccentText.Render(headshotURL(d)) + "\n\n")

	hint := "esc back to results"
	if n := len(m.drivers.Snapshot().Items); n > 1 {
		hint = fmt.Sprintf("esc back to %d results", n)
	}
	b.WriteString(styles.FaintText.Render(hint))
	return b.String()
}

// headshotURL falls back to the placeholder image when the driver has none.
func headshotURL(d f1api.Driver) string {
	if u := strings.TrimSpace(d.HeadshotURL); u != "" {
		return u
	}
	return driverPlaceholderImage
}

func (driversPanel) renderError(m Model) string {
	snap := m.drivers.Snapshot()
	return m.renderFailure(errDriversText, snap.LastError, "Press r to retry the search.")
}
