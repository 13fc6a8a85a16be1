package ui

import (
	"strings"

	"github.com/five82/f1nalyzer/internal/filter"
)

// Advisories shown above panel lists.
const (
	adviseEnterDriver = "Please enter a driver name"
	adviseNoDrivers   = "No drivers found with that name"
	adviseNoTracks    = "No tracks found with that name"
	adviseNoCircuits  = "No circuits match your search"
	adviseNoRaces     = "No races match your search"

	errDriversText = "Failed to fetch drivers from API"
	errRacesText   = "Failed to fetch race results from API"

	suggestLimit = 3
)

// listBody assembles the advisory lines and the list rows of a panel.
type listBody struct {
	notices []string
	rows    []string
	empty   string
}

// renderRows draws the notices and the rows windowed around cursor so the
// cursor stays visible.
func (m Model) renderRows(body listBody, cursor int) string {
	styles := m.theme.Styles()
	var b strings.Builder

	lines := 0
	for _, n := range body.notices {
		if n == "" {
			continue
		}
		b.WriteString(styles.WarningText.Render(truncate(n, maxInt(m.width-2, 10))))
		b.WriteString("\n")
		lines++
	}
	if lines > 0 {
		b.WriteString("\n")
		lines++
	}

	if len(body.rows) == 0 {
		if body.empty != "" {
			b.WriteString(styles.MutedText.Render(body.empty))
		}
		return b.String()
	}

	height := maxInt(m.contentHeight()-lines, 1)
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := minInt(start+height, len(body.rows))
	rowWidth := maxInt(m.width, 20)
	for i := start; i < end; i++ {
		row := padRight(body.rows[i], rowWidth)
		if i == cursor {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// refreshNotice recomputes the no-match advisory of the filterable panels.
func (m *Model) refreshNotice() {
	switch m.panel {
	case PanelCircuits:
		snap := m.circuits.Snapshot()
		q := m.inputs[PanelCircuits].Value()
		m.notice[PanelCircuits] = noMatch(filter.Normalize(q) != "" && len(snap.Items) > 0 && len(m.visibleCircuits()) == 0, adviseNoCircuits)
	case PanelTracks:
		snap := m.tracks.Snapshot()
		m.notice[PanelTracks] = noMatch(filter.Normalize(m.trackQuery) != "" && len(snap.Items) > 0 && len(m.visibleTracks()) == 0, adviseNoTracks)
	case PanelResults:
		snap := m.races.Snapshot()
		q := m.inputs[PanelResults].Value()
		m.notice[PanelResults] = noMatch(filter.Normalize(q) != "" && len(snap.Items) > 0 && len(m.visibleRaces()) == 0, adviseNoRaces)
	}
}

func noMatch(cond bool, text string) string {
	if cond {
		return text
	}
	return ""
}

// suggestionLine renders "Did you mean ..." for a query that matched nothing.
func suggestionLine(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "Did you mean: " + strings.Join(names, ", ") + "?"
}
