package ui

import (
	"fmt"
	"strings"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/filter"
	"github.com/five82/f1nalyzer/internal/selection"
)

const fastestLapMarker = "◆"

type resultsPanel struct{}

func (resultsPanel) failure(m Model) error {
	return m.races.Snapshot().LastError
}

func (resultsPanel) mode(m Model) selection.Mode {
	return m.raceSel.Mode()
}

func (m Model) visibleRaces() []f1api.Race {
	return filter.Apply(m.races.Snapshot().Items, m.inputs[PanelResults].Value())
}

func (resultsPanel) renderList(m Model) string {
	snap := m.races.Snapshot()
	if snap.Loading && len(snap.Items) == 0 {
		return m.renderLoading("Loading race results")
	}
	body := listBody{
		notices: []string{m.notice[PanelResults]},
		empty:   "No races yet.",
	}
	if m.notice[PanelResults] != "" {
		body.empty = ""
	}
	for _, r := range m.visibleRaces() {
		winner := "-"
		if w, ok := r.Winner(); ok {
			winner = w.DriverName
		}
		body.rows = append(body.rows, fmt.Sprintf("%-10s %-28s %-24s P1 %s",
			orDash(r.Date), truncate(r.Name, 28), truncate(r.Track, 24), winner))
	}
	return m.renderRows(body, m.cursor[PanelResults])
}

func (resultsPanel) renderDetail(m Model) string {
	r, ok := m.raceSel.Selected()
	if !ok {
		return ""
	}
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(r.Name))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(orDash(r.Track) + "  " + orDash(r.Date)))
	b.WriteString("\n\n")

	if len(r.Results) == 0 {
		b.WriteString(styles.MutedText.Render("No classified results."))
		return b.String()
	}

	header := fmt.Sprintf("%-4s %-22s %-18s %-12s %6s", "Pos", "Driver", "Team", "Time", "Pts")
	b.WriteString(styles.FaintText.Render(header))
	b.WriteString("\n")
	for _, res := range r.Results {
		marker := " "
		if res.FastestLap {
			marker = fastestLapMarker
		}
		pos := styles.PositionStyle(res.Position).Render(fmt.Sprintf("P%-3d", res.Position))
		line := fmt.Sprintf(" %-22s %-18s %-12s %6s %s",
			truncate(res.DriverName, 22), truncate(res.TeamName, 18), truncate(orDash(res.Time), 12),
			res.Points.String(), marker)
		b.WriteString(pos + styles.Text.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%s fastest lap   points awarded: %s", fastestLapMarker, r.TotalPoints().String())))
	return b.String()
}

func (resultsPanel) renderError(m Model) string {
	return m.renderFailure(errRacesText, m.races.Snapshot().LastError, "Press r to retry.")
}
