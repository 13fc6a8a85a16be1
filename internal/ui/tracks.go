package ui

import (
	"fmt"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/filter"
	"github.com/five82/f1nalyzer/internal/selection"
)

// tracksPanel is list only: each row already carries everything a track
// card shows.
type tracksPanel struct{}

func (tracksPanel) failure(Model) error { return nil }

func (tracksPanel) mode(Model) selection.Mode { return selection.ModeList }

// visibleTracks applies the last submitted query. An empty query shows all
// tracks.
func (m Model) visibleTracks() []f1api.Track {
	return filter.Tracks(m.tracks.Snapshot().Items, m.trackQuery)
}

func (tracksPanel) renderList(m Model) string {
	snap := m.tracks.Snapshot()
	if snap.Loading && len(snap.Items) == 0 {
		return m.renderLoading("Loading tracks")
	}
	body := listBody{
		notices: []string{snap.Advisory, m.notice[PanelTracks]},
		empty:   "No tracks loaded. Press r to reload.",
	}
	if m.notice[PanelTracks] != "" {
		body.notices = append(body.notices, suggestionLine(filter.Suggest(snap.Items, m.trackQuery, suggestLimit)))
		body.empty = ""
	}
	for _, t := range m.visibleTracks() {
		body.rows = append(body.rows, trackRow(t))
	}
	return m.renderRows(body, m.cursor[PanelTracks])
}

func trackRow(t f1api.Track) string {
	return fmt.Sprintf("%-30s %-24s %6.3f km  %3d laps  %7.3f km race",
		truncate(t.Name, 30),
		truncate(t.Location+", "+t.Country, 24),
		t.LengthKM, t.Laps, t.RaceDistanceKM())
}

func (tracksPanel) renderDetail(Model) string { return "" }

func (tracksPanel) renderError(Model) string { return "" }
