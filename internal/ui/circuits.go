package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/filter"
	"github.com/five82/f1nalyzer/internal/mapview"
	"github.com/five82/f1nalyzer/internal/selection"
)

type circuitsPanel struct{}

// Circuits never block: a failed load is replaced by the seed list.
func (circuitsPanel) failure(Model) error { return nil }

func (circuitsPanel) mode(m Model) selection.Mode {
	return m.circuitSel.Mode()
}

func (m Model) visibleCircuits() []f1api.Circuit {
	return filter.Circuits(m.circuits.Snapshot().Items, m.inputs[PanelCircuits].Value())
}

func (circuitsPanel) renderList(m Model) string {
	snap := m.circuits.Snapshot()
	if snap.Loading && len(snap.Items) == 0 {
		return m.renderLoading("Loading circuits")
	}
	visible := m.visibleCircuits()
	body := listBody{
		notices: []string{snap.Advisory, m.notice[PanelCircuits]},
		empty:   "No circuits loaded. Press r to reload.",
	}
	if m.notice[PanelCircuits] != "" {
		body.notices = append(body.notices, suggestionLine(filter.Suggest(snap.Items, m.inputs[PanelCircuits].Value(), suggestLimit)))
		body.empty = ""
	}
	for _, c := range visible {
		body.rows = append(body.rows, fmt.Sprintf("%-38s %s", truncate(c.Name, 38), orDash(c.Place())))
	}
	return m.renderRows(body, m.cursor[PanelCircuits])
}

func (circuitsPanel) renderDetail(m Model) string {
	c, ok := m.circuitSel.Selected()
	if !ok {
		return ""
	}
	styles := m.theme.Styles()
	label := func(s string) string { return styles.MutedText.Render(padRight(s, 10)) }

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(c.Name))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(orDash(c.Place())))
	b.WriteString("\n\n")

	b.WriteString(label("Latitude") + styles.Text.Render(formatCoord(c.Location.Lat)) + "\n")
	b.WriteString(label("Longitude") + styles.Text.Render(formatCoord(c.Location.Long)) + "\n")
	b.WriteString(label("Wiki") + styles.AccentText.Render(orDash(c.URL)) + "\n\n")

	b.WriteString(m.renderPreview(c))
	return b.String()
}

// formatCoord renders a text coordinate with four decimals. Unparseable
// values are shown as served.
func formatCoord(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return orDash(raw)
	}
	return fmt.Sprintf("%.4f", v)
}

func (m Model) renderPreview(c f1api.Circuit) string {
	styles := m.theme.Styles()
	if m.previewLoading || m.previewFor != c.ID {
		return m.renderLoading("Checking map tile")
	}
	p := m.preview
	switch p.State {
	case mapview.PreviewMissingKey:
		return m.markdown.render(mapview.KeyInstructions, m.width)
	case mapview.PreviewReady:
		return styles.SuccessText.Render("Map") + "\n" + styles.AccentText.Render(p.URL)
	default:
		var b strings.Builder
		b.WriteString(styles.WarningText.Render("Map unavailable"))
		if p.Reason != "" {
			b.WriteString(styles.FaintText.Render("  (" + p.Reason + ")"))
		}
		b.WriteString("\n")
		if labels, err := mapview.FallbackLabels(p.Fallback); err == nil {
			b.WriteString(styles.MutedText.Render(placeholderCard(labels)))
		}
		return b.String()
	}
}

// placeholderCard boxes the labels of the fallback graphic.
func placeholderCard(lines []string) string {
	width := 0
	for _, l := range lines {
		width = maxInt(width, len([]rune(l)))
	}
	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width+2) + "┐\n")
	for _, l := range lines {
		b.WriteString("│ " + padRight(l, width) + " │\n")
	}
	b.WriteString("└" + strings.Repeat("─", width+2) + "┘")
	return b.String()
}

func (circuitsPanel) renderError(Model) string { return "" }
