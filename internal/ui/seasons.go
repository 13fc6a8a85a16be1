package ui

import "github.com/five82/f1nalyzer/internal/selection"

const seasonsMarkdown = `## Seasons

Season browsing is not available yet.

Use the **Results** panel (` + "`4`" + `) for race classifications and the
**Drivers** panel (` + "`1`" + `) for the current line-up.`

type seasonsPanel struct{}

func (seasonsPanel) failure(Model) error { return nil }

func (seasonsPanel) mode(Model) selection.Mode { return selection.ModeList }

func (seasonsPanel) renderList(m Model) string {
	return m.markdown.render(seasonsMarkdown, m.width)
}

func (seasonsPanel) renderDetail(Model) string { return "" }

func (seasonsPanel) renderError(Model) string { return "" }
