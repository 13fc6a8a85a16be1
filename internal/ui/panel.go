package ui

import "github.com/five82/f1nalyzer/internal/selection"

// Panel is the feature shown by the single top-level view.
type Panel int

const (
	PanelDrivers Panel = iota
	PanelCircuits
	PanelTracks
	PanelResults
	PanelSeasons
	panelCount
)

var allPanels = []Panel{PanelDrivers, PanelCircuits, PanelTracks, PanelResults, PanelSeasons}

func (p Panel) String() string {
	switch p {
	case PanelDrivers:
		return "drivers"
	case PanelCircuits:
		return "circuits"
	case PanelTracks:
		return "tracks"
	case PanelResults:
		return "results"
	case PanelSeasons:
		return "seasons"
	default:
		return "unknown"
	}
}

// Title is the tab label.
func (p Panel) Title() string {
	switch p {
	case PanelDrivers:
		return "Drivers"
	case PanelCircuits:
		return "Circuits"
	case PanelTracks:
		return "Tracks"
	case PanelResults:
		return "Results"
	case PanelSeasons:
		return "Seasons"
	default:
		return "?"
	}
}

// ParsePanel maps a stored panel name back to a Panel. Unknown names give
// PanelDrivers.
func ParsePanel(name string) Panel {
	for _, p := range allPanels {
		if p.String() == name {
			return p
		}
	}
	return PanelDrivers
}

func (p Panel) next() Panel {
	return (p + 1) % panelCount
}

func (p Panel) prev() Panel {
	return (p + panelCount - 1) % panelCount
}

// panelView is the capability set every panel implements. The model decides
// which of the three to call from the panel's error and selection state.
type panelView interface {
	failure(m Model) error
	mode(m Model) selection.Mode
	renderList(m Model) string
	renderDetail(m Model) string
	renderError(m Model) string
}

func (m Model) view(p Panel) panelView {
	switch p {
	case PanelDrivers:
		return driversPanel{}
	case PanelCircuits:
		return circuitsPanel{}
	case PanelTracks:
		return tracksPanel{}
	case PanelResults:
		return resultsPanel{}
	default:
		return seasonsPanel{}
	}
}

// renderPanel picks error, detail or list rendering for the active panel.
func (m Model) renderPanel() string {
	v := m.view(m.panel)
	if v.failure(m) != nil {
		return v.renderError(m)
	}
	if v.mode(m) == selection.ModeDetail {
		return v.renderDetail(m)
	}
	return v.renderList(m)
}
