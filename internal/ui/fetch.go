package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/fallback"
	"github.com/five82/f1nalyzer/internal/mapview"
	"github.com/five82/f1nalyzer/internal/task"
)

const mapTaskKey = "map"

// Messages

type driversMsg struct {
	task    task.ID
	query   string
	drivers []f1api.Driver
	err     error
}

type circuitsMsg struct {
	task   task.ID
	result fallback.Result[f1api.Circuit]
}

type tracksMsg struct {
	task   task.ID
	result fallback.Result[f1api.Track]
}

type racesMsg struct {
	task  task.ID
	races []f1api.Race
	err   error
}

type previewMsg struct {
	task      task.ID
	circuitID string
	preview   mapview.Preview
}

type healthState int

const (
	healthUnknown healthState = iota
	healthUp
	healthDown
)

type healthMsg struct {
	err error
}

// healthChecker is implemented by clients that can ping the driver service.
type healthChecker interface {
	Health(ctx context.Context) error
}

// Commands

// searchDrivers validates the query and starts a driver search. A blank
// query only sets the advisory. A trigger while a search is in flight is
// ignored.
func (m *Model) searchDrivers() tea.Cmd {
	if m.drivers.Snapshot().Loading {
		return nil
	}
	query := m.inputs[PanelDrivers].Value()
	if strings.TrimSpace(query) == "" {
		m.drivers.Reset()
		m.driverSel.Clear()
		m.notice[PanelDrivers] = adviseEnterDriver
		return nil
	}
	if m.client == nil || !m.drivers.Begin() {
		return nil
	}
	m.notice[PanelDrivers] = ""
	t := m.tasks.Start(PanelDrivers.String())
	client := m.client
	return func() tea.Msg {
		drivers, err := client.SearchDrivers(t.Ctx, query)
		return driversMsg{task: t.ID, query: query, drivers: drivers, err: err}
	}
}

func (m *Model) loadCircuits() tea.Cmd {
	if m.client == nil || !m.circuits.Begin() {
		return nil
	}
	t := m.tasks.Start(PanelCircuits.String())
	client, logger := m.client, m.logger
	return func() tea.Msg {
		return circuitsMsg{task: t.ID, result: fallback.LoadCircuits(t.Ctx, client, logger)}
	}
}

func (m *Model) loadTracks() tea.Cmd {
	if m.client == nil || !m.tracks.Begin() {
		return nil
	}
	t := m.tasks.Start(PanelTracks.String())
	client, logger := m.client, m.logger
	return func() tea.Msg {
		return tracksMsg{task: t.ID, result: fallback.LoadTracks(t.Ctx, client, logger)}
	}
}

func (m *Model) loadRaces() tea.Cmd {
	if m.client == nil || !m.races.Begin() {
		return nil
	}
	t := m.tasks.Start(PanelResults.String())
	client := m.client
	return func() tea.Msg {
		races, err := client.FetchRaces(t.Ctx)
		return racesMsg{task: t.ID, races: races, err: err}
	}
}

// loadPreview resolves the map preview for c. Without a key the answer is
// known immediately and no request is made.
func (m *Model) loadPreview(c f1api.Circuit) tea.Cmd {
	m.previewFor = c.ID
	if !m.maps.HasKey() {
		m.tasks.Cancel(mapTaskKey)
		m.preview = m.maps.Preview(m.ctx, c)
		m.previewLoading = false
		return nil
	}
	m.previewLoading = true
	t := m.tasks.Start(mapTaskKey)
	maps := m.maps
	return func() tea.Msg {
		return previewMsg{task: t.ID, circuitID: c.ID, preview: maps.Preview(t.Ctx, c)}
	}
}

func (m Model) healthCmd() tea.Cmd {
	hc, ok := m.client.(healthChecker)
	if !ok {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return healthMsg{err: hc.Health(ctx)}
	}
}

// Handlers

// finish reports whether a result for key is still wanted. Results of
// superseded or cancelled tasks are dropped.
func (m Model) finish(key string, id task.ID) bool {
	if m.tasks.Finish(key, id) {
		return true
	}
	m.logger.Debug("discarding stale result", zap.String("task_key", key), zap.Stringer("task", id))
	return false
}

func (m *Model) handleDrivers(msg driversMsg) {
	if !m.finish(PanelDrivers.String(), msg.task) {
		return
	}
	m.cursor[PanelDrivers] = 0
	if msg.err != nil {
		m.drivers.Update(nil, msg.err)
		m.driverSel.Clear()
		m.notice[PanelDrivers] = ""
		return
	}
	m.drivers.Update(msg.drivers, nil)
	m.driverSel.ApplyResults(msg.drivers)
	m.detail.GotoTop()
	if len(msg.drivers) == 0 {
		m.notice[PanelDrivers] = adviseNoDrivers
	} else {
		m.notice[PanelDrivers] = ""
	}
}

func (m *Model) handleCircuits(msg circuitsMsg) {
	if !m.finish(PanelCircuits.String(), msg.task) {
		return
	}
	res := msg.result
	switch {
	case res.Source == fallback.SourceFallback:
		m.circuits.UpdateFallback(res.Items, res.Advisory, res.Cause)
	case res.Cause != nil:
		m.circuits.Abort()
	default:
		m.circuits.Update(res.Items, nil)
	}
	m.refreshNotice()
}

func (m *Model) handleTracks(msg tracksMsg) {
	if !m.finish(PanelTracks.String(), msg.task) {
		return
	}
	res := msg.result
	switch {
	case res.Source == fallback.SourceFallback:
		m.tracks.UpdateFallback(res.Items, res.Advisory, res.Cause)
	case res.Cause != nil:
		m.tracks.Abort()
	default:
		m.tracks.Update(res.Items, nil)
	}
	m.refreshNotice()
}

func (m *Model) handleRaces(msg racesMsg) {
	if !m.finish(PanelResults.String(), msg.task) {
		return
	}
	if errors.Is(msg.err, context.Canceled) {
		m.races.Abort()
		return
	}
	m.races.Update(msg.races, msg.err)
	m.raceSel.Clear()
	m.cursor[PanelResults] = 0
}

func (m *Model) handlePreview(msg previewMsg) {
	if !m.finish(mapTaskKey, msg.task) {
		return
	}
	if msg.circuitID != m.previewFor {
		return
	}
	m.preview = msg.preview
	m.previewLoading = false
}

func (m *Model) handleHealth(msg healthMsg) {
	if msg.err != nil {
		m.health = healthDown
		return
	}
	m.health = healthUp
}
