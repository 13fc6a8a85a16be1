package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/mapview"
	"github.com/five82/f1nalyzer/internal/prefs"
	"github.com/five82/f1nalyzer/internal/selection"
	"github.com/five82/f1nalyzer/internal/state"
	"github.com/five82/f1nalyzer/internal/task"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    f1api.Fetcher
	Maps      *mapview.Service
	Logger    *zap.Logger
	LogPath   string
	ThemeName string
	Panel     string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    f1api.Fetcher
	maps      *mapview.Service
	logger    *zap.Logger
	logPath   string
	prefsPath string
	keys      keyMap
	tasks     *task.Tracker

	// UI state
	theme     Theme
	panel     Panel
	width     int
	height    int
	ready     bool
	searching bool
	spinner   spinner.Model
	inputs    [panelCount]textinput.Model
	cursor    [panelCount]int
	notice    [panelCount]string
	detail    viewport.Model
	health    healthState
	markdown  *markdownCache

	// Help and diagnostics overlays
	showHelp        bool
	showDiagnostics bool
	diagnostics     viewport.Model
	diagErr         error

	// Panel data
	drivers  *state.Store[f1api.Driver]
	circuits *state.Store[f1api.Circuit]
	tracks   *state.Store[f1api.Track]
	races    *state.Store[f1api.Race]

	driverSel  selection.State[f1api.Driver]
	circuitSel selection.State[f1api.Circuit]
	raceSel    selection.State[f1api.Race]

	// trackQuery is the query applied by the last track search.
	trackQuery string

	// Map preview of the selected circuit.
	preview        mapview.Preview
	previewFor     string
	previewLoading bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maps := opts.Maps
	if maps == nil {
		maps = mapview.NewService("", mapview.WithLogger(logger))
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.Default().Theme
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		maps:      maps,
		logger:    logger,
		logPath:   opts.LogPath,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		tasks:     task.NewTracker(ctx),
		theme:     GetTheme(themeName),
		panel:     ParsePanel(opts.Panel),
		spinner:   sp,
		markdown:  newMarkdownCache(),
		drivers:   &state.Store[f1api.Driver]{},
		circuits:  &state.Store[f1api.Circuit]{},
		tracks:    &state.Store[f1api.Track]{},
		races:     &state.Store[f1api.Race]{},
	}
	for _, p := range allPanels {
		m.inputs[p] = newSearchInput(p)
	}
	m.detail = viewport.New(0, 0)
	m.diagnostics = viewport.New(0, 0)
	m.applyThemeToInputs()
	return m
}

func newSearchInput(p Panel) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 64
	switch p {
	case PanelDrivers:
		ti.Placeholder = "Search drivers by name"
	case PanelCircuits:
		ti.Placeholder = "Filter circuits by name, city or country"
	case PanelTracks:
		ti.Placeholder = "Search tracks by name, location or country"
	case PanelResults:
		ti.Placeholder = "Filter races by name, track or date"
	}
	return ti
}

func (m *Model) applyThemeToInputs() {
	for i := range m.inputs {
		m.inputs[i].PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
		m.inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.healthCmd()}
	if cmd := m.enterPanel(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		idle := !m.busy()
		next, cmd := m.handleKey(msg)
		nm := next.(Model)
		// The spinner stops ticking while idle; restart it when a load begins.
		if idle && nm.busy() {
			cmd = tea.Batch(cmd, nm.spinner.Tick)
		}
		return nm, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if !m.busy() {
			return m, nil
		}
		return m, cmd

	case driversMsg:
		m.handleDrivers(msg)
		return m, nil

	case circuitsMsg:
		m.handleCircuits(msg)
		return m, nil

	case tracksMsg:
		m.handleTracks(msg)
		return m, nil

	case racesMsg:
		m.handleRaces(msg)
		return m, nil

	case previewMsg:
		m.handlePreview(msg)
		return m, nil

	case healthMsg:
		m.handleHealth(msg)
		return m, nil

	case diagnosticsMsg:
		m.handleDiagnostics(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showDiagnostics {
		return m.renderDiagnostics()
	}
	return m.renderMain()
}

func (m *Model) resize() {
	h := m.contentHeight()
	m.detail.Width = m.width
	m.detail.Height = h
	m.diagnostics.Width = maxInt(m.width-6, 10)
	m.diagnostics.Height = maxInt(m.height-6, 3)
	for i := range m.inputs {
		m.inputs[i].Width = maxInt(m.width-4, 10)
	}
}

// contentHeight is the height below the header and command bar.
func (m Model) contentHeight() int {
	return maxInt(m.height-2, 1)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showDiagnostics {
		return m.handleDiagnosticsKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.tasks.CancelAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyThemeToInputs()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		m.showDiagnostics = true
		return m, readDiagnosticsCmd(m.logPath)

	case key.Matches(msg, m.keys.Tab):
		return m.switchPanel(m.panel.next())
	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchPanel(m.panel.prev())
	case key.Matches(msg, m.keys.Drivers):
		return m.switchPanel(PanelDrivers)
	case key.Matches(msg, m.keys.Circuits):
		return m.switchPanel(PanelCircuits)
	case key.Matches(msg, m.keys.Tracks):
		return m.switchPanel(PanelTracks)
	case key.Matches(msg, m.keys.Results):
		return m.switchPanel(PanelResults)
	case key.Matches(msg, m.keys.Seasons):
		return m.switchPanel(PanelSeasons)

	case key.Matches(msg, m.keys.Search):
		if m.panel == PanelSeasons {
			return m, nil
		}
		m.searching = true
		return m, m.inputs[m.panel].Focus()

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Back):
		m.back()
		return m, nil
	}

	if m.view(m.panel).mode(m) == selection.ModeDetail {
		m.scrollDetail(msg)
		return m, nil
	}
	return m.handleListKey(msg)
}

// handleSearchKey routes keys to the focused search input.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.tasks.CancelAll()
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
		m.inputs[m.panel].Blur()
		return m, nil
	case tea.KeyEnter:
		m.searching = false
		m.inputs[m.panel].Blur()
		return m, m.submitSearch()
	}

	var cmd tea.Cmd
	m.inputs[m.panel], cmd = m.inputs[m.panel].Update(msg)
	// Circuits and races filter as you type.
	if m.panel == PanelCircuits || m.panel == PanelResults {
		m.cursor[m.panel] = 0
		m.refreshNotice()
	}
	return m, cmd
}

// submitSearch runs the search for the active panel.
func (m *Model) submitSearch() tea.Cmd {
	switch m.panel {
	case PanelDrivers:
		return m.searchDrivers()
	case PanelTracks:
		m.trackQuery = m.inputs[PanelTracks].Value()
		m.cursor[PanelTracks] = 0
		m.refreshNotice()
	default:
		m.refreshNotice()
	}
	return nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.listLen()
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.panel] < count-1 {
			m.cursor[m.panel]++
		}
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.panel] > 0 {
			m.cursor[m.panel]--
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor[m.panel] = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor[m.panel] = maxInt(count-1, 0)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.cursor[m.panel] = minInt(m.cursor[m.panel]+m.contentHeight()/2, maxInt(count-1, 0))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.cursor[m.panel] = maxInt(m.cursor[m.panel]-m.contentHeight()/2, 0)
	case key.Matches(msg, m.keys.Confirm):
		return m, m.open()
	}
	return m, nil
}

func (m *Model) scrollDetail(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.detail.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detail.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.detail.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detail.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detail.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detail.HalfPageUp()
	}
}

// open selects the entity under the cursor.
func (m *Model) open() tea.Cmd {
	i := m.cursor[m.panel]
	switch m.panel {
	case PanelDrivers:
		items := m.drivers.Snapshot().Items
		if i < len(items) {
			m.driverSel.Select(items[i])
			m.detail.GotoTop()
		}
	case PanelCircuits:
		items := m.visibleCircuits()
		if i < len(items) {
			m.circuitSel.Select(items[i])
			m.detail.GotoTop()
			return m.loadPreview(items[i])
		}
	case PanelResults:
		items := m.visibleRaces()
		if i < len(items) {
			m.raceSel.Select(items[i])
			m.detail.GotoTop()
		}
	}
	return nil
}

// back returns from a detail view to its list.
func (m *Model) back() {
	switch m.panel {
	case PanelDrivers:
		m.driverSel.Clear()
	case PanelCircuits:
		m.circuitSel.Clear()
		m.tasks.Cancel(mapTaskKey)
		m.previewFor = ""
		m.previewLoading = false
	case PanelResults:
		m.raceSel.Clear()
	}
}

// switchPanel tears down the current panel and mounts p.
func (m Model) switchPanel(p Panel) (tea.Model, tea.Cmd) {
	if p == m.panel {
		return m, nil
	}
	m.tasks.CancelAll()
	m.unmount(m.panel)
	m.panel = p
	m.savePrefs()
	return m, m.enterPanel()
}

// unmount discards the lists and selection owned by p.
func (m *Model) unmount(p Panel) {
	m.searching = false
	m.inputs[p].Blur()
	m.cursor[p] = 0
	m.notice[p] = ""
	switch p {
	case PanelDrivers:
		m.drivers.Reset()
		m.driverSel.Clear()
	case PanelCircuits:
		m.circuits.Reset()
		m.circuitSel.Clear()
		m.previewFor = ""
		m.previewLoading = false
	case PanelTracks:
		m.tracks.Reset()
		m.trackQuery = ""
	case PanelResults:
		m.races.Reset()
		m.raceSel.Clear()
	}
	m.inputs[p].SetValue("")
}

// enterPanel starts the eager fetch of panels that load on mount.
func (m *Model) enterPanel() tea.Cmd {
	switch m.panel {
	case PanelCircuits:
		return m.loadCircuits()
	case PanelTracks:
		return m.loadTracks()
	case PanelResults:
		return m.loadRaces()
	}
	return nil
}

func (m *Model) reload() tea.Cmd {
	switch m.panel {
	case PanelDrivers:
		return m.searchDrivers()
	case PanelCircuits:
		return m.loadCircuits()
	case PanelTracks:
		return m.loadTracks()
	case PanelResults:
		return m.loadRaces()
	}
	return nil
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Panel: m.panel.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.Error(err))
	}
}

// listLen is the number of rows in the active list.
func (m Model) listLen() int {
	switch m.panel {
	case PanelDrivers:
		return len(m.drivers.Snapshot().Items)
	case PanelCircuits:
		return len(m.visibleCircuits())
	case PanelTracks:
		return len(m.visibleTracks())
	case PanelResults:
		return len(m.visibleRaces())
	}
	return 0
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the panel body, scrolled through the detail
// viewport when a detail view is shown.
func (m Model) renderContent() string {
	v := m.view(m.panel)
	body := m.renderPanel()
	if v.failure(m) == nil && v.mode(m) == selection.ModeDetail {
		vp := m.detail
		vp.SetContent(body)
		return vp.View()
	}
	return body
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	m.tasks.CancelAll()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
