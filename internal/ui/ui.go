package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/bop/internal/engine"
	"github.com/desertthunder/bop/internal/library"
	"github.com/desertthunder/bop/internal/models"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DanceView ViewState = iota
	LibraryView
)

// Model represents the TUI application state.
type Model struct {
	dancer *engine.Dancer
	grid   *library.Grid
	frames <-chan engine.Update
	cancel func()
	last   engine.Update
	view   ViewState
	width  int
	height int
	tracks list.Model
	loaded bool
	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model around a dancer and an optional track grid.
// The model subscribes to the dancer's frame stream immediately so no frames
// are dropped between construction and the first [tea.Cmd].
func NewModel(dancer *engine.Dancer, grid *library.Grid) *Model {
	m := &Model{
		dancer: dancer,
		grid:   grid,
		view:   DanceView,
		last:   dancer.Snapshot(),
		help:   help.New(),
		keys:   newKeyMap(),
	}
	m.frames, m.cancel = dancer.Subscribe()
	return m
}

// Run wires a dancer and an optional track grid into a full screen terminal
// program and blocks until the user quits.
func Run(dancer *engine.Dancer, grid *library.Grid) error {
	m := NewModel(dancer, grid)
	defer m.cancel()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// Init kicks off the frame wait loop and the library load.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForFrame(), m.loadTracks())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.loaded {
			m.tracks.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case DanceView:
			return m.handleDanceKeys(msg)
		case LibraryView:
			return m.handleLibraryKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DanceView:
		return m.renderDance()
	case LibraryView:
		return m.renderLibrary()
	default:
		return ""
	}
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgFrame:
		m.last = msg.data.(engine.Update)
		return m, m.waitForFrame()

	case MsgFrameClosed:
		return m, tea.Quit

	case MsgTracksLoaded:
		p := msg.data.(tracksPayload)
		if p.err != nil {
			m.err = p.err
			return m, nil
		}
		items := make([]list.Item, len(p.tracks))
		for i, t := range p.tracks {
			items[i] = trackItem{track: t}
		}
		m.tracks = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.tracks.Title = "Library"
		m.tracks.SetSize(m.width-4, m.height-8)
		m.loaded = true
		return m, nil

	case MsgControlDone:
		p := msg.data.(controlPayload)
		m.status = p.label
		m.err = p.err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleDanceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		return m, m.control("toggle")
	case "s":
		return m, m.control("still")
	case "r":
		return m, m.control("reset")
	case "d":
		return m, m.control("drift")
	case "a":
		return m, m.control("auto")
	case "w":
		return m, m.control("artwork")
	case "-", "_":
		return m, m.nudgeBPM(-5)
	case "+", "=":
		return m, m.nudgeBPM(5)
	case "tab", "l":
		if m.loaded {
			m.view = LibraryView
		}
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tracks.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.tracks, cmd = m.tracks.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "tab":
		m.view = DanceView
		return m, nil
	case "enter":
		if it, ok := m.tracks.SelectedItem().(trackItem); ok {
			m.view = DanceView
			return m, m.playTrack(it.track)
		}
	}

	var cmd tea.Cmd
	m.tracks, cmd = m.tracks.Update(msg)
	return m, cmd
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != LibraryView || !m.loaded {
		return m, nil
	}
	var cmd tea.Cmd
	m.tracks, cmd = m.tracks.Update(msg)
	return m, cmd
}

// waitForFrame blocks on the dancer's frame channel and hands the next update
// to the program loop. A closed channel quits the program.
func (m *Model) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		u, ok := <-m.frames
		if !ok {
			return frameClosedMsg()
		}
		return frameMsg(u)
	}
}

func (m *Model) loadTracks() tea.Cmd {
	return func() tea.Msg {
		if m.grid == nil {
			return tracksLoadedMsg(nil, nil)
		}
		return tracksLoadedMsg(m.grid.Rows(), nil)
	}
}

// control maps a named action onto the dancer's control surface. Toggles
// inspect the dancer so a single key flips between the two states.
func (m *Model) control(action string) tea.Cmd {
	return func() tea.Msg {
		var err error
		label := action
		switch action {
		case "toggle":
			if m.dancer.Running() && !m.dancer.Frozen() {
				err = m.dancer.Stop()
				label = "stopped"
			} else {
				err = m.dancer.Start()
				label = "dancing"
			}
		case "still":
			m.dancer.Still()
			label = "holding still"
		case "reset":
			m.dancer.Reset()
			label = "reset to defaults"
		case "drift":
			if m.dancer.Drifting() {
				m.dancer.StopDrift()
				label = "drifting home"
			} else {
				m.dancer.StartDrift()
				label = "drifting"
			}
		case "auto":
			if len(m.dancer.AutoDriven()) > 0 {
				m.dancer.DisableAutoDrive()
				label = "manual"
			} else {
				err = m.dancer.EnableAutoDrive()
				label = "auto-drive"
			}
		case "artwork":
			m.dancer.RefreshArtwork()
			label = "rolling artwork"
		}
		return controlDoneMsg(label, err)
	}
}

func (m *Model) nudgeBPM(delta float64) tea.Cmd {
	return func() tea.Msg {
		cur, err := m.dancer.Param("bpm")
		if err != nil {
			return controlDoneMsg("bpm", err)
		}
		m.dancer.SetBPM(cur + delta)
		cur, _ = m.dancer.Param("bpm")
		return controlDoneMsg(fmt.Sprintf("bpm %.0f", cur), nil)
	}
}

func (m *Model) playTrack(t models.Track) tea.Cmd {
	return func() tea.Msg {
		if t.BPM > 0 {
			m.dancer.SetBPM(t.BPM)
		}
		m.dancer.RefreshArtwork()
		return controlDoneMsg(fmt.Sprintf("now playing %s", t), nil)
	}
}

func (m *Model) renderDance() string {
	if m.width == 0 || m.height == 0 {
		return "warming up..."
	}

	head := fmt.Sprintf("%s  %s", styles.title.Render("bop"), m.statusLine())
	c := NewCanvas(m.width-2, m.height-8)
	c.Figure(m.last.Joints, m.last.HeadR)
	body := styles.figure.Render(c.String())
	meter := styles.meter.Render(m.eqRow())
	helpView := styles.help.Render(m.help.View(m.keys))

	return fmt.Sprintf("%s\n%s\n%s\n%s", head, body, meter, helpView)
}

func (m *Model) renderLibrary() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.tracks.View(), helpView)
}

func (m *Model) statusLine() string {
	s := fmt.Sprintf("%s  %.0f bpm", m.last.PoseName, m.last.BPM)
	if m.dancer.Frozen() {
		s += "  [still]"
	}
	if m.dancer.Drifting() {
		s += "  [drift]"
	}
	if m.status != "" {
		s = fmt.Sprintf("%s  %s", s, styles.help.Render(m.status))
	}
	if m.err != nil {
		s = fmt.Sprintf("%s  %s", s, styles.err.Render(m.err.Error()))
	}
	return s
}

// eqRow echoes the stage equalizer bars as a strip of block glyphs driven by
// the simulation clock and the current beat pulse.
func (m *Model) eqRow() string {
	ramp := []rune(" ▁▂▃▄▅▆▇█")
	cols := m.width - 2
	if cols < 8 {
		cols = 8
	}
	if cols > 48 {
		cols = 48
	}

	var b strings.Builder
	for i := 0; i < cols; i++ {
		v := math.Abs(math.Sin(m.last.Clock*2.4 + float64(i)*0.65))
		v *= 0.35 + 0.65*m.last.Beat
		idx := int(v * float64(len(ramp)-1))
		if idx >= len(ramp) {
			idx = len(ramp) - 1
		}
		b.WriteRune(ramp[idx])
	}
	return b.String()
}
