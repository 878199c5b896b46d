package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/todate/internal/axis"
	"github.com/alexanderramin/todate/internal/cli/formatter"
	"github.com/alexanderramin/todate/internal/timeline"
)

// panFraction is the share of the visible window one pan key moves.
const panFraction = 0.1

type timelineKeyMap struct {
	Earlier  key.Binding
	Later    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultTimelineKeyMap() timelineKeyMap {
	return timelineKeyMap{
		Earlier:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "earlier")),
		Later:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "later")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "K"), key.WithHelp("pgup", "page earlier")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "J"), key.WithHelp("pgdn", "page later")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Reset:    key.NewBinding(key.WithKeys("r", "0"), key.WithHelp("r", "reset")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k timelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Earlier, k.Later, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

func (k timelineKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Earlier, k.Later, k.PageUp, k.PageDown},
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Help, k.Quit},
	}
}

// timelineLoadedMsg carries the built view into the model.
type timelineLoadedMsg struct {
	view *timeline.View
	err  error
}

// timelineModel browses one timeline view. Pan and zoom go through an
// axis.Controller so fractional changes accumulate between key presses.
type timelineModel struct {
	app    *App
	filter timeline.Filter
	opts   timeline.Options

	view    *timeline.View
	ctrl    *axis.Controller
	initial axis.YearSpan

	keys timelineKeyMap
	help help.Model

	zoomStep         float64
	wheelSensitivity float64

	width, height int
	loading       bool
	err           error
}

func newTimelineModel(app *App, filter timeline.Filter, opts timeline.Options) *timelineModel {
	cfg := app.config().Timeline
	return &timelineModel{
		app:              app,
		filter:           filter,
		opts:             opts,
		keys:             defaultTimelineKeyMap(),
		help:             help.New(),
		zoomStep:         cfg.ZoomStep,
		wheelSensitivity: cfg.WheelSensitivity,
		width:            80,
		height:           24,
		loading:          true,
	}
}

func (m *timelineModel) Init() tea.Cmd {
	app, filter, opts := m.app, m.filter, m.opts
	return func() tea.Msg {
		view, err := app.Timeline.View(context.Background(), filter, opts)
		return timelineLoadedMsg{view: view, err: err}
	}
}

func (m *timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timelineLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.view = msg.view
		m.ctrl = axis.NewController(msg.view.Span, m.opts.MaxSpan)
		m.initial = m.ctrl.YearSpan()
		m.sync()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.ctrl != nil {
			m.handleNavigation(msg)
		}
		return m, nil

	case tea.MouseMsg:
		if m.ctrl == nil || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.apply(m.ctrl.Wheel(-1, m.wheelSensitivity))
		case tea.MouseButtonWheelDown:
			m.apply(m.ctrl.Wheel(1, m.wheelSensitivity))
		}
		return m, nil
	}
	return m, nil
}

func (m *timelineModel) handleNavigation(msg tea.KeyMsg) {
	width := m.ctrl.Span().Width()
	switch {
	case key.Matches(msg, m.keys.Earlier):
		m.apply(m.ctrl.Pan(-width * panFraction))
	case key.Matches(msg, m.keys.Later):
		m.apply(m.ctrl.Pan(width * panFraction))
	case key.Matches(msg, m.keys.PageUp):
		m.apply(m.ctrl.Pan(-width / 2))
	case key.Matches(msg, m.keys.PageDown):
		m.apply(m.ctrl.Pan(width / 2))
	case key.Matches(msg, m.keys.ZoomIn):
		m.apply(m.ctrl.ZoomCentered(m.zoomStep))
	case key.Matches(msg, m.keys.ZoomOut):
		m.apply(m.ctrl.ZoomCentered(1 / m.zoomStep))
	case key.Matches(msg, m.keys.Reset):
		m.apply(m.ctrl.SetRange(m.initial.Start, m.initial.End))
	}
}

// apply redraws only when the controller published a new window.
func (m *timelineModel) apply(changed bool) {
	if changed {
		m.sync()
	}
}

func (m *timelineModel) sync() {
	m.view.SetSpan(m.ctrl.Span())
}

// timelineRows leaves room for the help line and the footer.
func (m *timelineModel) timelineRows() int {
	return max(3, m.height-4)
}

func (m *timelineModel) View() string {
	if m.loading {
		return "\n  " + formatter.Dim("Loading timeline...")
	}
	if m.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+m.err.Error())
	}

	var b strings.Builder
	b.WriteString(formatter.RenderTimeline(m.view, m.timelineRows(), m.width))
	ys := m.ctrl.YearSpan()
	b.WriteString(formatter.Dim(fmt.Sprintf("showing %d years, max %.0f", ys.Years(), m.ctrl.MaxSpan())) + "\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
