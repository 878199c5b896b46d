// Package teatest drives bubbletea models synchronously in tests: messages
// go straight to Update and every returned Cmd is run and fed back until the
// model settles.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// cmdTimeout skips Cmds that block on timers, such as cursor blinks.
const cmdTimeout = 10 * time.Millisecond

// Driver wraps a model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd returns tea.QuitMsg; later sends are ignored.
	Quitting bool
}

// New returns a driver sized w×h. Call Init to run the model's first Cmd.
func New(t *testing.T, model tea.Model, w, h int) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	return d
}

// Init runs the model's Init command and sends its message. Unlike later
// Cmds it is not subject to the timeout, so slow loads still arrive.
func (d *Driver) Init() {
	d.T.Helper()
	cmd := d.Model.Init()
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		d.Send(msg)
	}
}

// Send dispatches msg and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	next, cmd := d.Model.Update(msg)
	d.Model = next
	d.drain(cmd, 0)
}

// Keys sends each named key in turn. Single characters become rune keys;
// "up", "down", "pgup", "pgdown", "esc", "enter" and "ctrl+c" map to their
// special key types.
func (d *Driver) Keys(names ...string) {
	d.T.Helper()
	for _, name := range names {
		d.Send(keyMsg(name))
	}
}

// Wheel sends one mouse wheel notch.
func (d *Driver) Wheel(up bool) {
	d.T.Helper()
	button := tea.MouseButtonWheelDown
	if up {
		button = tea.MouseButtonWheelUp
	}
	d.Send(tea.MouseMsg{Action: tea.MouseActionPress, Button: button})
}

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

var specialKeys = map[string]tea.KeyType{
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"pgup":   tea.KeyPgUp,
	"pgdown": tea.KeyPgDown,
	"esc":    tea.KeyEsc,
	"enter":  tea.KeyEnter,
	"ctrl+c": tea.KeyCtrlC,
}

func keyMsg(name string) tea.KeyMsg {
	if t, ok := specialKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	switch msg := run(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
	default:
		next, nextCmd := d.Model.Update(msg)
		d.Model = next
		d.drain(nextCmd, depth+1)
	}
}

// run executes cmd, giving up after cmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
