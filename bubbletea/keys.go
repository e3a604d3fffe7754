package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the playback key bindings.
type KeyMap struct {
	Toggle key.Binding
	Start  key.Binding
	Stop   key.Binding
	Reset  key.Binding
	Finish key.Binding
	Next   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause/resume")),
		Start:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Finish: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
		Next:   key.NewBinding(key.WithKeys("n", "tab"), key.WithHelp("n", "next")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Start, k.Stop, k.Reset, k.Finish, k.Next, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
