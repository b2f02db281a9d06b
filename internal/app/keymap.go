package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global bindings.
type KeyMap struct {
	Quit          key.Binding
	Replay        key.Binding
	ToggleMode    key.Binding
	ToggleAnimate key.Binding
	ToggleRemoved key.Binding
	Copy          key.Binding
	Next          key.Binding
	Prev          key.Binding
	Up            key.Binding
	Down          key.Binding
	Help          key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Replay:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replay")),
		ToggleMode:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "words/chars")),
		ToggleAnimate: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle animation")),
		ToggleRemoved: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle removed text")),
		Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy revised text")),
		Next:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next file")),
		Prev:          key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous file")),
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "scroll up")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "scroll down")),
		Help:          key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}
