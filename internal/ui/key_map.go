package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	toggle  key.Binding
	still   key.Binding
	reset   key.Binding
	drift   key.Binding
	auto    key.Binding
	artwork key.Binding
	slower  key.Binding
	faster  key.Binding
	library key.Binding
	enter   key.Binding
	back    key.Binding
	help    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop")),
		still:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "still")),
		reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		drift:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drift")),
		auto:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-drive")),
		artwork: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "artwork")),
		slower:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		faster:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		library: key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab", "library")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play track")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.library, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.toggle, k.still, k.reset},
		{k.drift, k.auto, k.artwork},
		{k.slower, k.faster, k.library},
		{k.enter, k.back, k.quit},
	}
}
