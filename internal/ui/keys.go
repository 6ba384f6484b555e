package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the browser's bindings. Scrolling inside the page uses the
// viewport's own bindings.
type keyMap struct {
	Quit     key.Binding
	Focus    key.Binding
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Prev     key.Binding
	Next     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Reload   key.Binding
	Theme    key.Binding
	CopyCode key.Binding
	Open     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		Up:       key.NewBinding(key.WithKeys("up", "k", "ctrl+p")),
		Down:     key.NewBinding(key.WithKeys("down", "j", "ctrl+n")),
		Enter:    key.NewBinding(key.WithKeys("enter")),
		Prev:     key.NewBinding(key.WithKeys("["), key.WithHelp("[ ]", "section")),
		Next:     key.NewBinding(key.WithKeys("]")),
		Top:      key.NewBinding(key.WithKeys("home", "g")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Theme:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		CopyCode: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy code")),
		Open:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open")),
	}
}

// helpLine renders the short bindings for the status bar
func (k keyMap) helpLine() []key.Binding {
	return []key.Binding{k.Focus, k.Prev, k.CopyCode, k.Theme, k.Reload, k.Quit}
}
