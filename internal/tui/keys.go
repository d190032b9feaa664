package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab       key.Binding
	PrevTab       key.Binding
	Up            key.Binding
	Down          key.Binding
	Select        key.Binding
	Reset         key.Binding
	Import        key.Binding
	Write         key.Binding
	WriteChain    key.Binding
	TogglePreview key.Binding
	Quit          key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextTab:       key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab:       key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:        key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select/edit")),
		Reset:         key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "reset")),
		Import:        key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
		Write:         key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "write config")),
		WriteChain:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "write chain")),
		TogglePreview: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "toggle preview")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Select, k.Reset, k.Import, k.Write, k.WriteChain, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Up, k.Down},
		{k.Select, k.Reset, k.TogglePreview},
		{k.Import, k.Write, k.WriteChain, k.Quit},
	}
}

// editorKeys apply while a text input is open.
type editorKeys struct {
	Submit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

func newEditorKeys() editorKeys {
	return editorKeys{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Quit}
}

func (k editorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
