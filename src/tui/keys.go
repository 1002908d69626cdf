package tui

import (
	"github.com/Zaphoood/histedit/src/config"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Undo    key.Binding
	Redo    key.Binding
	Command key.Binding
	Quit    key.Binding
}

func newKeyMap(keys config.Keys) keyMap {
	return keyMap{
		Undo:    key.NewBinding(key.WithKeys(keys.Undo...), key.WithHelp(keys.Undo[0], "undo")),
		Redo:    key.NewBinding(key.WithKeys(keys.Redo...), key.WithHelp(keys.Redo[0], "redo")),
		Command: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "command")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}
