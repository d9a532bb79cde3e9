package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Send      key.Binding
	Summarize key.Binding
	Back      key.Binding
	Quit      key.Binding
	Copy      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
}

var keys = keyMap{
	Send: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "enviar"),
	),
	Summarize: key.NewBinding(
		key.WithKeys("ctrl+s", "tab"),
		key.WithHelp("C-s/tab", "resumir"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "voltar"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "sair"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("C-y", "copiar resumo"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup/C-u", "rolar acima"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn/C-d", "rolar abaixo"),
	),
}
