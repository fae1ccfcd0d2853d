package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up           key.Binding
	Down         key.Binding
	Toggle       key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Clear        key.Binding
	NextFilter   key.Binding
	FilterAll    key.Binding
	FilterActive key.Binding
	FilterDone   key.Binding
	FocusAdd     key.Binding
	Submit       key.Binding
	Cancel       key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:       key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Clear:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		NextFilter:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		FilterAll:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		FocusAdd:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "add")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusAdd, k.Toggle, k.Edit, k.Delete, k.NextFilter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit, k.Delete},
		{k.FocusAdd, k.Submit, k.Cancel, k.Clear},
		{k.NextFilter, k.FilterAll, k.FilterActive, k.FilterDone},
		{k.Help, k.Quit},
	}
}
