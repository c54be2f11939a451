package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Prev     key.Binding
	Next     key.Binding
	Tab      key.Binding
	Clear    key.Binding
	ClearAll key.Binding
	Search   key.Binding
	Select   key.Binding
	Edit     key.Binding
	Close    key.Binding
	Back     key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous option")),
		Next:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next option")),
		Tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "filters/results")),
		Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filter")),
		ClearAll: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "clear all")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "type a value")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Close:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "close")),
		Back:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "back")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Next, k.Select, k.Close, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next, k.Tab},
		{k.Clear, k.ClearAll, k.Search},
		{k.Select, k.Close, k.Back, k.Dismiss, k.Quit},
	}
}

// closedHelp is shown while the modal is closed.
type closedHelp struct{ k keyMap }

func (c closedHelp) ShortHelp() []key.Binding  { return []key.Binding{c.k.Edit, c.k.Close} }
func (c closedHelp) FullHelp() [][]key.Binding { return [][]key.Binding{c.ShortHelp()} }
