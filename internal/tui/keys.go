package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start   key.Binding
	Results key.Binding
	Fetch   key.Binding
	Delete  key.Binding
	Quit    key.Binding
	Back    key.Binding
	Reload  key.Binding
	Retry   key.Binding
	Next    key.Binding
	Letter  key.Binding
	Yes     key.Binding
	No      key.Binding
	Any     key.Binding
}

var keys = keyMap{
	Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	Results: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "global results")),
	Fetch:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new texts")),
	Delete:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "delete results")),
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "exit")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Reload:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "restart text")),
	Retry:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry same text")),
	Next:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
	Letter:  key.NewBinding(key.WithKeys("a-z"), key.WithHelp("a-z", "letter result")),
	Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
	No:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
	Any:     key.NewBinding(key.WithKeys("any"), key.WithHelp("any key", "dismiss")),
}

// hints returns the key bindings shown in the footer of s.
func hints(s Screen) []key.Binding {
	switch s {
	case ScreenMain:
		return []key.Binding{keys.Start, keys.Results, keys.Fetch, keys.Delete, keys.Quit}
	case ScreenTyping:
		return []key.Binding{keys.Back, keys.Reload}
	case ScreenTypingResult:
		return []key.Binding{keys.Next, keys.Retry, withHelp(keys.Quit, "main screen")}
	case ScreenGlobalResult, ScreenLetterResult:
		return []key.Binding{keys.Letter, keys.Back}
	case ScreenExiting:
		return []key.Binding{keys.Yes, keys.No}
	case ScreenAlert:
		return []key.Binding{keys.Any}
	default:
		return nil
	}
}

func withHelp(b key.Binding, desc string) key.Binding {
	h := b.Help()
	b.SetHelp(h.Key, desc)
	return b
}
