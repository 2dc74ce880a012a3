package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	left       key.Binding
	right      key.Binding
	nextScreen key.Binding
	prevScreen key.Binding
	home       key.Binding
	day        key.Binding
	search     key.Binding
	status     key.Binding
	platform   key.Binding
	weekday    key.Binding
	clear      key.Binding
	refresh    key.Binding
	open       key.Binding
	edit       key.Binding
	remove     key.Binding
	adminTab   key.Binding
	submit     key.Binding
	reset      key.Binding
	back       key.Binding
	yes        key.Binding
	no         key.Binding
	help       key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev option")),
		right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
		nextScreen: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		prevScreen: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev screen")),
		home:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
		day:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7"), key.WithHelp("1-7", "day")),
		search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		platform:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "platform")),
		weekday:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weekday")),
		clear:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
		edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		remove:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		adminTab:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add/list")),
		submit:     key.NewBinding(key.WithKeys("ctrl+s", "enter"), key.WithHelp("ctrl+s", "save")),
		reset:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset form")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:         key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextScreen, k.search, k.refresh, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.nextScreen, k.prevScreen, k.home},
		{k.day, k.search, k.status, k.platform, k.weekday, k.clear},
		{k.open, k.edit, k.remove, k.adminTab, k.refresh},
		{k.submit, k.reset, k.back, k.help, k.quit},
	}
}

// formKeys are the bindings shown while a form has focus.
func (k keyMap) formKeys() []key.Binding {
	return []key.Binding{k.up, k.down, k.left, k.right, k.submit, k.reset, k.back}
}
