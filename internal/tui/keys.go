package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	logout    key.Binding
	newItem   key.Binding
	edit      key.Binding
	delete    key.Binding
	done      key.Binding
	sync      key.Binding
	templates key.Binding
	history   key.Binding
	devices   key.Binding
	export    key.Binding
	conflict  key.Binding
	lock      key.Binding
	recover   key.Binding
	revoke    key.Binding
	keepLocal key.Binding
	useRemote key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q")),
	logout:    key.NewBinding(key.WithKeys("o")),
	newItem:   key.NewBinding(key.WithKeys("n", "a")),
	edit:      key.NewBinding(key.WithKeys("e")),
	delete:    key.NewBinding(key.WithKeys("d")),
	done:      key.NewBinding(key.WithKeys(" ", "x")),
	sync:      key.NewBinding(key.WithKeys("s")),
	templates: key.NewBinding(key.WithKeys("t")),
	history:   key.NewBinding(key.WithKeys("h")),
	devices:   key.NewBinding(key.WithKeys("D")),
	export:    key.NewBinding(key.WithKeys("E")),
	conflict:  key.NewBinding(key.WithKeys("c")),
	lock:      key.NewBinding(key.WithKeys("L")),
	recover:   key.NewBinding(key.WithKeys("R")),
	revoke:    key.NewBinding(key.WithKeys("r")),
	keepLocal: key.NewBinding(key.WithKeys("1")),
	useRemote: key.NewBinding(key.WithKeys("2")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n")),
}
